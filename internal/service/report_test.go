package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"organizer/backend/pkg/i18n"
)

type fakeTranslator map[string]string

func (f fakeTranslator) T(messageID string, data map[string]any) string {
	if s, ok := f[messageID]; ok {
		return s + ":" + data["Code"].(string)
	}
	return messageID
}

func TestReport_SeverityAndOrder(t *testing.T) {
	r := &Report{}
	assert.False(t, r.HasErrors())

	r.AddWarning("rooms", MsgRoomsExternalIDMissing, map[string]any{"Codes": "A1.01"})
	assert.False(t, r.HasErrors())

	r.AddError("units", MsgUnitEventMissing, map[string]any{"Code": "100"})
	r.AddError("units", MsgUnitPersonMissing, map[string]any{"Code": "101"})
	assert.True(t, r.HasErrors())

	assert.Equal(t, []string{MsgUnitEventMissing, MsgUnitPersonMissing}, r.Errors(i18n.Identity{}))
	assert.Equal(t, []string{MsgRoomsExternalIDMissing}, r.Warnings(i18n.Identity{}))
	assert.Len(t, r.Entries(), 3)
}

func TestReport_RenderUsesTranslator(t *testing.T) {
	r := &Report{}
	r.AddError("units", MsgUnitEventMissing, map[string]any{"Code": "100"})

	tr := fakeTranslator{MsgUnitEventMissing: "kein Fach"}
	assert.Equal(t, []string{"kein Fach:100"}, r.Errors(tr))
	assert.Equal(t, []string{}, r.Warnings(tr))
}

func TestImportResult_Localize(t *testing.T) {
	r := &Report{}
	r.AddError("units", MsgUnitEventMissing, map[string]any{"Code": "7"})
	res := &ImportResult{Report: r}

	res.Localize(fakeTranslator{MsgUnitEventMissing: "x"})
	assert.Equal(t, []string{"x:7"}, res.Errors)
}
