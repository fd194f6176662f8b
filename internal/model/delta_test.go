package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDelta(t *testing.T) {
	cases := []struct {
		name      string
		current   string
		changed   bool
		wantNext  string
		wantDirty bool
	}{
		{"unchanged stays clean", DeltaNone, false, DeltaNone, false},
		{"new settles", DeltaNew, false, DeltaNone, true},
		{"changed stabilizes", DeltaChanged, false, DeltaNone, true},
		{"removed reappears", DeltaRemoved, false, DeltaNone, true},
		{"clean row changes", DeltaNone, true, DeltaChanged, true},
		{"new row changes", DeltaNew, true, DeltaChanged, true},
		{"changed clears even when changed again", DeltaChanged, true, DeltaNone, true},
		{"removed row changes", DeltaRemoved, true, DeltaChanged, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, dirty := NextDelta(tc.current, tc.changed)
			assert.Equal(t, tc.wantNext, next)
			assert.Equal(t, tc.wantDirty, dirty)
		})
	}
}
