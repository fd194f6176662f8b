package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizer/backend/config"
	"organizer/backend/pkg/jwt"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<document date="20240815" time="1342">
  <general>
    <header1>Hochschule Test</header1>
    <schoolyearbegindate>20240902</schoolyearbegindate>
    <schoolyearenddate>20250831</schoolyearenddate>
    <termbegindate>20241001</termbegindate>
    <termenddate>20250228</termenddate>
  </general>
  <subjects><subject id="SU_MA"><longname>Mathematik</longname></subject></subjects>
  <lessons>
    <lesson id="LS_100_1"><lesson_subject id="SU_MA"/></lesson>
    <lesson id="LS_100_2"><lesson_subject id="SU_MA"/></lesson>
    <lesson id="LS_200_1"><lesson_subject id="SU_MA"/></lesson>
  </lessons>
</document>`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspectCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untis.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o600))

	out, err := run(t, "inspect", "--file", path)
	require.NoError(t, err)

	var got struct {
		Command string        `json:"command"`
		Result  inspectResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "inspect", got.Command)
	assert.Equal(t, "Hochschule Test", got.Result.School)
	assert.Equal(t, "20241001", got.Result.TermBegin)
	assert.Equal(t, 2, got.Result.Units)
	assert.Len(t, got.Result.Sections, 8)
}

func TestInspectCmd_Errors(t *testing.T) {
	_, err := run(t, "inspect")
	assert.Error(t, err, "缺少 --file")

	_, err = run(t, "inspect", "--file", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "other.xml")
	require.NoError(t, os.WriteFile(path, []byte("<timetable/>"), 0o600))
	_, err = run(t, "inspect", "--file", path)
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt_secret: \"cli-test-secret-0123456789\"\n"), 0o600))

	out, err := run(t, "token", "--config", path, "--user", "ops", "--role", "scheduler", "--org", "4")
	require.NoError(t, err)

	mgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "cli-test-secret-0123456789", AccessTokenTTL: time.Minute})
	claims, err := mgr.ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.UserID)
	assert.Equal(t, int64(4), claims.OrganizationID)

	_, err = run(t, "token", "--config", path, "--user", "ops", "--role", "scheduler")
	assert.Error(t, err, "scheduler 必须绑定组织")

	_, err = run(t, "token", "--config", path, "--user", "ops", "--role", "root")
	assert.Error(t, err)
}
