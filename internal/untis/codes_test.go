package untis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"LS_1234_1", "1234"},
		{"LS_1234_12", "1234"},
		{"LS_1234", "1234"},
		{"LS_A_B", "A_B"},
		{" LS_77_2 ", "77"},
		{"LS__1", "_1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UnitCode(tt.in), tt.in)
	}
}

func TestRef_Codes(t *testing.T) {
	r := Ref{IDs: "RM_A1.01  RM_B2.10 RM_"}
	assert.Equal(t, []string{"A1.01", "B2.10"}, r.Codes(PrefixRoom))
	assert.Equal(t, "A1.01", r.First(PrefixRoom))
	assert.Equal(t, "", Ref{}.First(PrefixRoom))
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("0815")
	require.NoError(t, err)
	assert.Equal(t, "08:15:00", got)

	got, err = ParseClock("930")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got)

	for _, bad := range []string{"", "2400", "0860", "ab12", "12345"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStamp(t *testing.T) {
	got, err := ParseStamp("20240815", "1342")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 8, 15, 13, 42, 0, 0, time.UTC), got)

	_, err = ParseStamp("2024-08-15", "1342")
	assert.Error(t, err)
}
