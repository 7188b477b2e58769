package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ISOStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Civil
	}{
		{
			name:  "дата без времени",
			input: "2026-06-01",
			want:  Civil{DateStr: "2026-06-01", TimeStr: "00:00:00", DayOfWeek: 1},
		},
		{
			name:  "дата и время",
			input: "2026-06-01T14:30:00",
			want:  Civil{DateStr: "2026-06-01", TimeStr: "14:30:00", DayOfWeek: 1},
		},
		{
			name:  "дата и время через пробел",
			input: "2026-06-01 14:30:00",
			want:  Civil{DateStr: "2026-06-01", TimeStr: "14:30:00", DayOfWeek: 1},
		},
		{
			name:  "RFC3339",
			input: "2026-06-01T14:30:00Z",
			want:  Civil{DateStr: "2026-06-01", TimeStr: "14:30:00", DayOfWeek: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_TimeInput(t *testing.T) {
	got, err := Normalize(time.Date(2026, 6, 7, 23, 30, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Civil{DateStr: "2026-06-07", TimeStr: "23:30:00", DayOfWeek: 0}, got)
}

func TestNormalize_TimeInputConvertedToLocation(t *testing.T) {
	// 23:30 UTC в поясе UTC-4 - ещё предыдущий календарный день
	clinic := time.FixedZone("UTC-4", -4*3600)

	got, err := Normalize(time.Date(2026, 6, 8, 23, 30, 0, 0, time.UTC), clinic)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-08", got.DateStr)
	assert.Equal(t, "19:30:00", got.TimeStr)

	got, err = Normalize(time.Date(2026, 6, 8, 2, 0, 0, 0, time.UTC), clinic)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-07", got.DateStr)
}

func TestNormalize_EpochMillis(t *testing.T) {
	millis := time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC).UnixMilli()

	got, err := Normalize(millis, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Civil{DateStr: "2026-06-01", TimeStr: "14:30:00", DayOfWeek: 1}, got)
}

func TestNormalize_CivilParts(t *testing.T) {
	tests := []struct {
		name     string
		parts    CivilParts
		wantTime string
	}{
		{"24-часовой формат", CivilParts{Date: "2026-06-01", Time: "14:30"}, "14:30:00"},
		{"12-часовой формат", CivilParts{Date: "2026-06-01", Time: "2:30 PM"}, "14:30:00"},
		{"с секундами", CivilParts{Date: "2026-06-01", Time: "09:00:00"}, "09:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.parts, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, "2026-06-01", got.DateStr)
			assert.Equal(t, tt.wantTime, got.TimeStr)
			assert.Equal(t, 1, got.DayOfWeek)
		})
	}
}

func TestNormalize_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"мусор в строке", "not-a-date"},
		{"перепутанный порядок", "01-06-2026"},
		{"неверная дата в частях", CivilParts{Date: "garbage", Time: "10:00"}},
		{"неверное время в частях", CivilParts{Date: "2026-06-01", Time: "25:99"}},
		{"неподдерживаемый тип", 3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input, time.UTC)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		})
	}
}

func TestCivil_DateAndTime(t *testing.T) {
	civ, err := Normalize("2026-06-01T14:30:00", time.UTC)
	require.NoError(t, err)

	date, err := civ.Date(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), date)

	clock, err := civ.Time()
	require.NoError(t, err)
	assert.Equal(t, "14:30", clock.String())
}

func TestNormalize_NilLocationDefaultsToUTC(t *testing.T) {
	got, err := Normalize("2026-06-01", nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", got.DateStr)
}
