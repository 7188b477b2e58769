package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "24h canonical", input: "14:30", want: "14:30"},
		{name: "24h single-digit hour", input: "9:05", want: "09:05"},
		{name: "24h with seconds", input: "14:30:00", want: "14:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "12h PM", input: "2:30 PM", want: "14:30"},
		{name: "12h AM", input: "9:15 AM", want: "09:15"},
		{name: "12h lowercase", input: "2:30 pm", want: "14:30"},
		{name: "12h no space before suffix", input: "2:30PM", want: "14:30"},
		{name: "noon is 12:00", input: "12:00 PM", want: "12:00"},
		{name: "midnight is 00:00", input: "12:00 AM", want: "00:00"},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "half past nine", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "10:75", wantErr: true},
		{name: "12h hour zero", input: "0:30 AM", wantErr: true},
		{name: "12h hour thirteen", input: "13:00 PM", wantErr: true},
		{name: "missing minutes", input: "14", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Одно и то же время в разных форматах нормализуется к одному значению
func TestNewTimeStringFromString_EquivalentForms(t *testing.T) {
	forms := []string{"14:30", "14:30:00", "2:30 PM", "02:30 PM"}

	for _, form := range forms {
		got, err := NewTimeStringFromString(form)
		require.NoError(t, err, "form %q", form)
		assert.Equal(t, TimeString("14:30"), got, "form %q", form)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "simple add", start: "09:00", minutes: 60, want: "10:00"},
		{name: "cross hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "exactly end of day", start: "23:00", minutes: 60, want: "24:00"},
		{name: "past end of day", start: "23:30", minutes: 60, wantErr: true},
		{name: "zero minutes", start: "12:00", minutes: 0, want: "12:00"},
		{name: "invalid base", start: "garbage", minutes: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	_, err = TimeString("25:00").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))

	// Сентинель конца дня сравнивается позже любого времени
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
	assert.True(t, TimeString("24:00").IsAfter("00:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("9:05")))
	assert.Equal(t, TimeString("09:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("01:30"), ts)

	_, err = NewTimeStringFromMinutes(1440)
	assert.Error(t, err)

	_, err = NewTimeStringFromMinutes(-1)
	assert.Error(t, err)
}
