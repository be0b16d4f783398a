package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Day
		wantErr bool
	}{
		{name: "plain date", input: "2024-06-01", want: "2024-06-01"},
		{name: "iso timestamp", input: "2024-06-01T00:00:00.000Z", want: "2024-06-01"},
		{name: "rfc3339 with offset", input: "2024-06-01T23:30:00-02:00", want: "2024-06-02"},
		{name: "surrounding spaces", input: " 2024-06-01 ", want: "2024-06-01"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "June 1st", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDay_JSON(t *testing.T) {
	var v struct {
		Date Day `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-06-01T00:00:00.000Z"}`), &v))
	assert.Equal(t, Day("2024-06-01"), v.Date)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-01"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"not a day"}`), &v))
}

func TestDay_Time(t *testing.T) {
	d := DayOf(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, Day("2024-06-01"), d)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, Day("2024-06-01"), Today(time.Date(2024, 6, 1, 23, 59, 0, 0, time.FixedZone("X", 5*3600))))
}

func TestParseShift(t *testing.T) {
	s, err := ParseShift("am")
	require.NoError(t, err)
	assert.Equal(t, ShiftAM, s)

	s, err = ParseShift("PM")
	require.NoError(t, err)
	assert.Equal(t, ShiftPM, s)

	_, err = ParseShift("night")
	assert.Error(t, err)
	assert.False(t, Shift("").Valid())
}

func TestShiftMatch_Label(t *testing.T) {
	assert.Equal(t, "No job", ShiftMatch{}.Label())
	assert.Equal(t, "Job: Warehouse", ShiftMatch{Job: &Job{Title: "Warehouse"}}.Label())
}

func TestDay_Scan(t *testing.T) {
	var d Day
	require.NoError(t, d.Scan(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Day("2024-06-01"), d)

	require.NoError(t, d.Scan([]byte("2024-06-02")))
	assert.Equal(t, Day("2024-06-02"), d)

	assert.Error(t, d.Scan(42))

	v, err := Day("2024-06-03").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", v)
}
