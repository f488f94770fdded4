package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"2024-2-29", "2023-02-29", "29/02/2024", "2024-02-29T00:00:00Z", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateEquality(t *testing.T) {
	a := DateOf(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))
	b := MustParseDate("2024-01-02")
	assert.True(t, a == b)

	m := map[Date]int{a: 1}
	assert.Equal(t, 1, m[b])
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"time", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05-06"},
		{"string", "2024-05-06", "2024-05-06"},
		{"timestamp text", "2024-05-06 00:00:00+00:00", "2024-05-06"},
		{"bytes", []byte("2024-05-06"), "2024-05-06"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.value))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDateValueAndJSON(t *testing.T) {
	d := MustParseDate("2024-05-06")
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", v)

	raw, err := json.Marshal(struct {
		Date Date  `json:"date"`
		Zero *Date `json:"zero"`
	}{Date: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-06","zero":null}`, string(raw))

	var back struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-05-07"}`), &back))
	assert.Equal(t, "2024-05-07", back.Date.String())
}

func TestDaysUntil(t *testing.T) {
	a := MustParseDate("2024-01-01")
	assert.Equal(t, 30, a.DaysUntil(MustParseDate("2024-01-31")))
	assert.Equal(t, -1, a.DaysUntil(MustParseDate("2023-12-31")))
}
