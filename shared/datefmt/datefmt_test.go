package datefmt_test

import (
	"backoffice/shared/datefmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "date only", in: "2025-06-01", want: "2025-06-01T00:00:00Z"},
		{name: "already a timestamp", in: "2025-06-01T09:30:00+09:00", want: "2025-06-01T09:30:00+09:00"},
		{name: "utc timestamp", in: "2025-06-01T00:00:00Z", want: "2025-06-01T00:00:00Z"},
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datefmt.Normalize(tt.in))
		})
	}
}

func TestNormalizePtr(t *testing.T) {
	assert.Nil(t, datefmt.NormalizePtr(""))

	got := datefmt.NormalizePtr("2025-06-15")
	require.NotNil(t, got)
	assert.Equal(t, "2025-06-15T00:00:00Z", *got)
}

func TestDatePart(t *testing.T) {
	assert.Equal(t, "2025-06-03", datefmt.DatePart("2025-06-03T23:59:59Z"))
	assert.Equal(t, "2025-06-03", datefmt.DatePart("2025-06-03"))
	assert.Equal(t, "", datefmt.DatePart(""))
}

func TestDayAndParseDay(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)

	d, err := datefmt.ParseDay("2025-12-31", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", datefmt.Day(d))
	assert.Equal(t, loc, d.Location())

	_, err = datefmt.ParseDay("31/12/2025", loc)
	assert.Error(t, err)
}
