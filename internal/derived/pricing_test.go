package derived

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func at(y int, m time.Month, d, hour int) *time.Time {
	t := time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
	return &t
}

func TestNights(t *testing.T) {
	testCases := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected int
	}{
		{
			name:     "Three full days",
			start:    date(2025, time.June, 1),
			end:      date(2025, time.June, 4),
			expected: 3,
		},
		{
			name:     "Single day",
			start:    date(2025, time.June, 1),
			end:      date(2025, time.June, 2),
			expected: 1,
		},
		{
			name:     "Partial day difference still counts the night",
			start:    at(2025, time.June, 1, 23),
			end:      at(2025, time.June, 2, 1),
			expected: 1,
		},
		{
			name:     "Same day floors to one night",
			start:    date(2025, time.June, 1),
			end:      date(2025, time.June, 1),
			expected: 1,
		},
		{
			name:     "Missing end defaults to one night",
			start:    date(2025, time.June, 1),
			end:      nil,
			expected: 1,
		},
		{
			name:     "Missing start defaults to one night",
			start:    nil,
			end:      date(2025, time.June, 4),
			expected: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Nights(tc.start, tc.end))
		})
	}
}

func TestPriceQuote(t *testing.T) {
	services := []domain.Service{
		{ID: "s1", Name: "Breakfast", Price: 150},
		{ID: "s2", Name: "Spa", Price: 400},
	}

	// 1000/night for 3 nights plus one 150 service must come to exactly 3150.
	quote := PriceQuote(1000, date(2025, time.June, 1), date(2025, time.June, 4), services, []domain.ID{"s1"})

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 3000.0, quote.RoomSubtotal)
	assert.Equal(t, 150.0, quote.ServicesSubtotal)
	assert.Equal(t, 3150.0, quote.Total)
}

func TestPriceQuote_UnknownSelectionIgnored(t *testing.T) {
	services := []domain.Service{{ID: "s1", Price: 150}}

	quote := PriceQuote(500, date(2025, time.June, 1), date(2025, time.June, 3), services, []domain.ID{"missing"})

	assert.Equal(t, 0.0, quote.ServicesSubtotal)
	assert.Equal(t, 1000.0, quote.Total)
}

func TestPriceQuote_NoDatesQuotesOneNight(t *testing.T) {
	quote := PriceQuote(800, nil, nil, nil, nil)

	assert.Equal(t, 1, quote.Nights)
	assert.Equal(t, 800.0, quote.Total)
}
