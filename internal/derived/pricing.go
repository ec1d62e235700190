// Package derived holds the page-level computations built from fetched
// entities: stay pricing, pagination, list filters, dashboard aggregates and
// review statistics. Everything here is a pure function of its inputs;
// nothing is persisted or incrementally maintained.
package derived

import (
	"math"
	"time"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

// Nights is the billable night count for a stay. Both dates are normalized
// to midnight before subtracting so a partial-day difference never rounds a
// valid multi-day stay down to zero. With either date missing the count
// defaults to 1 for display; submission is blocked separately.
func Nights(start, end *time.Time) int {
	if start == nil || end == nil {
		return 1
	}
	s := midnight(*start)
	e := midnight(*end)
	days := int(math.Ceil(e.Sub(s).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Quote is the client-side price preview. The server recomputes the
// authoritative total; this one is display only.
type Quote struct {
	Nights           int
	RoomSubtotal     float64
	ServicesSubtotal float64
	Total            float64
}

func PriceQuote(nightlyRate float64, start, end *time.Time, services []domain.Service, selected []domain.ID) Quote {
	nights := Nights(start, end)

	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id.Key()] = true
	}

	var servicesTotal float64
	for _, svc := range services {
		if chosen[svc.ID.Key()] {
			servicesTotal += svc.Price
		}
	}

	roomTotal := nightlyRate * float64(nights)
	return Quote{
		Nights:           nights,
		RoomSubtotal:     roomTotal,
		ServicesSubtotal: servicesTotal,
		Total:            roomTotal + servicesTotal,
	}
}
