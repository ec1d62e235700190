package derived

import "github.com/moharam-dev/hotelbook/internal/domain"

// RatingStats summarizes a room's review collection.
type RatingStats struct {
	Count   int
	Average float64

	// Histogram holds the share of reviews per star, index 0 = one star,
	// as percentages of the total.
	Histogram [5]float64
}

func ComputeRatingStats(reviews []domain.Review) RatingStats {
	stats := RatingStats{Count: len(reviews)}
	if len(reviews) == 0 {
		return stats
	}

	var sum float64
	var counts [5]int
	for _, r := range reviews {
		sum += r.Rating
		star := int(r.Rating)
		if star >= 1 && star <= 5 && r.Rating == float64(star) {
			counts[star-1]++
		}
	}
	stats.Average = sum / float64(len(reviews))
	for i, n := range counts {
		stats.Histogram[i] = float64(n) / float64(len(reviews)) * 100
	}
	return stats
}

// DisplayRating prefers the backend's precomputed average when it has one,
// falling back to the local computation over the fetched reviews.
func DisplayRating(room *domain.Room, reviews []domain.Review) (average float64, count int) {
	count = room.TotalReviews
	if count == 0 {
		count = len(reviews)
	}
	if room.AverageRating > 0 {
		return room.AverageRating, count
	}
	return ComputeRatingStats(reviews).Average, count
}

// MergeReviews folds locally pending reviews into a fresh authoritative
// fetch. A pending entry survives only until the server echoes a review with
// the same comment from the same guest.
func MergeReviews(fetched, pending []domain.Review) []domain.Review {
	unconfirmed := UnconfirmedPending(fetched, pending)
	return append(unconfirmed, fetched...)
}

// UnconfirmedPending returns the pending reviews the fetched list does not
// yet contain.
func UnconfirmedPending(fetched, pending []domain.Review) []domain.Review {
	confirmed := make(map[string]bool, len(fetched))
	for _, r := range fetched {
		confirmed[r.UserName+"\x00"+r.Comment] = true
	}

	var out []domain.Review
	for _, p := range pending {
		if !confirmed[p.UserName+"\x00"+p.Comment] {
			out = append(out, p)
		}
	}
	return out
}
