package domain

import "time"

type Review struct {
	ID       ID
	RoomID   ID
	UserName string
	Rating   float64
	Comment  string
	Date     *time.Time

	// Pending marks a review inserted locally right after submission, before
	// the next authoritative fetch replaces it.
	Pending bool
}

type RawReview struct {
	ID       ID     `json:"id"`
	RoomID   ID     `json:"roomId"`
	UserName string `json:"userName"`
	Rating   Amount `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

func (r RawReview) Normalize() Review {
	name := r.UserName
	if name == "" {
		name = "Guest"
	}
	return Review{
		ID:       r.ID,
		RoomID:   r.RoomID,
		UserName: name,
		Rating:   float64(r.Rating),
		Comment:  r.Comment,
		Date:     parseTime(r.Date),
	}
}

func NormalizeReviews(raw []RawReview) []Review {
	reviews := make([]Review, 0, len(raw))
	for _, r := range raw {
		reviews = append(reviews, r.Normalize())
	}
	return reviews
}
