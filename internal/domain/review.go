package domain

import "time"

// ReviewAuthor carries the display fields resolved on every review read.
type ReviewAuthor struct {
	Name  string
	Photo string
}

// Review belongs to exactly one tour and one user; both references are set at
// creation and never change. Reads always resolve the author display fields.
type Review struct {
	ID        string
	Review    string
	Rating    int
	TourID    string
	UserID    string
	Author    ReviewAuthor
	CreatedAt time.Time
	UpdatedAt time.Time
}
