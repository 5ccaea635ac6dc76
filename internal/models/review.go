package models

import "time"

type Review struct {
	ID         int64
	ProductID  int64
	UserID     int64
	Rating     int
	Title      string
	Comment    string
	IsVerified bool
	CreatedAt  time.Time
}

func (r *Review) Validate() error {
	v := validator{entity: "review"}
	v.positiveID("product_id", r.ProductID)
	v.positiveID("user_id", r.UserID)
	if r.Rating < 1 || r.Rating > 5 {
		v.fail("rating", "must be between 1 and 5, got %d", r.Rating)
	}
	v.maxLen("title", r.Title, 200)
	v.maxLen("comment", r.Comment, 2000)
	return v.err
}
