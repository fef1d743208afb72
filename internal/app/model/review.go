package model

import "time"

// Review is a user-submitted product review. The backend enforces at most
// one review per (product, user) pair.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewDraft is the pending rating/comment being composed or edited.
type ReviewDraft struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
