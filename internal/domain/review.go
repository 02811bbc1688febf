package domain

// BookReview is a rating and text left by a user on a book.
type BookReview struct {
	ID         int64  `json:"id"`
	Rating     int    `json:"rating"`
	Body       string `json:"body"`
	BookID     int64  `json:"book_id"`
	ReviewerID int64  `json:"reviewer_id"`
}

// UserReview is a rating and text left by one user about another.
// ReviewerID and RevieweeID may be equal.
type UserReview struct {
	ID         int64  `json:"id"`
	Rating     int    `json:"rating"`
	Body       string `json:"body"`
	ReviewerID int64  `json:"reviewer_id"`
	RevieweeID int64  `json:"reviewee_id"`
}
