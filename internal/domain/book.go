package domain

// Book is a physical copy owned by exactly one user.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	ImageLink string `json:"image_link"`
	Genre     string `json:"genre"`
	Pages     int    `json:"pages"`
	OwnerID   int64  `json:"owner_id"`
}
