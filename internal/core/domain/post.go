package domain

import "time"

// Creator is the denormalized owner reference embedded in every post.
// The id is immutable after creation; ownership checks compare against it.
type Creator struct {
	ID   string `json:"_id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// Post is a single feed item. ImageURL is the public path of the backing
// asset, or the reserved placeholder when the author uploaded no image.
type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Creator   Creator   `json:"creator"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
