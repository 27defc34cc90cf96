package domain

// DefaultStatus is assigned to every freshly signed-up user.
const DefaultStatus = "I am new!"

// User models a registered account. Posts holds the ids of every post the
// user created, in creation order.
type User struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Status       string   `json:"status"`
	Posts        []string `json:"posts"`
}
