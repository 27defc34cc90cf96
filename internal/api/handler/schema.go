package handler

import (
	"github.com/feedwire/feed-service/internal/core/domain"
)

// --- Request / Response types ---

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	UserID string `json:"userId"`
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logInResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type postResponse struct {
	Post *domain.Post `json:"post"`
}

// createPostResponse echoes the owner alongside the new post so clients can
// render the feed entry without a second lookup.
type createPostResponse struct {
	Post    *domain.Post   `json:"post"`
	Creator domain.Creator `json:"creator"`
}
