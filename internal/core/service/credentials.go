package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/feedwire/feed-service/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// bcryptCost matches the cost factor used for all stored password hashes.
const bcryptCost = 12

// Claims is the verified content of a bearer token.
type Claims struct {
	Email  string
	UserID string
}

// IdentityState classifies the outcome of credential verification.
type IdentityState int

const (
	// IdentityAnonymous means no credential accompanied the request.
	IdentityAnonymous IdentityState = iota
	// IdentityAuthenticated means a valid credential was verified.
	IdentityAuthenticated
	// IdentityInvalid means a credential was supplied but failed verification.
	IdentityInvalid
)

// Identity is the typed result of the shared verification primitive. Both
// access gate modes are call-sites of Authenticate and only differ in the
// policy they apply to the returned state.
type Identity struct {
	State  IdentityState
	UserID string
	Email  string
}

// Credentials issues and verifies the system's bearer tokens and password
// hashes. The signing secret and token lifetime are injected at construction;
// nothing is read from ambient process state.
type Credentials struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewCredentials(secret string, tokenTTL time.Duration) *Credentials {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Credentials{secret: []byte(secret), tokenTTL: tokenTTL}
}

// HashPassword returns a salted one-way hash of plaintext. Each call produces
// a different hash; all of them verify against the same plaintext.
func (c *Credentials) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func (c *Credentials) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken signs a token carrying the user's email and id, expiring after
// the configured lifetime.
func (c *Credentials) IssueToken(email, userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email":  email,
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(c.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// VerifyToken parses and verifies a token. Any structural, signature or expiry
// failure is reported uniformly as domain.ErrInvalidToken so the token
// contents never reveal which check failed.
func (c *Credentials) VerifyToken(token string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &Claims{Email: email, UserID: userID}, nil
}

// Authenticate classifies an Authorization header value. It is the single
// verification primitive behind both access gate modes: a missing or
// malformed header is Anonymous, a failed verification is Invalid, and a
// verified bearer token is Authenticated with the embedded user id.
func (c *Credentials) Authenticate(authHeader string) Identity {
	if authHeader == "" {
		return Identity{State: IdentityAnonymous}
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Identity{State: IdentityInvalid}
	}

	claims, err := c.VerifyToken(parts[1])
	if err != nil {
		return Identity{State: IdentityInvalid}
	}
	return Identity{State: IdentityAuthenticated, UserID: claims.UserID, Email: claims.Email}
}
