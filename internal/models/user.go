package models

import "time"

// User is the authenticated identity supplied by the session layer.
type User struct {
	UserID         string    `json:"user_id" bson:"user_id"`
	Email          string    `json:"email" bson:"email"`
	Name           string    `json:"name" bson:"name"`
	Picture        string    `json:"picture,omitempty" bson:"picture,omitempty"`
	Role           string    `json:"role" bson:"role"`
	RecentlyViewed []string  `json:"recently_viewed" bson:"recently_viewed"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Session is a server-side login session resolved from a bearer token
// or cookie by the auth middleware.
type Session struct {
	SessionID    string    `json:"session_id" bson:"session_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	SessionToken string    `json:"session_token" bson:"session_token"`
	ExpiresAt    time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Presence is one active editor on an article, as reported to co-editors.
type Presence struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Picture  string    `json:"picture,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}
