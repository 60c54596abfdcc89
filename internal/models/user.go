package models

import "time"

// User represents a learner. There is no authentication; a user is created
// on first use of the app and identified by a session token afterwards.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Points      int       `json:"points"`
	Progress    int       `json:"progress"`
	LastModule  string    `json:"lastModule"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Session represents the claims carried by a learner's session token
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
