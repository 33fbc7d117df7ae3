package domain

import "time"

// Session is an authenticated remote session. The core only asks whether it is
// usable and which user it binds to.
type Session struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
}

// Valid reports whether the session can still be used at now
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && s.UserID != "" && now.Before(s.ExpiresAt)
}
