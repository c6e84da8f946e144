package domain

import "time"

// User is keyed by email. Password is stored and compared as plaintext,
// a known defect; see DESIGN.md.
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}
