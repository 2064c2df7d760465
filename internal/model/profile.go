package model

import "time"

// Profile is an end-user identity. Owner and user ID fields elsewhere refer
// to profiles by convention only; no foreign key enforces it.
type Profile struct {
	ID        string    `json:"id"        db:"id"`
	Username  string    `json:"username"  db:"username"` // unique when non-empty
	FullName  string    `json:"fullName"  db:"full_name"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// VerificationToken is an email-verification token keyed by its value.
// Expired rows are never purged automatically; lookups treat them as absent.
type VerificationToken struct {
	Token     string    `json:"token"     db:"token"`
	UserID    string    `json:"userId"    db:"user_id"`
	Email     string    `json:"email"     db:"email"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
