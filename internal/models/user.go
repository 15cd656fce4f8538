// internal/models/user.go
package models

// ReaderProfile is the directory entry joined into progress views. Read-only
// to the review engine.
type ReaderProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// User couples a profile with its role assignment.
type User struct {
	Profile ReaderProfile `json:"profile"`
	Role    string        `json:"role"`
}
