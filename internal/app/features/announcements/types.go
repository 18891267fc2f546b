// internal/app/features/announcements/types.go
package announcements

import "time"

type createInput struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Content   string     `json:"content" validate:"required"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Pinned    bool       `json:"pinned"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// updateInput is replace-if-present; pinned applies whenever present,
// including false.
type updateInput struct {
	Title     string     `json:"title" validate:"omitempty,max=200"`
	Content   string     `json:"content"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Pinned    *bool      `json:"pinned"`
	ExpiresAt *time.Time `json:"expiresAt"`
}
