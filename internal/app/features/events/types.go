// internal/app/features/events/types.go
package events

import "time"

type createInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
	IsPublic    bool       `json:"isPublic"`
}

// updateInput is replace-if-present. Empty strings and absent dates keep the
// stored value; isPublic replaces whenever it is present, including false.
type updateInput struct {
	Title       string     `json:"title" validate:"omitempty,max=200"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	EndDate     *time.Time `json:"endDate"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
	IsPublic    *bool      `json:"isPublic"`
}

type rsvpInput struct {
	Attending *bool `json:"attending"`
}
