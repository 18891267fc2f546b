// internal/app/features/groups/types.go
package groups

type groupInput struct {
	Name        string `json:"name" validate:"omitempty,max=120"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Privacy     string `json:"privacy" validate:"omitempty,oneof=public private secret"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type adminInput struct {
	UserID string `json:"userId" validate:"required,mongodb"`
}
