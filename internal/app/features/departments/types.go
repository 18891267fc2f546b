// internal/app/features/departments/types.go
package departments

type departmentInput struct {
	Name        string `json:"name" validate:"omitempty,max=120"`
	Description string `json:"description"`
	Head        string `json:"head" validate:"omitempty,mongodb"`
	IsActive    *bool  `json:"isActive"`
}

type memberInput struct {
	UserID string `json:"userId" validate:"omitempty,mongodb"`
}
