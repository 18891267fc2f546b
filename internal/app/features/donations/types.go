// internal/app/features/donations/types.go
package donations

import "time"

type createInput struct {
	Amount    float64    `json:"amount" validate:"gt=0"`
	Currency  string     `json:"currency" validate:"omitempty,len=3"`
	Type      string     `json:"type" validate:"omitempty,oneof=tithe offering missions building other"`
	Method    string     `json:"method"`
	Status    string     `json:"status" validate:"omitempty,oneof=pending completed failed"`
	Reference string     `json:"reference"`
	Note      string     `json:"note"`
	Anonymous bool       `json:"anonymous"`
	Date      *time.Time `json:"date"`
}

// updateInput is replace-if-present. A zero amount keeps the stored amount.
type updateInput struct {
	Amount    float64    `json:"amount" validate:"gte=0"`
	Currency  string     `json:"currency" validate:"omitempty,len=3"`
	Type      string     `json:"type" validate:"omitempty,oneof=tithe offering missions building other"`
	Method    string     `json:"method"`
	Status    string     `json:"status" validate:"omitempty,oneof=pending completed failed"`
	Reference string     `json:"reference"`
	Note      string     `json:"note"`
	Anonymous *bool      `json:"anonymous"`
	Date      *time.Time `json:"date"`
}

// statsResponse carries decimal sums as JSON numbers.
type statsResponse struct {
	Total      float64            `json:"total"`
	Count      int64              `json:"count"`
	MonthTotal float64            `json:"monthTotal"`
	MonthCount int64              `json:"monthCount"`
	ByType     map[string]float64 `json:"byType"`
}
