// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation status values. Status is client-supplied; no transition rules apply.
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

// DonationStatuses lists the accepted status values.
var DonationStatuses = []string{DonationPending, DonationCompleted, DonationFailed}

// Donation types.
const (
	DonationTithe    = "tithe"
	DonationOffering = "offering"
	DonationMissions = "missions"
	DonationBuilding = "building"
	DonationOther    = "other"
)

// DonationTypes lists the accepted donation types.
var DonationTypes = []string{DonationTithe, DonationOffering, DonationMissions, DonationBuilding, DonationOther}

// Donation is a recorded gift. Amount is stored as a double; sums are computed
// with decimal arithmetic by the store.
type Donation struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Amount    float64            `bson:"amount" json:"amount"`
	Currency  string             `bson:"currency" json:"currency"`
	Type      string             `bson:"type" json:"type"`
	Method    string             `bson:"method,omitempty" json:"method,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Reference string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	Anonymous bool               `bson:"anonymous" json:"anonymous"`
	Date      time.Time          `bson:"date" json:"date"`
	Donor     primitive.ObjectID `bson:"donor" json:"donor"`
	ChurchID  primitive.ObjectID `bson:"church" json:"church"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidDonationStatus reports whether s is one of DonationStatuses.
func IsValidDonationStatus(s string) bool {
	for _, v := range DonationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidDonationType reports whether t is one of DonationTypes.
func IsValidDonationType(t string) bool {
	for _, v := range DonationTypes {
		if v == t {
			return true
		}
	}
	return false
}
