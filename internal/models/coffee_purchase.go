package models

import "github.com/google/uuid"

type PurchaseStatus string

const (
	StatusPending  PurchaseStatus = "pending"
	StatusApproved PurchaseStatus = "approved"
	StatusRejected PurchaseStatus = "rejected"
)

type PaymentType string

const (
	PaymentUPI  PaymentType = "upi"
	PaymentBank PaymentType = "bank"
)

func (p PaymentType) Valid() bool {
	return p == PaymentUPI || p == PaymentBank
}

// CoffeePurchase references its user and project by ID only.
// No foreign key constraint: deleting either leaves the purchase in place.
type CoffeePurchase struct {
	Base
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	ProjectID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"projectId"`
	ProjectTitle    string         `gorm:"type:varchar(200);not null" json:"projectTitle"`
	NumberOfCoffees int            `gorm:"not null" json:"numberOfCoffees"`
	TotalAmount     float64        `gorm:"not null" json:"totalAmount"`
	Status          PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ProjectLink     string         `gorm:"type:text" json:"projectLink"`
	RejectionReason string         `gorm:"type:text" json:"rejectionReason"`
	PaymentProof    string         `gorm:"type:text" json:"paymentProof"`
	PaymentType     PaymentType    `gorm:"type:varchar(10);not null;default:'upi'" json:"paymentType"`
	UTR             string         `gorm:"type:varchar(100)" json:"utr"`
}

// IsDecided reports whether the purchase reached a terminal status
func (p *CoffeePurchase) IsDecided() bool {
	return p.Status == StatusApproved || p.Status == StatusRejected
}

// UserSummary is the subset of a user shown next to a purchase
type UserSummary struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PurchaseView is a purchase with its buyer resolved for the admin list.
// Buyer replaces the userId string in JSON and is null when the account
// no longer exists.
type PurchaseView struct {
	CoffeePurchase
	Buyer *UserSummary `json:"userId"`
}
