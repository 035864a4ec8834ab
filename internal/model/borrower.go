package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BorrowerStatus represents the repayment status of a borrower.
type BorrowerStatus string

const (
	BorrowerStatusActive    BorrowerStatus = "Active"
	BorrowerStatusPending   BorrowerStatus = "Pending"
	BorrowerStatusDefaulted BorrowerStatus = "Defaulted"
)

// ValidStatus reports whether s is one of the known status labels.
func ValidStatus(s BorrowerStatus) bool {
	switch s {
	case BorrowerStatusActive, BorrowerStatusPending, BorrowerStatusDefaulted:
		return true
	}
	return false
}

// Borrower represents a loan-tracking record. Borrowers are not owned by
// any user account.
type Borrower struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:120;not null"`
	LoanAmount decimal.Decimal `json:"loan_amount" gorm:"type:decimal(20,2);not null"`
	Status     BorrowerStatus  `json:"status" gorm:"type:varchar(50);not null;default:'Pending';index"`
	// Deprecated: legacy column kept so existing rows migrate cleanly.
	Loan      decimal.Decimal `json:"-" gorm:"type:decimal(20,2);default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
