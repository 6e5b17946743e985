package domain

import "github.com/shopspring/decimal" // Decimal money, avoids float drift

// Account Model. One account per user, created lazily on the first deposit.
type Account struct {
	ID      uint            `gorm:"primaryKey" json:"id"`                       // Primary key
	OwnerID uint            `gorm:"uniqueIndex;not null" json:"owner_id"`       // Foreign key to User, 1:1
	Balance decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"balance"` // Non-negative balance
}
