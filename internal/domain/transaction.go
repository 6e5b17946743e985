package domain

import "github.com/shopspring/decimal" // Decimal money, avoids float drift

// Transaction Model. Append-only ledger row; positive amount = deposit,
// negative amount = withdrawal. The account balance is the sum of its rows.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	AccountID uint            `gorm:"index;not null" json:"account_id"`          // Foreign key to Account
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"` // Signed amount
	CreatedAt int64           `gorm:"autoCreateTime:milli" json:"-"`             // Timestamp of creation in milliseconds
}
