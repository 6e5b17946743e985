package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`            // Primary key
	Username string `gorm:"unique;not null" json:"username"` // Unique username, immutable after registration
	Password string `gorm:"not null" json:"-"`               // Bcrypt hash, never serialized
}
