package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a billing counterparty.
type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null;index" json:"name"`
	Phone     string       `gorm:"type:text;not null" json:"phone"`
	Address   string       `gorm:"type:text;not null" json:"address"`
	Notes     *string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
