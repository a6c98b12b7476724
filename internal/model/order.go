package model

import "time"

// Order is one ordered unit of a menu item for a table.
type Order struct {
	ID        int64     `gorm:"primaryKey"`
	TableID   int64     `gorm:"index;not null"`
	ItemID    int64     `gorm:"index;not null"`
	ReadyAt   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Item MenuItem `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT"`
}
