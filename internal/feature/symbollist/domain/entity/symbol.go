// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol is a ticker offered as a suggestion in the dashboard's ticker field.
// Inactive symbols are kept in storage but hidden from the list.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
