package domain

import "time"

// Category groups products. Deletion is soft: the row is marked inactive,
// and only when no active product references it.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string    `json:"description,omitempty" gorm:"size:500"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	Products    []Product `json:"products,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
