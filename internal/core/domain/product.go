package domain

import "time"

// Product belongs to exactly one category. The association is RESTRICT on
// delete; category removal is blocked at the store while products reference it.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Discount    float64   `json:"discount" gorm:"not null;default:0"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	SKU         string    `json:"sku" gorm:"uniqueIndex;size:64"`
	Weight      *float64  `json:"weight,omitempty"`
	Dimensions  string    `json:"dimensions,omitempty" gorm:"size:100"`
	SoldCount   int       `json:"sold_count" gorm:"not null;default:0"`
	Rating      float64   `json:"rating" gorm:"not null;default:0"`
	RatingCount int       `json:"rating_count" gorm:"not null;default:0"`
	Featured    bool      `json:"featured" gorm:"not null;default:false"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DiscountedPrice applies the percentage discount to the list price.
func (p *Product) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
