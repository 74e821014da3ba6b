package models

import (
	"math"
	"time"
)

// Product types
const (
	ProductTypeAchat      = "achat"
	ProductTypeVente      = "vente"
	ProductTypeAchatVente = "achat/vente"
)

// Product catalogue entry. PriceHT is tax-exclusive, Tax a percentage
// (0..100) and PriceIT the tax-inclusive price stored alongside, validated
// against the derived formula at creation.
type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Description string  `gorm:"size:40;not null;unique"`
	PriceHT     float64 `gorm:"not null"`
	Tax         float64 `gorm:"not null"` // pourcentage 0..100
	PriceIT     float64 `gorm:"not null"`
	Type        string  `gorm:"size:20;not null;default:'achat/vente'"` // achat, vente, achat/vente
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sellable reports whether the product may appear on a quote/order line.
func (p *Product) Sellable() bool {
	return p.Type == ProductTypeVente || p.Type == ProductTypeAchatVente
}

// PriceIncludingTax computes the tax-inclusive price from a tax-exclusive
// base, rounded to 2 decimal places.
func PriceIncludingTax(priceHT, tax float64) float64 {
	return Round2(priceHT * (1 + tax/100))
}

// Round2 rounds to 2 decimal places (monetary amounts).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
