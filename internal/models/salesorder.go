package models

import "time"

// Document kinds shared by quotes and orders. Only a Devis may be shared
// and signed through a public link; a Commande is never shareable.
const (
	OrderTypeDevis    = "Devis"
	OrderTypeCommande = "Commande"
)

// Lifecycle statuses. "ordered" exists as a value but no transition reaches
// it yet (kept for the Devis→Commande conversion that may set it later).
const (
	OrderStatusSent    = "sent"
	OrderStatusSigned  = "signed"
	OrderStatusOrdered = "ordered"
)

// SalesOrder représente un devis ou une commande.
// PublicHash/HashExpiresAt are always set or cleared together; once the
// order is signed both are cleared and can never be reissued.
type SalesOrder struct {
	ID            uint    `gorm:"primaryKey"`
	ContactID     uint    `gorm:"not null;index"`
	Contact       Contact `gorm:"foreignKey:ContactID"`
	Genre         string  `gorm:"size:30;not null"`
	Type          string  `gorm:"size:30;not null;default:'Devis'"` // Devis ou Commande
	Status        string  `gorm:"size:20;not null;default:'sent'"`  // sent, signed, ordered
	PublicHash    *string `gorm:"size:64;uniqueIndex"`
	HashExpiresAt *time.Time
	SignedAt      *time.Time
	SignedIP      *string `gorm:"size:45"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasToken reports whether a share token is currently stored.
// Both fields travel together; checking either would do, we check both.
func (o *SalesOrder) HasToken() bool {
	return o.PublicHash != nil && o.HashExpiresAt != nil
}

// Signed reports whether the order reached its terminal signing state.
func (o *SalesOrder) Signed() bool { return o.Status == OrderStatusSigned }

// SalesOrderLine carries the pricing snapshot of one product on an order.
// PriceIT is computed once at creation (price_ht × quantity × (1+tax/100))
// and never re-derived afterwards.
type SalesOrderLine struct {
	ID           uint       `gorm:"primaryKey"`
	SalesOrderID uint       `gorm:"not null;index"`
	SalesOrder   SalesOrder `gorm:"foreignKey:SalesOrderID"`
	ProductID    uint       `gorm:"not null;index"`
	Product      Product    `gorm:"foreignKey:ProductID"`
	ContactID    uint       `gorm:"not null;index"`
	Contact      Contact    `gorm:"foreignKey:ContactID"`
	PriceHT      float64    `gorm:"not null"`
	Tax          float64    `gorm:"not null"` // pourcentage 0..100
	PriceIT      float64    `gorm:"not null"`
	Quantity     int        `gorm:"not null"`
	Date         time.Time  `gorm:"not null"`
	Genre        string     `gorm:"size:50;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalHT returns the tax-exclusive line total.
func (l *SalesOrderLine) TotalHT() float64 { return Round2(l.PriceHT * float64(l.Quantity)) }

// LinePriceIncludingTax computes the line total including tax, rounded to
// 2 decimal places. Used at line creation only.
func LinePriceIncludingTax(priceHT, tax float64, quantity int) float64 {
	return Round2(priceHT * float64(quantity) * (1 + tax/100))
}
