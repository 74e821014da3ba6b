package models

import "time"

// Invoice payment statuses. The two legacy values still exist in old rows
// and stay accepted on update, but new invoices start as pending.
const (
	InvoiceStatusPending      = "pending"
	InvoiceStatusPaid         = "paid"
	InvoiceStatusInstallments = "installments" // legacy: paiement en plusieurs fois
	InvoiceStatusCancelled    = "cancelled"    // legacy
)

// Invoice snapshots the contact's profile at conversion time so that later
// contact edits never rewrite issued invoices. CreatedAt doubles as the
// billing date used for revenue-period bucketing and may be adjusted.
type Invoice struct {
	ID        uint    `gorm:"primaryKey"`
	ContactID uint    `gorm:"not null;index"`
	Contact   Contact `gorm:"foreignKey:ContactID"`
	// SalesOrderID links back to the converted quote/order when the invoice
	// came from the conversion pipeline; nil for invoices created directly.
	SalesOrderID *uint     `gorm:"index"`
	Name         string    `gorm:"size:61;not null"`
	Address      string    `gorm:"size:255"`
	City         string    `gorm:"size:30"`
	State        string    `gorm:"size:30"`
	ZipCode      string    `gorm:"size:30"`
	SIRET        string    `gorm:"size:14"`
	Email        string    `gorm:"size:254"`
	Phone        string    `gorm:"size:30"`
	Status       string    `gorm:"size:20;not null;default:'pending';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Paid reports whether the invoice counts toward revenue.
func (i *Invoice) Paid() bool { return i.Status == InvoiceStatusPaid }

// InvoiceOrderLine is the copy of a sales-order line attached to an
// invoice. PriceTax mirrors the order line's PriceIT.
type InvoiceOrderLine struct {
	ID        uint      `gorm:"primaryKey"`
	InvoiceID uint      `gorm:"not null;index"`
	Invoice   Invoice   `gorm:"foreignKey:InvoiceID"`
	ProductID uint      `gorm:"not null;index"`
	Product   Product   `gorm:"foreignKey:ProductID"`
	ContactID uint      `gorm:"not null;index"`
	Contact   Contact   `gorm:"foreignKey:ContactID"`
	PriceHT   float64   `gorm:"not null"`
	Tax       float64   `gorm:"not null"`
	PriceTax  float64   `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	Date      time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
