package models

import "time"

// Contact types
const (
	ContactTypeClient      = "client"
	ContactTypeFournisseur = "fournisseur"
)

// Contact entity – clients et fournisseurs
type Contact struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:30;not null"`
	LastName  string `gorm:"size:30;not null;index"`
	Email     string `gorm:"size:254"`
	Type      string `gorm:"size:30;not null;index"` // client ou fournisseur
	SIRET     string `gorm:"size:14"`                // 14 chiffres quand renseigné
	Phone     string `gorm:"size:30"`
	Address   string `gorm:"size:255"`
	City      string `gorm:"size:30"`
	State     string `gorm:"size:30"`
	ZipCode   string `gorm:"size:30"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last" for display and exports.
func (c *Contact) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}

// IsClient reports whether the contact may own quotes/orders/invoices.
func (c *Contact) IsClient() bool { return c.Type == ContactTypeClient }
