package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/validation"
)

// SalesOrderService governs quotes/orders: CRUD, the sent→signed lifecycle
// and the public share-token handshake. It holds no state besides its
// collaborators; construct one per wiring and share it freely.
type SalesOrderService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewSalesOrderService(db *gorm.DB, secret string, tokenTTL time.Duration) *SalesOrderService {
	return &SalesOrderService{DB: db, Secret: []byte(secret), TokenTTL: tokenTTL, Now: time.Now}
}

// SalesOrderInput is the mutable surface of an order: everything else is
// owned by the signature protocol.
type SalesOrderInput struct {
	ContactID uint
	Genre     string
	Type      string
}

func (s *SalesOrderService) validate(in SalesOrderInput) error {
	v := make(validation.Violations)
	validation.Required("genre", in.Genre, v)
	validation.OneOf("type", in.Type, []string{models.OrderTypeDevis, models.OrderTypeCommande}, v)

	var contact models.Contact
	err := s.DB.First(&contact, in.ContactID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		v["contact_id"] = "unknown_contact"
	case err != nil:
		return err
	case !contact.IsClient():
		v["contact_id"] = "contact_must_be_client"
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (s *SalesOrderService) Create(in SalesOrderInput) (*models.SalesOrder, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	order := models.SalesOrder{
		ContactID: in.ContactID,
		Genre:     in.Genre,
		Type:      in.Type,
		Status:    models.OrderStatusSent,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, err
	}
	return s.Get(order.ID)
}

func (s *SalesOrderService) Get(id uint) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := s.DB.Preload("Contact").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *SalesOrderService) List() ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := s.DB.Preload("Contact").Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SalesOrderService) ListByType(orderType string) ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := s.DB.Preload("Contact").Where("type = ?", orderType).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SalesOrderService) ListByContact(contactID uint) ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := s.DB.Preload("Contact").Where("contact_id = ?", contactID).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update changes contact/genre/type only. Signature fields are off-limits
// here; they belong to the protocol below.
func (s *SalesOrderService) Update(id uint, in SalesOrderInput) (*models.SalesOrder, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	updates := map[string]any{"contact_id": in.ContactID, "genre": in.Genre, "type": in.Type}
	if err := s.DB.Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *SalesOrderService) Delete(id uint) error {
	res := s.DB.Delete(&models.SalesOrder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.DB.Where("sales_order_id = ?", id).Delete(&models.SalesOrderLine{}).Error
}

// --- Signature protocol -------------------------------------------------

// generateToken derives a fixed-length, unguessable token from the order
// identity, the issuance instant and a fresh UUID. The HMAC keeps it
// irreversible: the order id cannot be recovered from the token.
func (s *SalesOrderService) generateToken(orderID uint, issuedAt time.Time) string {
	mac := hmac.New(sha256.New, s.Secret)
	fmt.Fprintf(mac, "%d.%d.%s", orderID, issuedAt.UnixNano(), uuid.NewString())
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// IssueShareToken issues (or reissues) the public share token for a quote.
// Only an unsigned Devis may be shared. Reissuing overwrites the previous
// token, which immediately stops validating. Token and expiry are persisted
// in a single UPDATE so readers never observe a half-written pair.
func (s *SalesOrderService) IssueShareToken(orderID uint) (string, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return "", err
	}
	if order.Signed() {
		return "", ErrAlreadySigned
	}
	if order.Type != models.OrderTypeDevis {
		return "", ErrShareNotAllowed
	}
	now := s.Now()
	token := s.generateToken(orderID, now)
	expiry := now.Add(s.TokenTTL)
	err = s.DB.Model(&models.SalesOrder{}).Where("id = ?", orderID).
		Updates(map[string]any{"public_hash": token, "hash_expires_at": expiry}).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

// clearToken atomically removes the token/expiry pair.
func (s *SalesOrderService) clearToken(orderID uint) error {
	return s.DB.Model(&models.SalesOrder{}).Where("id = ?", orderID).
		Updates(map[string]any{"public_hash": nil, "hash_expires_at": nil}).Error
}

// ValidateToken reports whether the presented token currently grants access
// to the order. An expired token is cleared from storage as a side effect,
// so a later call reports invalid against an empty pair.
func (s *SalesOrderService) ValidateToken(order *models.SalesOrder, presented string) (bool, error) {
	if order == nil || !order.HasToken() {
		return false, nil
	}
	if !s.Now().Before(*order.HashExpiresAt) {
		if err := s.clearToken(order.ID); err != nil {
			return false, err
		}
		order.PublicHash = nil
		order.HashExpiresAt = nil
		return false, nil
	}
	return hmac.Equal([]byte(*order.PublicHash), []byte(presented)), nil
}

// ResolveByToken finds the order holding the presented token. Expired
// matches are cleared and reported as not found, same as a miss.
func (s *SalesOrderService) ResolveByToken(presented string) (*models.SalesOrder, error) {
	if presented == "" {
		return nil, ErrNotFound
	}
	var order models.SalesOrder
	err := s.DB.Preload("Contact").Where("public_hash = ?", presented).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ok, err := s.ValidateToken(&order, presented)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// Sign transitions the order to its terminal signed state, records the
// signing instant and origin address, and clears the share token in the
// same UPDATE. The WHERE clause is a compare-and-set on status so two
// concurrent signers can never both succeed.
func (s *SalesOrderService) Sign(orderID uint, actingAddr string) (*models.SalesOrder, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Signed() {
		return nil, ErrAlreadySigned
	}
	now := s.Now()
	updates := map[string]any{
		"status":          models.OrderStatusSigned,
		"signed_at":       now,
		"public_hash":     nil,
		"hash_expires_at": nil,
	}
	if actingAddr != "" {
		updates["signed_ip"] = actingAddr
	}
	res := s.DB.Model(&models.SalesOrder{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusSent).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race (or the status moved under us): report as already signed.
		return nil, ErrAlreadySigned
	}
	return s.Get(orderID)
}
