package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-gescom/internal/models"
)

// DashboardService aggregates revenue statistics. Strictly read-only: it
// scans invoices wholesale and sums in memory; only invoices with status
// paid count toward revenue.
type DashboardService struct {
	DB *gorm.DB
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db, Now: time.Now}
}

type MonthRevenue struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type ClientRevenue struct {
	ContactID uint    `json:"contact_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
}

type UnconvertedQuote struct {
	ID        uint      `json:"id"`
	Contact   string    `json:"contact"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"created_at"`
	LineCount int       `json:"line_count"`
}

type Stats struct {
	MonthlyRevenue    float64            `json:"monthly_revenue"`
	SalesEvolution    []MonthRevenue     `json:"sales_evolution"`
	TopClients        []ClientRevenue    `json:"top_clients"`
	UnconvertedQuotes []UnconvertedQuote `json:"unconverted_quotes"`
}

// paidInvoices loads every paid invoice with its line totals grouped.
func (s *DashboardService) paidInvoices() ([]models.Invoice, map[uint]float64, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Contact").Where("status = ?", models.InvoiceStatusPaid).Find(&invoices).Error
	if err != nil {
		return nil, nil, err
	}
	var lines []models.InvoiceOrderLine
	if err := s.DB.Find(&lines).Error; err != nil {
		return nil, nil, err
	}
	totals := make(map[uint]float64, len(invoices))
	for _, l := range lines {
		totals[l.InvoiceID] += l.PriceTax
	}
	return invoices, totals, nil
}

// MonthlyRevenue returns the tax-inclusive revenue of paid invoices whose
// billing date falls in the current month.
func (s *DashboardService) MonthlyRevenue() (float64, error) {
	invoices, totals, err := s.paidInvoices()
	if err != nil {
		return 0, err
	}
	now := s.Now()
	var revenue float64
	for _, inv := range invoices {
		if inv.CreatedAt.Month() == now.Month() && inv.CreatedAt.Year() == now.Year() {
			revenue += totals[inv.ID]
		}
	}
	return models.Round2(revenue), nil
}

// SalesEvolution buckets paid revenue per month over the last 6 months,
// oldest bucket first.
func (s *DashboardService) SalesEvolution() ([]MonthRevenue, error) {
	invoices, totals, err := s.paidInvoices()
	if err != nil {
		return nil, err
	}
	now := s.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	buckets := make([]MonthRevenue, 6)
	index := make(map[string]int, 6)
	for i := 0; i < 6; i++ {
		m := firstOfMonth.AddDate(0, i-5, 0)
		label := m.Format("January 2006")
		buckets[i] = MonthRevenue{Label: label}
		index[label] = i
	}
	for _, inv := range invoices {
		label := inv.CreatedAt.Format("January 2006")
		if i, ok := index[label]; ok {
			buckets[i].Revenue = models.Round2(buckets[i].Revenue + totals[inv.ID])
		}
	}
	return buckets, nil
}

// TopClients ranks contacts by descending paid revenue and returns the
// first five. Ties break on the lower contact id so the ranking is
// deterministic regardless of store iteration order.
func (s *DashboardService) TopClients() ([]ClientRevenue, error) {
	invoices, totals, err := s.paidInvoices()
	if err != nil {
		return nil, err
	}
	byContact := make(map[uint]*ClientRevenue)
	for _, inv := range invoices {
		cr, ok := byContact[inv.ContactID]
		if !ok {
			cr = &ClientRevenue{ContactID: inv.ContactID, Name: inv.Contact.FullName()}
			byContact[inv.ContactID] = cr
		}
		cr.Revenue = models.Round2(cr.Revenue + totals[inv.ID])
	}
	ranked := make([]ClientRevenue, 0, len(byContact))
	for _, cr := range byContact {
		ranked = append(ranked, *cr)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].ContactID < ranked[j].ContactID
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	return ranked, nil
}

// UnconvertedQuotes lists quotes that carry at least one line and were
// never turned into an invoice.
func (s *DashboardService) UnconvertedQuotes() ([]UnconvertedQuote, error) {
	var orders []models.SalesOrder
	err := s.DB.Preload("Contact").Where("type = ?", models.OrderTypeDevis).Order("id").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	var converted []uint
	err = s.DB.Model(&models.Invoice{}).Where("sales_order_id IS NOT NULL").
		Pluck("sales_order_id", &converted).Error
	if err != nil {
		return nil, err
	}
	convertedSet := make(map[uint]bool, len(converted))
	for _, id := range converted {
		convertedSet[id] = true
	}
	var lines []models.SalesOrderLine
	if err := s.DB.Find(&lines).Error; err != nil {
		return nil, err
	}
	lineCount := make(map[uint]int, len(orders))
	for _, l := range lines {
		lineCount[l.SalesOrderID]++
	}

	var quotes []UnconvertedQuote
	for _, o := range orders {
		if convertedSet[o.ID] || lineCount[o.ID] == 0 {
			continue
		}
		quotes = append(quotes, UnconvertedQuote{
			ID:        o.ID,
			Contact:   o.Contact.FullName(),
			Genre:     o.Genre,
			CreatedAt: o.CreatedAt,
			LineCount: lineCount[o.ID],
		})
	}
	return quotes, nil
}

// Stats bundles everything the dashboard page needs in one call.
func (s *DashboardService) Stats() (*Stats, error) {
	monthly, err := s.MonthlyRevenue()
	if err != nil {
		return nil, err
	}
	evolution, err := s.SalesEvolution()
	if err != nil {
		return nil, err
	}
	top, err := s.TopClients()
	if err != nil {
		return nil, err
	}
	unconverted, err := s.UnconvertedQuotes()
	if err != nil {
		return nil, err
	}
	return &Stats{
		MonthlyRevenue:    monthly,
		SalesEvolution:    evolution,
		TopClients:        top,
		UnconvertedQuotes: unconverted,
	}, nil
}
