package services

import (
	"fmt"
	"math"
	"time"

	"github.com/diewo77/cleanbiz/internal/models"
	"github.com/diewo77/cleanbiz/internal/store"
	"github.com/diewo77/cleanbiz/validation"
	"github.com/google/uuid"
)

// DefaultTaxRate is the sales tax percentage applied when a draft does not
// carry an explicit rate.
const DefaultTaxRate = 8.5

// round2 rounds to currency precision. Amounts are stored already rounded so
// stored totals never disagree with what was presented.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Totals is the derived money breakdown of a cart at a given tax rate.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// LineInput references a catalog product to bill at a quantity.
type LineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// InvoiceDraft is the user-supplied material an invoice is built from. The
// customer fields are denormalized onto the invoice; CustomerID stays a weak
// reference only.
type InvoiceDraft struct {
	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Lines           []LineInput
	TaxRate         *float64 // percent; nil means DefaultTaxRate
}

// InvoiceService owns the invoice lifecycle: cart building, totals, numbering,
// create/update/status/delete.
type InvoiceService struct {
	Store *store.Store
}

func NewInvoiceService(st *store.Store) *InvoiceService { return &InvoiceService{Store: st} }

// ComputeTotals derives subtotal, tax amount, and grand total from a cart.
// It is recomputed from the items on every call; nothing is cached.
func (s *InvoiceService) ComputeTotals(items []models.InvoiceItem, taxRatePercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Total
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRatePercent / 100)
	return Totals{Subtotal: subtotal, Tax: tax, Total: round2(subtotal + tax)}
}

// FormatInvoiceNumber renders the human-readable number for a sequence slot:
// INV-{YYYY}{MM}-{seq} with the sequence zero-padded to four digits.
func FormatInvoiceNumber(seq int, now time.Time) string {
	return fmt.Sprintf("INV-%04d%02d-%04d", now.Year(), int(now.Month()), seq)
}

// AddLineItem appends a line snapshotting the product's current name and
// price. Historical invoices keep these values even if the product changes.
func (s *InvoiceService) AddLineItem(cart []models.InvoiceItem, product models.Product, quantity int) ([]models.InvoiceItem, error) {
	if quantity < 1 {
		v := validation.Violations{}
		validation.PositiveInt("quantity", quantity, v)
		return cart, invalid(v)
	}
	item := models.InvoiceItem{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
		Total:       round2(product.Price * float64(quantity)),
	}
	return append(cart, item), nil
}

// RemoveLineItem removes a line by id; removing an absent id is a no-op.
func (s *InvoiceService) RemoveLineItem(cart []models.InvoiceItem, itemID string) []models.InvoiceItem {
	out := cart[:0]
	for _, it := range cart {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	return out
}

// buildItems resolves draft lines against the user's catalog into snapshot items.
func (s *InvoiceService) buildItems(userID string, lines []LineInput) ([]models.InvoiceItem, error) {
	if len(lines) == 0 {
		return nil, invalid(validation.Violations{"items": "required"})
	}
	products, _, err := s.Store.LoadProducts(userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	var items []models.InvoiceItem
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, invalid(validation.Violations{"items": "unknown_product"})
		}
		items, err = s.AddLineItem(items, p, line.Quantity)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

// fillCustomer copies contact fields from the referenced customer when the
// draft names an id but no explicit contact values.
func (s *InvoiceService) fillCustomer(userID string, draft *InvoiceDraft) error {
	if draft.CustomerID == "" || draft.CustomerName != "" {
		return nil
	}
	customers, _, err := s.Store.LoadCustomers(userID)
	if err != nil {
		return err
	}
	for _, c := range customers {
		if c.ID == draft.CustomerID {
			draft.CustomerName = c.Name
			draft.CustomerEmail = c.Email
			draft.CustomerPhone = c.Phone
			draft.CustomerAddress = c.Address
			return nil
		}
	}
	// weak reference: an unknown id is kept as-is, not an error
	return nil
}

func (d InvoiceDraft) taxRate() float64 {
	if d.TaxRate == nil {
		return DefaultTaxRate
	}
	return *d.TaxRate
}

// Create builds and persists a new draft-status invoice. An empty cart is
// rejected before any state changes.
func (s *InvoiceService) Create(userID string, draft InvoiceDraft, now time.Time) (*models.Invoice, error) {
	items, err := s.buildItems(userID, draft.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.fillCustomer(userID, &draft); err != nil {
		return nil, err
	}
	invoices, _, err := s.Store.LoadInvoices(userID)
	if err != nil {
		return nil, err
	}
	seq, err := s.Store.NextInvoiceSeq(userID)
	if err != nil {
		return nil, err
	}
	totals := s.ComputeTotals(items, draft.taxRate())
	inv := models.Invoice{
		ID:              uuid.NewString(),
		InvoiceNumber:   FormatInvoiceNumber(seq, now),
		CustomerID:      draft.CustomerID,
		CustomerName:    draft.CustomerName,
		CustomerEmail:   draft.CustomerEmail,
		CustomerPhone:   draft.CustomerPhone,
		CustomerAddress: draft.CustomerAddress,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          models.StatusDraft,
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.SaveInvoices(userID, append(invoices, inv)); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update rebuilds an existing invoice from a draft. The id and invoice number
// are preserved, totals are recomputed, and the invoice drops back to draft
// status (editing a sent or paid invoice invalidates its previous state).
func (s *InvoiceService) Update(userID, invoiceID string, draft InvoiceDraft, now time.Time) (*models.Invoice, error) {
	items, err := s.buildItems(userID, draft.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.fillCustomer(userID, &draft); err != nil {
		return nil, err
	}
	invoices, _, err := s.Store.LoadInvoices(userID)
	if err != nil {
		return nil, err
	}
	totals := s.ComputeTotals(items, draft.taxRate())
	for i := range invoices {
		if invoices[i].ID != invoiceID {
			continue
		}
		inv := &invoices[i]
		inv.CustomerID = draft.CustomerID
		inv.CustomerName = draft.CustomerName
		inv.CustomerEmail = draft.CustomerEmail
		inv.CustomerPhone = draft.CustomerPhone
		inv.CustomerAddress = draft.CustomerAddress
		inv.Items = items
		inv.Subtotal = totals.Subtotal
		inv.Tax = totals.Tax
		inv.Total = totals.Total
		inv.Status = models.StatusDraft
		inv.UpdatedAt = now
		if err := s.Store.SaveInvoices(userID, invoices); err != nil {
			return nil, err
		}
		out := *inv
		return &out, nil
	}
	return nil, ErrNotFound
}

// SetStatus moves an invoice to any of the four statuses. There is no guard
// on the transition itself, only on status validity.
func (s *InvoiceService) SetStatus(userID, invoiceID, status string, now time.Time) (*models.Invoice, error) {
	if !models.ValidStatus(status) {
		return nil, invalid(validation.Violations{"status": "unknown_status"})
	}
	invoices, _, err := s.Store.LoadInvoices(userID)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID != invoiceID {
			continue
		}
		invoices[i].Status = status
		invoices[i].UpdatedAt = now
		if err := s.Store.SaveInvoices(userID, invoices); err != nil {
			return nil, err
		}
		out := invoices[i]
		return &out, nil
	}
	return nil, ErrNotFound
}

// Delete removes an invoice. Products and customers referenced by it are
// untouched; the snapshot fields were the only link that mattered.
func (s *InvoiceService) Delete(userID, invoiceID string) error {
	invoices, _, err := s.Store.LoadInvoices(userID)
	if err != nil {
		return err
	}
	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.ID != invoiceID {
			kept = append(kept, inv)
		}
	}
	if len(kept) == len(invoices) {
		return ErrNotFound
	}
	return s.Store.SaveInvoices(userID, kept)
}

// List returns the user's invoices, optionally filtered on number or customer
// name substring and on status.
func (s *InvoiceService) List(userID, query, status string) ([]models.Invoice, error) {
	invoices, _, err := s.Store.LoadInvoices(userID)
	if err != nil {
		return nil, err
	}
	return filterInvoices(invoices, query, status), nil
}
