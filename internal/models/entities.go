package models

import "time"

// Invoice statuses. Transitions are deliberately unconstrained: any status may
// be set from any other, matching how the business actually flags invoices.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// ValidStatus reports whether s is one of the four known invoice statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Product is a catalog entry. Price and cost are independent; nothing enforces
// price >= cost.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"minStock"`
	Barcode     string    `json:"barcode,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LowStock reports whether current stock has reached the configured minimum.
func (p Product) LowStock() bool { return p.Stock <= p.MinStock }

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InvoiceItem snapshots a product's name and price at the moment it is added.
// Later edits or deletion of the product never alter historical invoices.
type InvoiceItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Invoice denormalizes customer contact fields at creation time for the same
// reason the items snapshot product fields: invoices are historical records.
// Tax is stored as an absolute amount, decoupled from the rate that produced it.
type Invoice struct {
	ID              string        `json:"id"`
	InvoiceNumber   string        `json:"invoiceNumber"`
	CustomerID      string        `json:"customerId,omitempty"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail,omitempty"`
	CustomerPhone   string        `json:"customerPhone,omitempty"`
	CustomerAddress string        `json:"customerAddress,omitempty"`
	Items           []InvoiceItem `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	Total           float64       `json:"total"`
	Status          string        `json:"status"`
	UserID          string        `json:"userId"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type DashboardStats struct {
	TotalProducts  int     `json:"totalProducts"`
	LowStockCount  int     `json:"lowStockProducts"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalInvoices  int     `json:"totalInvoices"`
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
}
