package services

import (
	"strings"

	"github.com/diewo77/cleanbiz/internal/models"
)

// List filtering mirrors what the pages offer: case-insensitive substring
// match plus, for invoices, an exact status filter.

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func filterProducts(products []models.Product, query string) []models.Product {
	if query == "" {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if matches(query, p.Name, p.Category, p.Barcode) {
			out = append(out, p)
		}
	}
	return out
}

func filterCustomers(customers []models.Customer, query string) []models.Customer {
	if query == "" {
		return customers
	}
	var out []models.Customer
	for _, c := range customers {
		if matches(query, c.Name, c.Email, c.Phone) {
			out = append(out, c)
		}
	}
	return out
}

func filterInvoices(invoices []models.Invoice, query, status string) []models.Invoice {
	if query == "" && (status == "" || status == "all") {
		return invoices
	}
	var out []models.Invoice
	for _, inv := range invoices {
		if !matches(query, inv.InvoiceNumber, inv.CustomerName) {
			continue
		}
		if status != "" && status != "all" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out
}
