package store

import (
	"fmt"
	"time"

	"github.com/diewo77/cleanbiz/internal/models"
)

// Seed populates the demonstration dataset for a first-time user. Each
// collection is checked independently and only written when nothing is stored
// under its key yet, so existing data is never overwritten and a partially
// seeded user ends up with just the missing collections filled in.
func (s *Store) Seed(userID string, now time.Time) error {
	products, customers, invoices := sampleData(userID, now)

	hasProducts, err := s.exists(CollectionProducts, userID)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if !hasProducts {
		if err := s.SaveProducts(userID, products); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	hasCustomers, err := s.exists(CollectionCustomers, userID)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if !hasCustomers {
		if err := s.SaveCustomers(userID, customers); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	hasInvoices, err := s.exists(CollectionInvoices, userID)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if !hasInvoices {
		if err := s.SaveInvoices(userID, invoices); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		// demo invoices occupy the first slots of the number sequence
		if err := s.setInvoiceSeq(userID, len(invoices)); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

func sampleData(userID string, now time.Time) ([]models.Product, []models.Customer, []models.Invoice) {
	products := []models.Product{
		{
			ID: "1", Name: "All-Purpose Cleaner", Description: "Multi-surface cleaning solution",
			Category: "Cleaners", Price: 12.99, Cost: 8.50, Stock: 45, MinStock: 10,
			Barcode: "123456789", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "2", Name: "Microfiber Cloth Pack", Description: "Pack of 5 microfiber cleaning cloths",
			Category: "Supplies", Price: 15.99, Cost: 10.00, Stock: 8, MinStock: 15,
			Barcode: "987654321", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "3", Name: "Glass Cleaner", Description: "Streak-free glass and window cleaner",
			Category: "Cleaners", Price: 9.99, Cost: 6.25, Stock: 22, MinStock: 10,
			Barcode: "456789123", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "4", Name: "Disinfectant Spray", Description: "Hospital-grade disinfectant spray",
			Category: "Cleaners", Price: 18.99, Cost: 12.50, Stock: 35, MinStock: 20,
			Barcode: "789123456", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "5", Name: "Vacuum Cleaner Bags", Description: "Universal vacuum cleaner bags (pack of 10)",
			Category: "Supplies", Price: 24.99, Cost: 16.00, Stock: 12, MinStock: 8,
			Barcode: "321654987", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
	}

	customers := []models.Customer{
		{
			ID: "1", Name: "John Smith", Email: "john.smith@email.com", Phone: "(555) 123-4567",
			Address: "123 Main St, Anytown, ST 12345", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "2", Name: "Sarah Johnson", Email: "sarah.j@email.com", Phone: "(555) 987-6543",
			Address: "456 Oak Ave, Somewhere, ST 67890", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "3", Name: "Mike Wilson", Email: "mike.wilson@company.com", Phone: "(555) 456-7890",
			Address: "789 Business Blvd, Corporate City, ST 54321", UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
	}

	weekAgo := now.AddDate(0, 0, -7)
	threeDaysAgo := now.AddDate(0, 0, -3)
	yesterday := now.AddDate(0, 0, -1)

	invoices := []models.Invoice{
		{
			ID: "1", InvoiceNumber: "INV-202501-0001", CustomerID: "1",
			CustomerName: "John Smith", CustomerEmail: "john.smith@email.com",
			CustomerPhone: "(555) 123-4567", CustomerAddress: "123 Main St, Anytown, ST 12345",
			Items: []models.InvoiceItem{
				{ID: "1", ProductID: "1", ProductName: "All-Purpose Cleaner", Quantity: 3, Price: 12.99, Total: 38.97},
				{ID: "2", ProductID: "3", ProductName: "Glass Cleaner", Quantity: 2, Price: 9.99, Total: 19.98},
			},
			Subtotal: 58.95, Tax: 5.01, Total: 63.96, Status: models.StatusPaid,
			UserID: userID, CreatedAt: weekAgo, UpdatedAt: weekAgo,
		},
		{
			ID: "2", InvoiceNumber: "INV-202501-0002", CustomerID: "2",
			CustomerName: "Sarah Johnson", CustomerEmail: "sarah.j@email.com",
			CustomerPhone: "(555) 987-6543", CustomerAddress: "456 Oak Ave, Somewhere, ST 67890",
			Items: []models.InvoiceItem{
				{ID: "3", ProductID: "4", ProductName: "Disinfectant Spray", Quantity: 5, Price: 18.99, Total: 94.95},
				{ID: "4", ProductID: "2", ProductName: "Microfiber Cloth Pack", Quantity: 2, Price: 15.99, Total: 31.98},
			},
			Subtotal: 126.93, Tax: 10.79, Total: 137.72, Status: models.StatusSent,
			UserID: userID, CreatedAt: threeDaysAgo, UpdatedAt: threeDaysAgo,
		},
		{
			ID: "3", InvoiceNumber: "INV-202501-0003", CustomerID: "3",
			CustomerName: "Mike Wilson", CustomerEmail: "mike.wilson@company.com",
			CustomerPhone: "(555) 456-7890", CustomerAddress: "789 Business Blvd, Corporate City, ST 54321",
			Items: []models.InvoiceItem{
				{ID: "5", ProductID: "1", ProductName: "All-Purpose Cleaner", Quantity: 10, Price: 12.99, Total: 129.90},
				{ID: "6", ProductID: "4", ProductName: "Disinfectant Spray", Quantity: 8, Price: 18.99, Total: 151.92},
				{ID: "7", ProductID: "5", ProductName: "Vacuum Cleaner Bags", Quantity: 3, Price: 24.99, Total: 74.97},
			},
			Subtotal: 356.79, Tax: 30.33, Total: 387.12, Status: models.StatusPaid,
			UserID: userID, CreatedAt: yesterday, UpdatedAt: yesterday,
		},
		{
			ID: "4", InvoiceNumber: "INV-202501-0004", CustomerID: "1",
			CustomerName: "John Smith", CustomerEmail: "john.smith@email.com",
			CustomerPhone: "(555) 123-4567", CustomerAddress: "123 Main St, Anytown, ST 12345",
			Items: []models.InvoiceItem{
				{ID: "8", ProductID: "2", ProductName: "Microfiber Cloth Pack", Quantity: 4, Price: 15.99, Total: 63.96},
			},
			Subtotal: 63.96, Tax: 5.44, Total: 69.40, Status: models.StatusDraft,
			UserID: userID, CreatedAt: now, UpdatedAt: now,
		},
	}

	return products, customers, invoices
}
