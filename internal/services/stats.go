package services

import (
	"time"

	"github.com/diewo77/cleanbiz/internal/models"
	"github.com/diewo77/cleanbiz/internal/store"
)

// ComputeStats derives the dashboard figures from full collection scans.
// Revenue counts paid invoices only; the monthly figure additionally requires
// the invoice to have been created in now's calendar month and year.
func ComputeStats(products []models.Product, customers []models.Customer, invoices []models.Invoice, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalProducts:  len(products),
		TotalCustomers: len(customers),
		TotalInvoices:  len(invoices),
	}
	for _, p := range products {
		if p.LowStock() {
			stats.LowStockCount++
		}
	}
	for _, inv := range invoices {
		if inv.Status != models.StatusPaid {
			continue
		}
		stats.TotalRevenue = round2(stats.TotalRevenue + inv.Total)
		if inv.CreatedAt.Month() == now.Month() && inv.CreatedAt.Year() == now.Year() {
			stats.MonthlyRevenue = round2(stats.MonthlyRevenue + inv.Total)
		}
	}
	return stats
}

// StatsService loads the three collections and recomputes the dashboard on
// every call. At local single-user scale there is nothing worth memoizing.
type StatsService struct {
	Store *store.Store
}

func NewStatsService(st *store.Store) *StatsService { return &StatsService{Store: st} }

func (s *StatsService) Dashboard(userID string, now time.Time) (models.DashboardStats, error) {
	products, _, err := s.Store.LoadProducts(userID)
	if err != nil {
		return models.DashboardStats{}, err
	}
	customers, _, err := s.Store.LoadCustomers(userID)
	if err != nil {
		return models.DashboardStats{}, err
	}
	invoices, _, err := s.Store.LoadInvoices(userID)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return ComputeStats(products, customers, invoices, now), nil
}
