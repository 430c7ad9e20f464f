package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/cleanbiz/internal/models"
	"github.com/diewo77/cleanbiz/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CollectionBlob{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

func seedCatalog(t *testing.T, st *store.Store, userID string) []models.Product {
	t.Helper()
	products := []models.Product{
		{ID: "p1", Name: "All-Purpose Cleaner", Price: 12.99, UserID: userID},
		{ID: "p2", Name: "Glass Cleaner", Price: 9.99, UserID: userID},
	}
	if err := st.SaveProducts(userID, products); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	return products
}

func TestComputeTotalsWorkedExample(t *testing.T) {
	svc := NewInvoiceService(setupTestStore(t))
	items := []models.InvoiceItem{
		{ID: "1", ProductID: "p1", Quantity: 3, Price: 12.99, Total: 38.97},
		{ID: "2", ProductID: "p2", Quantity: 2, Price: 9.99, Total: 19.98},
	}
	got := svc.ComputeTotals(items, 8.5)
	if got.Subtotal != 58.95 {
		t.Fatalf("subtotal: expected 58.95, got %v", got.Subtotal)
	}
	if got.Tax != 5.01 {
		t.Fatalf("tax: expected 5.01, got %v", got.Tax)
	}
	if got.Total != 63.96 {
		t.Fatalf("total: expected 63.96, got %v", got.Total)
	}
}

func TestComputeTotalsInvariants(t *testing.T) {
	svc := NewInvoiceService(setupTestStore(t))
	carts := [][]models.InvoiceItem{
		nil,
		{{Total: 10}},
		{{Total: 19.99}, {Total: 0.01}, {Total: 123.45}},
	}
	rates := []float64{0, 5, 8.5, 20}
	for _, cart := range carts {
		for _, rate := range rates {
			got := svc.ComputeTotals(cart, rate)
			if got.Total != round2(got.Subtotal+got.Tax) {
				t.Fatalf("rate %v cart %v: total %v != subtotal %v + tax %v", rate, cart, got.Total, got.Subtotal, got.Tax)
			}
			if got.Tax != round2(got.Subtotal*rate/100) {
				t.Fatalf("rate %v: tax %v not derived from subtotal %v", rate, got.Tax, got.Subtotal)
			}
		}
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatInvoiceNumber(1, now); got != "INV-202501-0001" {
		t.Fatalf("unexpected number: %s", got)
	}
	if got := FormatInvoiceNumber(42, time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC)); got != "INV-202611-0042" {
		t.Fatalf("unexpected number: %s", got)
	}
}

func TestAddAndRemoveLineItem(t *testing.T) {
	svc := NewInvoiceService(setupTestStore(t))
	product := models.Product{ID: "p1", Name: "Disinfectant Spray", Price: 18.99}

	cart, err := svc.AddLineItem(nil, product, 5)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart))
	}
	it := cart[0]
	if it.ProductName != "Disinfectant Spray" || it.Price != 18.99 {
		t.Fatalf("item must snapshot product fields: %#v", it)
	}
	if it.Total != 94.95 {
		t.Fatalf("expected line total 94.95, got %v", it.Total)
	}

	if _, err := svc.AddLineItem(cart, product, 0); err == nil {
		t.Fatal("expected error for zero quantity")
	}

	cart = svc.RemoveLineItem(cart, it.ID)
	if len(cart) != 0 {
		t.Fatalf("expected empty cart after removal, got %d", len(cart))
	}
	// Removing an absent id is a no-op.
	cart = svc.RemoveLineItem(cart, "nope")
	if len(cart) != 0 {
		t.Fatalf("expected no-op removal, got %d items", len(cart))
	}
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := NewInvoiceService(setupTestStore(t))
	_, err := svc.Create("u1", InvoiceDraft{CustomerName: "John"}, time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Violations["items"] != "required" {
		t.Fatalf("expected items violation, got %#v", verr.Violations)
	}
}

func TestCreateInvoice(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

	inv, err := svc.Create("u1", InvoiceDraft{
		CustomerName: "John Smith",
		Lines:        []LineInput{{ProductID: "p1", Quantity: 3}, {ProductID: "p2", Quantity: 2}},
	}, now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.ID == "" {
		t.Fatal("missing id")
	}
	if inv.InvoiceNumber != "INV-202501-0001" {
		t.Fatalf("unexpected number: %s", inv.InvoiceNumber)
	}
	if inv.Status != models.StatusDraft {
		t.Fatalf("expected draft status, got %s", inv.Status)
	}
	// default 8.5% rate applies when the draft has none
	if inv.Subtotal != 58.95 || inv.Tax != 5.01 || inv.Total != 63.96 {
		t.Fatalf("unexpected totals: %v %v %v", inv.Subtotal, inv.Tax, inv.Total)
	}

	second, err := svc.Create("u1", InvoiceDraft{
		CustomerName: "Sarah",
		Lines:        []LineInput{{ProductID: "p2", Quantity: 1}},
	}, now)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.InvoiceNumber != "INV-202501-0002" {
		t.Fatalf("numbering must advance: %s", second.InvoiceNumber)
	}
	if second.ID == inv.ID {
		t.Fatal("ids must be unique")
	}
}

func TestCreateUnknownProduct(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	_, err := svc.Create("u1", InvoiceDraft{Lines: []LineInput{{ProductID: "ghost", Quantity: 1}}}, time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateFillsCustomerSnapshot(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	customers := []models.Customer{{ID: "c1", Name: "Mike Wilson", Email: "mike@company.com", Phone: "555", Address: "789 Blvd", UserID: "u1"}}
	if err := st.SaveCustomers("u1", customers); err != nil {
		t.Fatalf("seed customers: %v", err)
	}

	inv, err := svc.Create("u1", InvoiceDraft{
		CustomerID: "c1",
		Lines:      []LineInput{{ProductID: "p1", Quantity: 1}},
	}, time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.CustomerName != "Mike Wilson" || inv.CustomerEmail != "mike@company.com" {
		t.Fatalf("customer snapshot not filled: %#v", inv)
	}

	// Deleting the customer afterwards leaves the snapshot intact.
	if err := st.SaveCustomers("u1", nil); err != nil {
		t.Fatalf("clear customers: %v", err)
	}
	got, err := svc.List("u1", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].CustomerName != "Mike Wilson" {
		t.Fatalf("snapshot lost after customer deletion: %#v", got[0])
	}
}

func TestUpdatePreservesNumberAndRecomputes(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	created := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)

	inv, err := svc.Create("u1", InvoiceDraft{CustomerName: "John", Lines: []LineInput{{ProductID: "p1", Quantity: 1}}}, created)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetStatus("u1", inv.ID, models.StatusSent, created); err != nil {
		t.Fatalf("set status: %v", err)
	}

	rate := 0.0
	updated, err := svc.Update("u1", inv.ID, InvoiceDraft{
		CustomerName: "John",
		Lines:        []LineInput{{ProductID: "p2", Quantity: 2}},
		TaxRate:      &rate,
	}, later)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != inv.ID || updated.InvoiceNumber != inv.InvoiceNumber {
		t.Fatalf("id/number must be preserved: %#v", updated)
	}
	if updated.Subtotal != 19.98 || updated.Tax != 0 || updated.Total != 19.98 {
		t.Fatalf("totals not recomputed: %#v", updated)
	}
	if updated.Status != models.StatusDraft {
		t.Fatalf("editing must drop the invoice back to draft, got %s", updated.Status)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt not refreshed: %v", updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatalf("createdAt must not change: %v", updated.CreatedAt)
	}
}

func TestSetStatusUnconstrained(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	inv, err := svc.Create("u1", InvoiceDraft{Lines: []LineInput{{ProductID: "p1", Quantity: 1}}}, time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Any status is reachable from any other, including backwards.
	for _, status := range []string{models.StatusPaid, models.StatusDraft, models.StatusOverdue, models.StatusSent} {
		got, err := svc.SetStatus("u1", inv.ID, status, time.Now())
		if err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("expected %s, got %s", status, got.Status)
		}
	}
	if _, err := svc.SetStatus("u1", inv.ID, "archived", time.Now()); err == nil {
		t.Fatal("expected rejection of unknown status")
	}
	if _, err := svc.SetStatus("u1", "ghost", models.StatusPaid, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteInvoice(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	inv, err := svc.Create("u1", InvoiceDraft{Lines: []LineInput{{ProductID: "p1", Quantity: 1}}}, time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete("u1", inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete("u1", inv.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	left, err := svc.List("u1", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected no invoices, got %d", len(left))
	}
}

func TestProductDeletionKeepsInvoiceSnapshot(t *testing.T) {
	st := setupTestStore(t)
	invSvc := NewInvoiceService(st)
	prodSvc := NewProductService(st)
	seedCatalog(t, st, "u1")

	inv, err := invSvc.Create("u1", InvoiceDraft{Lines: []LineInput{{ProductID: "p1", Quantity: 2}}}, time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := prodSvc.Delete("u1", "p1"); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	got, err := invSvc.List("u1", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("invoice must survive product deletion")
	}
	item := got[0].Items[0]
	if item.ProductName != "All-Purpose Cleaner" || item.Price != 12.99 {
		t.Fatalf("snapshot fields changed: %#v", item)
	}
	if got[0].Total != inv.Total {
		t.Fatalf("totals changed after product deletion")
	}
}

func TestListFilters(t *testing.T) {
	st := setupTestStore(t)
	svc := NewInvoiceService(st)
	seedCatalog(t, st, "u1")
	now := time.Now()
	a, _ := svc.Create("u1", InvoiceDraft{CustomerName: "John Smith", Lines: []LineInput{{ProductID: "p1", Quantity: 1}}}, now)
	b, _ := svc.Create("u1", InvoiceDraft{CustomerName: "Sarah Johnson", Lines: []LineInput{{ProductID: "p2", Quantity: 1}}}, now)
	if _, err := svc.SetStatus("u1", b.ID, models.StatusPaid, now); err != nil {
		t.Fatalf("set status: %v", err)
	}

	byName, err := svc.List("u1", "sarah", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != b.ID {
		t.Fatalf("name filter failed: %#v", byName)
	}
	byStatus, err := svc.List("u1", "", models.StatusDraft)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != a.ID {
		t.Fatalf("status filter failed: %#v", byStatus)
	}
	all, err := svc.List("u1", "", "all")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(all))
	}
}
