// Package store persists the per-user entity collections. Each collection is
// one JSON array stored under the key "{collection}_{userId}"; reads and
// writes always cover the whole collection, so the last writer wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/diewo77/cleanbiz/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	CollectionProducts  = "products"
	CollectionCustomers = "customers"
	CollectionInvoices  = "invoices"

	invoiceSeqPrefix = "invoice_seq"
)

// LoadState distinguishes a collection that was never written from one whose
// stored content could not be decoded. Callers choose whether a corrupt read
// is fatal; conflating it with "no data" would silently mask data loss.
type LoadState int

const (
	StateLoaded LoadState = iota
	StateEmpty
	StateCorrupt
)

func (s LoadState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateCorrupt:
		return "corrupt"
	}
	return "unknown"
}

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

func blobKey(collection, userID string) string { return collection + "_" + userID }

func (s *Store) load(collection, userID string, dest any) (LoadState, error) {
	var blob models.CollectionBlob
	err := s.DB.First(&blob, "key = ?", blobKey(collection, userID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StateEmpty, nil
	}
	if err != nil {
		return StateEmpty, fmt.Errorf("load %s: %w", collection, err)
	}
	if err := json.Unmarshal([]byte(blob.Value), dest); err != nil {
		return StateCorrupt, nil
	}
	return StateLoaded, nil
}

func (s *Store) save(collection, userID string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	blob := models.CollectionBlob{Key: blobKey(collection, userID), Value: string(raw)}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error; err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

// exists reports whether any record is stored under the collection key,
// decodable or not. Seeding keys off presence, never off content.
func (s *Store) exists(collection, userID string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.CollectionBlob{}).
		Where("key = ?", blobKey(collection, userID)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) LoadProducts(userID string) ([]models.Product, LoadState, error) {
	var out []models.Product
	state, err := s.load(CollectionProducts, userID, &out)
	if state != StateLoaded {
		out = nil
	}
	if state == StateCorrupt {
		log.Printf("store: corrupt products collection for user %s, treating as empty", userID)
	}
	return out, state, err
}

func (s *Store) SaveProducts(userID string, products []models.Product) error {
	return s.save(CollectionProducts, userID, products)
}

func (s *Store) LoadCustomers(userID string) ([]models.Customer, LoadState, error) {
	var out []models.Customer
	state, err := s.load(CollectionCustomers, userID, &out)
	if state != StateLoaded {
		out = nil
	}
	if state == StateCorrupt {
		log.Printf("store: corrupt customers collection for user %s, treating as empty", userID)
	}
	return out, state, err
}

func (s *Store) SaveCustomers(userID string, customers []models.Customer) error {
	return s.save(CollectionCustomers, userID, customers)
}

func (s *Store) LoadInvoices(userID string) ([]models.Invoice, LoadState, error) {
	var out []models.Invoice
	state, err := s.load(CollectionInvoices, userID, &out)
	if state != StateLoaded {
		out = nil
	}
	if state == StateCorrupt {
		log.Printf("store: corrupt invoices collection for user %s, treating as empty", userID)
	}
	return out, state, err
}

func (s *Store) SaveInvoices(userID string, invoices []models.Invoice) error {
	return s.save(CollectionInvoices, userID, invoices)
}

// NextInvoiceSeq increments and returns the per-user invoice counter. The
// counter is persisted so numbering stays monotonic across restarts instead
// of being derived from the current invoice count.
func (s *Store) NextInvoiceSeq(userID string) (int, error) {
	key := blobKey(invoiceSeqPrefix, userID)
	var next int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var blob models.CollectionBlob
		err := tx.First(&blob, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			next = 1
		case err != nil:
			return err
		default:
			n, convErr := strconv.Atoi(blob.Value)
			if convErr != nil {
				// unreadable counter: restart the sequence rather than fail creation
				log.Printf("store: corrupt invoice counter for user %s, resetting", userID)
				n = 0
			}
			next = n + 1
		}
		blob = models.CollectionBlob{Key: key, Value: strconv.Itoa(next)}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&blob).Error
	})
	if err != nil {
		return 0, fmt.Errorf("next invoice seq: %w", err)
	}
	return next, nil
}

// setInvoiceSeq force-sets the counter; used by seeding so the first real
// invoice after the demo data continues the sequence.
func (s *Store) setInvoiceSeq(userID string, n int) error {
	blob := models.CollectionBlob{Key: blobKey(invoiceSeqPrefix, userID), Value: strconv.Itoa(n)}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}
