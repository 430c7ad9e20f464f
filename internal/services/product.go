package services

import (
	"time"

	"github.com/diewo77/cleanbiz/internal/models"
	"github.com/diewo77/cleanbiz/internal/store"
	"github.com/diewo77/cleanbiz/validation"
	"github.com/google/uuid"
)

// ProductDraft carries raw user input. Numeric fields arrive as strings and
// go through an explicit parse-and-validate step; a bad value becomes a field
// violation instead of a garbage number in the catalog.
type ProductDraft struct {
	Name        string
	Description string
	Category    string
	Price       string
	Cost        string
	Stock       string
	MinStock    string
	Barcode     string
}

type ProductService struct {
	Store *store.Store
}

func NewProductService(st *store.Store) *ProductService { return &ProductService{Store: st} }

type parsedProduct struct {
	price, cost     float64
	stock, minStock int
}

func (d ProductDraft) parse() (parsedProduct, error) {
	v := validation.Violations{}
	validation.Required("name", d.Name, v)
	p := parsedProduct{
		price:    validation.ParseCurrency("price", d.Price, v),
		cost:     validation.ParseCurrency("cost", d.Cost, v),
		stock:    validation.ParseCount("stock", d.Stock, v),
		minStock: validation.ParseCount("minStock", d.MinStock, v),
	}
	if !v.Empty() {
		return parsedProduct{}, invalid(v)
	}
	return p, nil
}

func (s *ProductService) Create(userID string, draft ProductDraft, now time.Time) (*models.Product, error) {
	parsed, err := draft.parse()
	if err != nil {
		return nil, err
	}
	products, _, err := s.Store.LoadProducts(userID)
	if err != nil {
		return nil, err
	}
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Price:       parsed.price,
		Cost:        parsed.cost,
		Stock:       parsed.stock,
		MinStock:    parsed.minStock,
		Barcode:     draft.Barcode,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.SaveProducts(userID, append(products, p)); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Update(userID, productID string, draft ProductDraft, now time.Time) (*models.Product, error) {
	parsed, err := draft.parse()
	if err != nil {
		return nil, err
	}
	products, _, err := s.Store.LoadProducts(userID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID != productID {
			continue
		}
		p := &products[i]
		p.Name = draft.Name
		p.Description = draft.Description
		p.Category = draft.Category
		p.Price = parsed.price
		p.Cost = parsed.cost
		p.Stock = parsed.stock
		p.MinStock = parsed.minStock
		p.Barcode = draft.Barcode
		p.UpdatedAt = now
		if err := s.Store.SaveProducts(userID, products); err != nil {
			return nil, err
		}
		out := *p
		return &out, nil
	}
	return nil, ErrNotFound
}

// Delete removes a product from the catalog. Invoices referencing it keep
// their snapshot name and price.
func (s *ProductService) Delete(userID, productID string) error {
	products, _, err := s.Store.LoadProducts(userID)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return ErrNotFound
	}
	return s.Store.SaveProducts(userID, kept)
}

func (s *ProductService) List(userID, query string) ([]models.Product, error) {
	products, _, err := s.Store.LoadProducts(userID)
	if err != nil {
		return nil, err
	}
	return filterProducts(products, query), nil
}
