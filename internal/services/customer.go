package services

import (
	"time"

	"github.com/diewo77/cleanbiz/internal/models"
	"github.com/diewo77/cleanbiz/internal/store"
	"github.com/diewo77/cleanbiz/validation"
	"github.com/google/uuid"
)

// CustomerDraft: only the name is required; contact details are optional and
// nothing enforces uniqueness of email or phone.
type CustomerDraft struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type CustomerService struct {
	Store *store.Store
}

func NewCustomerService(st *store.Store) *CustomerService { return &CustomerService{Store: st} }

func (d CustomerDraft) validate() error {
	v := validation.Violations{}
	validation.Required("name", d.Name, v)
	if !v.Empty() {
		return invalid(v)
	}
	return nil
}

func (s *CustomerService) Create(userID string, draft CustomerDraft, now time.Time) (*models.Customer, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}
	customers, _, err := s.Store.LoadCustomers(userID)
	if err != nil {
		return nil, err
	}
	c := models.Customer{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Address:   draft.Address,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.SaveCustomers(userID, append(customers, c)); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Update(userID, customerID string, draft CustomerDraft, now time.Time) (*models.Customer, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}
	customers, _, err := s.Store.LoadCustomers(userID)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID != customerID {
			continue
		}
		c := &customers[i]
		c.Name = draft.Name
		c.Email = draft.Email
		c.Phone = draft.Phone
		c.Address = draft.Address
		c.UpdatedAt = now
		if err := s.Store.SaveCustomers(userID, customers); err != nil {
			return nil, err
		}
		out := *c
		return &out, nil
	}
	return nil, ErrNotFound
}

// Delete removes a customer. Invoices that referenced them keep working off
// their denormalized contact fields.
func (s *CustomerService) Delete(userID, customerID string) error {
	customers, _, err := s.Store.LoadCustomers(userID)
	if err != nil {
		return err
	}
	kept := customers[:0]
	for _, c := range customers {
		if c.ID != customerID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(customers) {
		return ErrNotFound
	}
	return s.Store.SaveCustomers(userID, kept)
}

func (s *CustomerService) List(userID, query string) ([]models.Customer, error) {
	customers, _, err := s.Store.LoadCustomers(userID)
	if err != nil {
		return nil, err
	}
	return filterCustomers(customers, query), nil
}
