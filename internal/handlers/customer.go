package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/cleanbiz/httpx"
	"github.com/diewo77/cleanbiz/internal/services"
)

type CustomerHandler struct {
	Svc *services.CustomerService
}

func NewCustomerHandler(svc *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Svc: svc}
}

type customerReq struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c customerReq) draft() services.CustomerDraft {
	return services.CustomerDraft{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// List: GET /customers?q=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	customers, err := h.Svc.List(uid, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		writeServiceError(w, err, "failed_to_list_customers")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": len(customers)})
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req customerReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	c, err := h.Svc.Create(uid, req.draft(), now())
	if err != nil {
		writeServiceError(w, err, "customer_create_failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /customers/update
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req customerReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	c, err := h.Svc.Update(uid, req.ID, req.draft(), now())
	if err != nil {
		writeServiceError(w, err, "customer_update_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /customers/delete
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(uid, req.ID); err != nil {
		writeServiceError(w, err, "customer_delete_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
