package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/cleanbiz/httpx"
	"github.com/diewo77/cleanbiz/internal/services"
)

type ProductHandler struct {
	Svc *services.ProductService
}

func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

// productReq mirrors the inventory form: numeric fields arrive as strings and
// are validated server-side.
type productReq struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Cost        string `json:"cost"`
	Stock       string `json:"stock"`
	MinStock    string `json:"minStock"`
	Barcode     string `json:"barcode,omitempty"`
}

func (p productReq) draft() services.ProductDraft {
	return services.ProductDraft{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Barcode:     p.Barcode,
	}
}

// List: GET /products?q=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	products, err := h.Svc.List(uid, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		writeServiceError(w, err, "failed_to_list_products")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req productReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Svc.Create(uid, req.draft(), now())
	if err != nil {
		writeServiceError(w, err, "product_create_failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req productReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	p, err := h.Svc.Update(uid, req.ID, req.draft(), now())
	if err != nil {
		writeServiceError(w, err, "product_update_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /products/delete
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeServiceError(w, err, "product_delete_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
