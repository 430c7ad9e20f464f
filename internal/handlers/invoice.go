package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/cleanbiz/httpx"
	"github.com/diewo77/cleanbiz/internal/services"
)

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

type invoiceReq struct {
	ID              string               `json:"id,omitempty"`
	CustomerID      string               `json:"customerId,omitempty"`
	CustomerName    string               `json:"customerName,omitempty"`
	CustomerEmail   string               `json:"customerEmail,omitempty"`
	CustomerPhone   string               `json:"customerPhone,omitempty"`
	CustomerAddress string               `json:"customerAddress,omitempty"`
	Items           []services.LineInput `json:"items"`
	TaxRate         *float64             `json:"taxRate,omitempty"`
}

func (i invoiceReq) draft() services.InvoiceDraft {
	return services.InvoiceDraft{
		CustomerID:      i.CustomerID,
		CustomerName:    strings.TrimSpace(i.CustomerName),
		CustomerEmail:   strings.TrimSpace(i.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(i.CustomerPhone),
		CustomerAddress: strings.TrimSpace(i.CustomerAddress),
		Lines:           i.Items,
		TaxRate:         i.TaxRate,
	}
}

// List: GET /invoices?q=&status=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	invoices, err := h.Svc.List(uid, q, status)
	if err != nil {
		writeServiceError(w, err, "failed_to_list_invoices")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req invoiceReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Svc.Create(uid, req.draft(), now())
	if err != nil {
		writeServiceError(w, err, "failed_to_create_invoice")
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Update: POST /invoices/update
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req invoiceReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.Update(uid, req.ID, req.draft(), now())
	if err != nil {
		writeServiceError(w, err, "failed_to_update_invoice")
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// SetStatus: POST /invoices/status
func (h *InvoiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.SetStatus(uid, req.ID, req.Status, now())
	if err != nil {
		writeServiceError(w, err, "failed_to_update_invoice_status")
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: POST /invoices/delete
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeServiceError(w, err, "failed_to_delete_invoice")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
