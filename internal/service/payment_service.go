// Package service exposes the payment API over HTTP.
//
// Handlers follow one pattern: load the payment snapshot, apply a pure
// operation from the assign/receipt/calculator packages, persist the whole
// updated snapshot, respond with the result. The engine packages never
// touch storage themselves.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CubeDr/hyuni-pay/internal/assign"
	"github.com/CubeDr/hyuni-pay/internal/calculator"
	"github.com/CubeDr/hyuni-pay/internal/models"
	"github.com/CubeDr/hyuni-pay/internal/ocr"
	"github.com/CubeDr/hyuni-pay/internal/storage"
)

// defaultPayerName seeds a freshly created payment with its first payer.
const defaultPayerName = "현이"

// Options carries presentation and upload settings for the service.
type Options struct {
	// MaxUploadBytes caps receipt image uploads (default 4 MiB).
	MaxUploadBytes int64

	// BankAccount is appended to the copyable summary so recipients know
	// where to send money. Omitted when empty.
	BankAccount string

	// ShareBaseURL is the base for the share link in the summary footer.
	ShareBaseURL string
}

// PaymentService implements the payment HTTP API.
type PaymentService struct {
	store storage.Store
	ocr   ocr.Client
	opts  Options
}

// New creates a PaymentService with the given storage backend and OCR client.
func New(store storage.Store, ocrClient ocr.Client, opts Options) *PaymentService {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 4 << 20
	}
	return &PaymentService{store: store, ocr: ocrClient, opts: opts}
}

// Routes registers the payment API on the given router.
func (s *PaymentService) Routes(r chi.Router) {
	r.Post("/payments", s.CreatePayment)
	r.Get("/payments", s.ListPayments)
	r.Get("/payments/{paymentID}", s.GetPayment)
	r.Put("/payments/{paymentID}", s.UpdatePayment)
	r.Delete("/payments/{paymentID}", s.DeletePayment)

	r.Post("/payments/{paymentID}/payers", s.AddPayer)
	r.Delete("/payments/{paymentID}/payers/{payerID}", s.RemovePayer)
	r.Post("/payments/{paymentID}/items/{itemID}/toggle-payer", s.TogglePayer)
	r.Post("/payments/{paymentID}/items/{itemID}/toggle-shared", s.ToggleShared)

	r.Post("/payments/{paymentID}/receipt", s.ScanReceipt)
	r.Get("/payments/{paymentID}/settlement", s.GetSettlement)
	r.Get("/payments/{paymentID}/summary", s.GetSummary)
}

// CreatePayment creates a new payment document. The body may carry a title
// and initial payer names; without payers the payment is seeded with the
// default payer so there is always someone to assign items to.
func (s *PaymentService) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string   `json:"title"`
		Payers []string `json:"payers"`
	}
	if r.Body != nil {
		// An empty body is fine; only malformed JSON is rejected.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
			return
		}
	}

	var payers []models.Payer
	for _, name := range req.Payers {
		payers = assign.AddPayer(payers, name)
	}
	if len(payers) == 0 {
		payers = assign.AddPayer(nil, defaultPayerName)
	}

	payment := &models.Payment{
		Title:  req.Title,
		Payers: payers,
	}
	if err := s.store.CreatePayment(r.Context(), payment); err != nil {
		slog.Error("CreatePayment failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal", "failed to create payment")
		return
	}

	slog.Info("Payment created", "payment_id", payment.ID, "title", payment.Title)
	respondJSON(w, http.StatusCreated, payment)
}

// ListPayments returns all payments, newest first.
func (s *PaymentService) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.store.ListPayments(r.Context())
	if err != nil {
		slog.Error("ListPayments failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal", "failed to list payments")
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	respondJSON(w, http.StatusOK, payments)
}

// GetPayment returns one payment by ID.
func (s *PaymentService) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// UpdatePayment replaces the payment's state wholesale from the request
// body. Items that claim to be both shared and individually assigned are
// rejected; the state machine never produces such items, so receiving one
// means the client is broken.
func (s *PaymentService) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}

	var req models.Payment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return
	}
	for _, item := range req.Items {
		if !item.Valid() {
			respondError(w, http.StatusBadRequest, "invalid_item",
				fmt.Sprintf("item %s is shared but has individual assignees", item.ID))
			return
		}
	}

	req.ID = payment.ID
	req.CreatedAt = payment.CreatedAt
	if req.Date == "" {
		req.Date = payment.Date
	}
	if err := s.store.UpdatePayment(r.Context(), &req); err != nil {
		s.respondStoreError(w, "UpdatePayment", err)
		return
	}
	respondJSON(w, http.StatusOK, &req)
}

// DeletePayment removes a payment.
func (s *PaymentService) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "paymentID")
	if err := s.store.DeletePayment(r.Context(), id); err != nil {
		s.respondStoreError(w, "DeletePayment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPayer adds a payer by name. Empty or duplicate names (compared
// case-insensitively) are silently ignored and the unchanged payment is
// returned, mirroring the no-op contract of the state machine.
func (s *PaymentService) AddPayer(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return
	}

	payment.Payers = assign.AddPayer(payment.Payers, req.Name)
	s.saveAndRespond(w, r, payment)
}

// RemovePayer removes a payer and cascades the removal through every
// item's assignee set.
func (s *PaymentService) RemovePayer(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}

	payerID := chi.URLParam(r, "payerID")
	payment.Items, payment.Payers = assign.RemovePayer(payment.Items, payment.Payers, payerID)
	s.saveAndRespond(w, r, payment)
}

// TogglePayer toggles one payer's assignment on one item.
func (s *PaymentService) TogglePayer(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}

	var req struct {
		PayerID string `json:"payerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return
	}

	itemID := chi.URLParam(r, "itemID")
	payment.Items = assign.TogglePayer(payment.Items, itemID, req.PayerID)
	s.saveAndRespond(w, r, payment)
}

// ToggleShared toggles one item between shared and individual mode.
func (s *PaymentService) ToggleShared(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	payment.Items = assign.ToggleShared(payment.Items, itemID)
	s.saveAndRespond(w, r, payment)
}

// GetSettlement computes the settlement view for the payment's current
// state. The view is derived fresh on every call, never cached.
func (s *PaymentService) GetSettlement(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}
	settlement := calculator.ComputeSettlement(payment.Items, payment.Payers, payment.Tax, payment.Tip)
	respondJSON(w, http.StatusOK, settlement)
}

// GetSummary renders the copyable plain-text settlement summary.
func (s *PaymentService) GetSummary(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}
	settlement := calculator.ComputeSettlement(payment.Items, payment.Payers, payment.Tax, payment.Tip)
	text := renderSummary(payment, settlement, s.opts.BankAccount, s.opts.ShareBaseURL)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// loadPayment fetches the payment named in the URL, writing the error
// response itself when that fails.
func (s *PaymentService) loadPayment(w http.ResponseWriter, r *http.Request) (*models.Payment, bool) {
	id := chi.URLParam(r, "paymentID")
	payment, err := s.store.GetPayment(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, "GetPayment", err)
		return nil, false
	}
	return payment, true
}

// saveAndRespond persists the mutated payment and returns it. Every
// mutation saves the full current state; the store replaces the stored
// snapshot wholesale.
func (s *PaymentService) saveAndRespond(w http.ResponseWriter, r *http.Request, payment *models.Payment) {
	if err := s.store.UpdatePayment(r.Context(), payment); err != nil {
		s.respondStoreError(w, "UpdatePayment", err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (s *PaymentService) respondStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "payment not found")
		return
	}
	slog.Error(op+" failed", "error", err)
	respondError(w, http.StatusInternalServerError, "internal", "storage failure")
}
