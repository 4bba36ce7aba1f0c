package service

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/CubeDr/hyuni-pay/internal/receipt"
)

// allowedImageTypes are the receipt image formats accepted for upload.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// ScanReceipt accepts a multipart receipt image, runs it through the OCR
// collaborator and replaces the payment's entire item list with the
// expanded result. Prior items and their assignments are discarded; tax
// and tip are taken from the receipt, and a default title is seeded from
// the shop name on the first successful scan.
func (s *PaymentService) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	payment, ok := s.loadPayment(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "too_large", "image exceeds the upload limit")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "missing image file")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		respondError(w, http.StatusUnsupportedMediaType, "unsupported_type", "upload a PNG, JPEG or WebP image")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "failed to read image")
		return
	}

	parsed, err := s.ocr.ParseReceipt(r.Context(), mimeType, image)
	if err != nil {
		slog.Error("Receipt OCR failed", "payment_id", payment.ID, "error", err)
		respondError(w, http.StatusBadGateway, "ocr_failed",
			"failed to parse the receipt; the image might be unclear or the format is not supported")
		return
	}
	if err := receipt.Validate(parsed); err != nil {
		slog.Warn("Receipt rejected", "payment_id", payment.ID, "error", err)
		if errors.Is(err, receipt.ErrInvalidReceipt) {
			respondError(w, http.StatusUnprocessableEntity, "invalid_receipt", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "receipt validation failed")
		return
	}

	payment.Items = receipt.Expand(parsed)
	payment.Tax = receipt.RoundTax(parsed)
	payment.Tip = receipt.RoundTip(parsed)
	payment.Title = receipt.SeedTitle(payment.Title, parsed)

	slog.Info("Receipt ingested",
		"payment_id", payment.ID,
		"items", len(payment.Items),
		"tax", payment.Tax,
		"tip", payment.Tip,
	)
	s.saveAndRespond(w, r, payment)
}
