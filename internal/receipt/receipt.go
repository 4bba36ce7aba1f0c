// Package receipt adapts raw OCR output into domain items.
//
// The parsed receipt is an untrusted external shape (see models.ParsedReceipt),
// so it is validated before expansion. Expansion replaces a payment's entire
// item list; prior items and their assignments are discarded by contract.
package receipt

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

// ErrInvalidReceipt marks a parsed receipt that failed schema validation.
// Use errors.Is to detect it; the wrapped message carries field details.
var ErrInvalidReceipt = errors.New("invalid receipt data")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the parsed receipt carries the required fields
// (items with name, quantity and price) before any of it is admitted into
// the domain model. Returns an error wrapping ErrInvalidReceipt on failure.
func Validate(parsed *models.ParsedReceipt) error {
	if parsed == nil {
		return fmt.Errorf("%w: no receipt", ErrInvalidReceipt)
	}
	if err := validate.Struct(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	return nil
}

// Expand turns parsed receipt lines into unit-priced items.
//
// A line with quantity n > 1 becomes n items, each priced
// round(price / n); the rounded units may sum to up to n-1 won away from
// the original line price, which is accepted rather than corrected. Every
// produced item starts with no assignees and IsShared seeded from the
// OCR's shared-dish guess.
func Expand(parsed *models.ParsedReceipt) []models.Item {
	var items []models.Item
	for _, line := range parsed.Items {
		quantity := int(line.Quantity)
		if quantity < 1 {
			quantity = 1
		}
		unitPrice := int64(math.Round(line.Price / float64(quantity)))
		for i := 0; i < quantity; i++ {
			items = append(items, models.Item{
				ID:       uuid.New().String(),
				Name:     line.Name,
				Quantity: 1,
				Price:    unitPrice,
				IsShared: line.IsLikelyShared,
			})
		}
	}
	return items
}

// RoundTax returns the receipt's tax total as whole won.
func RoundTax(parsed *models.ParsedReceipt) int64 {
	return int64(math.Round(parsed.Tax))
}

// RoundTip returns the receipt's tip total as whole won.
func RoundTip(parsed *models.ParsedReceipt) int64 {
	return int64(math.Round(parsed.Tip))
}

// SeedTitle picks a title for a payment after its first scan: the shop name
// when the OCR found one, otherwise the first item's name. The current
// title wins unless it is empty or still the creation placeholder, so a
// user-chosen title is never overwritten. Best effort only; never fails.
func SeedTitle(current string, parsed *models.ParsedReceipt) string {
	if current != "" && current != models.DefaultTitle {
		return current
	}
	if parsed.ShopName != "" {
		return parsed.ShopName
	}
	if len(parsed.Items) > 0 && parsed.Items[0].Name != "" {
		return parsed.Items[0].Name
	}
	return current
}
