// Package calculator computes per-payer settlements.
//
// ComputeSettlement is a pure function of the payment's current state: it
// is re-run from scratch after every mutation rather than updated
// incrementally, and identical input always produces identical output,
// ordering included.
package calculator

import (
	"math"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

// ComputeSettlement splits the given items among the given payers and
// distributes tax and tip proportionally to each payer's subtotal.
//
// Shared items form a pool split equally across every current payer,
// whether or not they are assigned to anything. Individual items are split
// evenly among their own assignees only; an individual item with no
// assignees contributes to nobody (its cost stays in GrandTotal but is
// absent from the per-payer amounts; callers treat such items as not yet
// assigned).
//
// Subtotals accumulate as floats; each payer's final amount is rounded
// independently, so the rounded amounts are not reconciled against
// GrandTotal and may drift from it by up to one won per payer.
//
// The function never fails. With no payers it returns an empty Shares list
// (shared items are still reported); callers own input validation, and
// semantically meaningless input (negative prices, unknown payer IDs on
// items) produces numerically consistent but meaningless output.
func ComputeSettlement(items []models.Item, payers []models.Payer, tax, tip int64) models.Settlement {
	var sharedItems []models.Item
	var totalShared, grandSubtotal int64
	for _, item := range items {
		grandSubtotal += item.Price
		if item.IsShared {
			sharedItems = append(sharedItems, item)
			totalShared += item.Price
		}
	}

	settlement := models.Settlement{
		SharedItems: sharedItems,
		GrandTotal:  grandSubtotal + tax + tip,
	}
	if len(payers) == 0 {
		return settlement
	}

	perShared := float64(totalShared) / float64(len(payers))
	settlement.PerPersonSharedCost = int64(math.Round(perShared))

	subtotals := make(map[string]float64, len(payers))
	attributed := make(map[string][]models.Item)
	for _, p := range payers {
		subtotals[p.ID] = perShared
	}

	for _, item := range items {
		if item.IsShared || len(item.Payers) == 0 {
			continue
		}
		share := float64(item.Price) / float64(len(item.Payers))
		for _, payerID := range item.Payers {
			if _, ok := subtotals[payerID]; !ok {
				continue // stale assignee, not a current payer
			}
			subtotals[payerID] += share
			attributed[payerID] = append(attributed[payerID], item)
		}
	}

	settlement.Shares = make([]models.PayerShare, len(payers))
	for i, p := range payers {
		subtotal := subtotals[p.ID]
		var proportion float64
		if grandSubtotal > 0 {
			proportion = subtotal / float64(grandSubtotal)
		} else {
			proportion = 1 / float64(len(payers))
		}
		owed := subtotal + float64(tax)*proportion + float64(tip)*proportion
		settlement.Shares[i] = models.PayerShare{
			PayerID: p.ID,
			Name:    p.Name,
			Owed:    int64(math.Round(owed)),
			Items:   attributed[p.ID],
		}
	}
	return settlement
}
