// Package assign implements the item-assignment state machine.
//
// Every operation is a pure reducer: it takes the current slices, returns
// fresh slices, and never mutates its input. Per item the reachable states
// are unassigned (not shared, no payers), individual (not shared, one or
// more payers) and shared (shared, no payers); the shared/individual modes
// are mutually exclusive and every operation preserves that.
package assign

import (
	"strings"

	"github.com/google/uuid"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

// AddPayer appends a new payer with a fresh ID. The add is silently
// rejected (the input slice is returned unchanged) when the name is empty
// or matches an existing payer's name case-insensitively. Items are never
// touched.
func AddPayer(payers []models.Payer, name string) []models.Payer {
	if name == "" {
		return payers
	}
	for _, p := range payers {
		if strings.EqualFold(p.Name, name) {
			return payers
		}
	}
	out := make([]models.Payer, len(payers), len(payers)+1)
	copy(out, payers)
	return append(out, models.Payer{ID: uuid.New().String(), Name: name})
}

// RemovePayer drops the payer from the payer list and cascades the removal
// through every item's assignee set. IsShared flags are left alone; an
// individually-assigned item whose last assignee is removed simply becomes
// unassigned and contributes to nobody until reassigned.
func RemovePayer(items []models.Item, payers []models.Payer, payerID string) ([]models.Item, []models.Payer) {
	outPayers := make([]models.Payer, 0, len(payers))
	for _, p := range payers {
		if p.ID != payerID {
			outPayers = append(outPayers, p)
		}
	}

	outItems := make([]models.Item, len(items))
	for i, item := range items {
		outItems[i] = item
		if !item.AssignedTo(payerID) {
			continue
		}
		remaining := make([]string, 0, len(item.Payers)-1)
		for _, id := range item.Payers {
			if id != payerID {
				remaining = append(remaining, id)
			}
		}
		outItems[i].Payers = remaining
	}
	return outItems, outPayers
}

// TogglePayer flips payerID's membership in the matching item's assignee
// set and unconditionally clears IsShared: manually assigning anyone (in
// either direction) declares individual-mode intent. Items other than
// itemID pass through untouched.
func TogglePayer(items []models.Item, itemID, payerID string) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = item
		if item.ID != itemID {
			continue
		}
		if item.AssignedTo(payerID) {
			remaining := make([]string, 0, len(item.Payers)-1)
			for _, id := range item.Payers {
				if id != payerID {
					remaining = append(remaining, id)
				}
			}
			out[i].Payers = remaining
		} else {
			assigned := make([]string, len(item.Payers), len(item.Payers)+1)
			copy(assigned, item.Payers)
			out[i].Payers = append(assigned, payerID)
		}
		out[i].IsShared = false
	}
	return out
}

// ToggleShared flips the matching item's IsShared flag and always resets
// its assignees to empty, in both directions: becoming shared discards the
// prior individual assignees, and leaving shared mode starts from a blank
// set rather than restoring them. No assignment history is retained.
func ToggleShared(items []models.Item, itemID string) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = item
		if item.ID != itemID {
			continue
		}
		out[i].IsShared = !item.IsShared
		out[i].Payers = nil
	}
	return out
}
