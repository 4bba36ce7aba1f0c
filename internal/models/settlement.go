package models

// PayerShare is one payer's slice of a settlement.
type PayerShare struct {
	// PayerID identifies the payer this share belongs to.
	PayerID string `json:"payerId"`

	// Name is the payer's display name, copied for rendering convenience.
	Name string `json:"name"`

	// Owed is the final rounded amount this payer owes in won, including
	// their cut of the shared pool and their proportional tax/tip.
	Owed int64 `json:"owedAmount"`

	// Items are the individual items attributed to this payer, in the
	// payment's item order.
	Items []Item `json:"attributedItems"`
}

// Settlement is the derived per-payer report computed from a payment's
// current state. It is recomputed from scratch on every read and never
// stored; two calls over identical input produce identical output,
// including ordering.
//
// The per-payer amounts are each rounded independently, so their sum may
// drift from GrandTotal by up to one won per payer. That drift is part of
// the settlement contract, not an error to reconcile.
type Settlement struct {
	// Shares lists each payer's result in the payment's payer order.
	// Empty when the payment has no payers.
	Shares []PayerShare `json:"perPayer"`

	// SharedItems are the items split across the whole group, in the
	// payment's item order.
	SharedItems []Item `json:"sharedItems"`

	// PerPersonSharedCost is the rounded per-head cut of the shared pool.
	PerPersonSharedCost int64 `json:"perPersonSharedCost"`

	// GrandTotal is the sum of all item prices plus tax and tip.
	GrandTotal int64 `json:"grandTotal"`
}
