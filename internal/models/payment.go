package models

// DefaultTitle is the placeholder title given to a freshly created payment.
// Receipt ingestion may replace it with a seeded title (see the receipt
// package); a user-chosen title is never overwritten.
const DefaultTitle = "New Payment"

// Payer is a participant eligible to owe money.
// Participants are identified by free-text display names (no accounts);
// identity is the opaque ID, and names are kept unique case-insensitively
// within one payment at add time.
type Payer struct {
	// ID is the unique identifier for the payer (UUID format).
	ID string `json:"id"`

	// Name is the non-empty display name (e.g., "현이", "Alice").
	Name string `json:"name"`
}

// Item is one unit-priced line on a payment.
//
// Items come out of receipt ingestion with Quantity == 1: multi-quantity
// receipt lines are expanded into that many unit items so each unit can be
// assigned independently.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the item description from the receipt (e.g., "파전", "Coke").
	Name string `json:"name"`

	// Quantity is always 1 after ingestion; kept for wire compatibility.
	Quantity int `json:"quantity"`

	// Price is the amount for this unit in won.
	Price int64 `json:"price"`

	// Payers holds the IDs of payers this item is individually assigned to.
	// Order is not meaningful; membership is.
	Payers []string `json:"payers"`

	// IsShared marks the item as split equally across the whole group.
	// Mutually exclusive with Payers: a shared item has no assignees.
	IsShared bool `json:"isShared"`
}

// Valid reports whether the item satisfies the assignment invariant
// (shared items carry no individual assignees). The assign package keeps
// this true on every transition, so a false return is a programmer error
// and callers should fail fast.
func (i Item) Valid() bool {
	return !i.IsShared || len(i.Payers) == 0
}

// AssignedTo reports whether the item is individually assigned to payerID.
func (i Item) AssignedTo(payerID string) bool {
	for _, id := range i.Payers {
		if id == payerID {
			return true
		}
	}
	return false
}

// Payment is the aggregate a group edits together: the scanned items, the
// people splitting them, and the tax/tip totals distributed proportionally
// at settlement time.
//
// ID, Title and Date are pass-through metadata owned by the caller; the
// allocation engine only reads Items, Payers, Tax and Tip.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name. Defaults to DefaultTitle and may be
	// seeded from the receipt's shop name on first scan.
	Title string `json:"title"`

	// Date is an ISO 8601 timestamp supplied at creation time.
	Date string `json:"date"`

	// Items are the unit-priced lines, in receipt order.
	Items []Item `json:"items"`

	// Payers are the participants, in the order they were added.
	Payers []Payer `json:"payers"`

	// Tax is the receipt's tax total in won (0 when absent).
	Tax int64 `json:"tax"`

	// Tip is the tip total in won (0 when absent).
	Tip int64 `json:"tip"`

	// CreatedAt is the Unix timestamp when the payment was created.
	CreatedAt int64 `json:"createdAt"`
}
