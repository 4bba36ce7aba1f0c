// Package models defines the core domain models for Hyuni Pay.
//
// # Models
//
//   - Payment: the aggregate a group edits together (items, payers, tax, tip)
//   - Item: one unit-priced line from a scanned receipt
//   - Payer: a participant eligible to owe money
//   - Settlement: the derived per-payer owed-amount report (never stored)
//   - ParsedReceipt: the untrusted shape produced by the OCR collaborator
//
// # Money
//
// All monetary values are int64 amounts in the smallest currency unit
// (Korean won has no sub-units, so 1 == ₩1). Fractional shares only exist
// transiently inside the allocation engine; every payer-facing value is
// rounded to a whole amount.
//
// # Assignment invariant
//
// An item is either shared by the whole group or individually assigned to an
// explicit subset of payers, never both: IsShared == true implies an empty
// Payers set. The assign package maintains this on every mutation;
// Item.Valid reports violations, which are programmer errors.
package models
