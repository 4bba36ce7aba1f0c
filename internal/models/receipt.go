package models

// ParsedItem is one line item as extracted by the OCR collaborator.
// Price is the total for the whole quantity, not per unit.
type ParsedItem struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"min=0"`

	// IsLikelyShared is the OCR's guess that this is a dish the table
	// shares (pajeon, jjigae, appetizers). It seeds the item's IsShared
	// flag; the user may flip it afterwards.
	IsLikelyShared bool `json:"isLikelyShared"`
}

// ParsedReceipt is the raw result of scanning a receipt image.
//
// This shape crosses a trust boundary: it is produced by an external AI
// service from a photo, so numeric fields arrive as loosely-typed JSON
// numbers and everything is validated (see receipt.Validate) before any of
// it is admitted into the domain model.
type ParsedReceipt struct {
	Items    []ParsedItem `json:"items" validate:"required,min=1,dive"`
	Total    float64      `json:"total"`
	Tax      float64      `json:"tax"`
	Tip      float64      `json:"tip"`
	ShopName string       `json:"shopName"`
}
