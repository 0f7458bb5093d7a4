package model

import (
	"encoding/json"
	"fmt"
)

// DefaultAttributeCost is the internal unit cost applied when an attribute
// is created without one.
const DefaultAttributeCost = 30000

// Attribute is a priced variant of a product, e.g. a size. Price is the
// customer-facing unit price; Cost is the internal unit cost used for
// profit reporting.
type Attribute struct {
	ID        string  `json:"id" db:"id"`
	Size      string  `json:"size" db:"size"`
	Price     float64 `json:"price" db:"price"`
	Cost      float64 `json:"defaultPrice" db:"cost"`
	ProductID string  `json:"productId" db:"product_id"`
	IsActive  bool    `json:"isActive" db:"is_active"`
}

// AttributeRefs is a list of attribute identifiers that also accepts a
// single scalar reference on the wire. Older clients send
// `"attribute": "<id>"`, newer ones `"attribute": ["<id>", ...]`; both
// normalise to a slice here so nothing downstream has to branch.
type AttributeRefs []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (r *AttributeRefs) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*r = nil
			return nil
		}
		*r = AttributeRefs{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("attribute must be a string or an array of strings")
	}
	*r = AttributeRefs(many)
	return nil
}
