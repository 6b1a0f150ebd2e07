package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const NoSize = "nosize"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	Sizes       []string  `json:"sizes"`
	Images      []string  `json:"images,omitempty"`
	Bestseller  bool      `json:"bestseller"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasSize reports whether size is one of the product's variants. A product
// without variants accepts an empty size or NoSize.
func (p *Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return size == "" || size == NoSize
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ParseSizes normalizes the sizes field of a product request. Clients send it as
// a JSON array, a JSON-encoded array inside a string, or a comma separated string.
func ParseSizes(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []any
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, BadInput("sizes must be an array of strings")
		}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, BadInput("sizes is not a valid string")
		}
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			for _, part := range strings.Split(s, ",") {
				items = append(items, part)
			}
		}
	default:
		return nil, BadInput("sizes must be an array or a string")
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		s := strings.TrimSpace(fmt.Sprint(it))
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// DefaultSizes fills in NoSize for jewellery, which is sold without variants.
func DefaultSizes(category string, sizes []string) []string {
	if len(sizes) == 0 && strings.EqualFold(category, "jewellery") {
		return []string{NoSize}
	}
	return sizes
}
