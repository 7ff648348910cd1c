package domain

// CartItem is a single storefront line item captured at checkout start.
// Price is in minor currency units (cents).
type CartItem struct {
	Title      string            `json:"title"`
	Variant    string            `json:"variant,omitempty"`
	Qty        int               `json:"qty"`
	Price      int64             `json:"price"`
	Properties map[string]string `json:"properties,omitempty"`
}

// CartSnapshot represents the full cart state at checkout time, as cached
// under the cart token. The token itself is the cache key and is not stored.
type CartSnapshot struct {
	Items      []CartItem        `json:"items"`
	Note       string            `json:"note,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
