package domain

// EventCustomer mirrors the customer block of the order-completed webhook.
type EventCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// EventAddress mirrors a Shopify address block. Province maps to the
// fulfillment API's state field.
type EventAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// EventLineItem is a line item as reported by the completed-order event
// itself, used when an order is submitted without a cached cart snapshot.
type EventLineItem struct {
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
	SKU          string `json:"sku"`
}

// OrderEvent is the order-completed webhook payload. CartToken is the
// correlation key back to the cached cart snapshot. Attributes may carry
// a _session_id pointing at held design assets for direct invoicing.
type OrderEvent struct {
	CartToken       string            `json:"cart_token"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	CheckoutToken   string            `json:"checkout_token"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	TotalPrice      int64             `json:"total_price"`
	Customer        EventCustomer     `json:"customer"`
	ShippingAddress EventAddress      `json:"shipping_address"`
	BillingAddress  EventAddress      `json:"billing_address"`
	LineItems       []EventLineItem   `json:"line_items"`
}
