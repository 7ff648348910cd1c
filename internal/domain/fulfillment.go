package domain

// FulfillmentLineItem is one item of the downstream order. All values are
// strings because the fulfillment API takes a flat form-encoded body.
type FulfillmentLineItem struct {
	Name        string
	Style       string
	Quantity    string
	UnitPrice   string
	Description string

	// Mockup URLs are attached only when the cart item carried design
	// asset references.
	FrontMockupURL string
	BackMockupURL  string
}

// FulfillmentOrder is the assembled downstream order payload. It is built
// fresh per webhook invocation and never persisted.
type FulfillmentOrder struct {
	UserID                   string
	CustomerID               string
	FormattedDueDate         string
	FormattedCustomerDueDate string
	OrderNickname            string
	VisualID                 string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address1  string
	Address2  string
	City      string
	State     string
	Zip       string
	Country   string

	ProductionNotes string
	Notes           string

	LineItems []FulfillmentLineItem
}
