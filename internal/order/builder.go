package order

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aurixlab/print-bridge/internal/domain"
)

// dueDateOffset is how far out production is scheduled from order receipt.
const dueDateOffset = 7 * 24 * time.Hour

// Cart item properties starting with an underscore are storefront-internal
// (hidden-property convention) and are kept out of the printed description.
const internalPrefix = "_"

const (
	frontURLProperty = "_front_url"
	backURLProperty  = "_back_url"
)

// buildOrder assembles the downstream payload from the cached cart snapshot
// and the completed-order event.
func buildOrder(snapshot *domain.CartSnapshot, event *domain.OrderEvent, userID, customerID string, now time.Time) *domain.FulfillmentOrder {
	due := formatDueDate(now.Add(dueDateOffset))

	items := make([]domain.FulfillmentLineItem, 0, len(snapshot.Items))
	for _, it := range snapshot.Items {
		items = append(items, buildLineItem(it))
	}

	return &domain.FulfillmentOrder{
		UserID:                   userID,
		CustomerID:               customerID,
		FormattedDueDate:         due,
		FormattedCustomerDueDate: due,
		OrderNickname:            "Shopify #" + event.Name,
		VisualID:                 "WEB-" + event.CheckoutToken,

		FirstName: event.Customer.FirstName,
		LastName:  event.Customer.LastName,
		Email:     event.Email,
		Phone:     event.Phone,
		Address1:  fallback(event.ShippingAddress.Address1, event.BillingAddress.Address1),
		Address2:  fallback(event.ShippingAddress.Address2, event.BillingAddress.Address2),
		City:      fallback(event.ShippingAddress.City, event.BillingAddress.City),
		State:     fallback(event.ShippingAddress.Province, event.BillingAddress.Province),
		Zip:       fallback(event.ShippingAddress.Zip, event.BillingAddress.Zip),
		Country:   fallback(event.ShippingAddress.Country, event.BillingAddress.Country),

		ProductionNotes: snapshot.Note,
		Notes:           "Total paid: $" + formatMoney(event.TotalPrice),

		LineItems: items,
	}
}

func buildLineItem(it domain.CartItem) domain.FulfillmentLineItem {
	style := it.Variant
	if style == "" {
		style = "Default"
	}

	return domain.FulfillmentLineItem{
		Name:           it.Title,
		Style:          style,
		Quantity:       strconv.Itoa(it.Qty),
		UnitPrice:      formatMoney(it.Price),
		Description:    describeProperties(it.Properties),
		FrontMockupURL: it.Properties[frontURLProperty],
		BackMockupURL:  it.Properties[backURLProperty],
	}
}

// buildDirectOrder assembles a downstream order straight from a raw order
// event plus held session assets, bypassing the cart hold. Used by the
// proxy's create-invoice route.
func buildDirectOrder(event *domain.OrderEvent, assets *domain.SessionAssets, sessionID, userID, customerID string, now time.Time) *domain.FulfillmentOrder {
	due := formatDueDate(now.Add(dueDateOffset))

	items := make([]domain.FulfillmentLineItem, 0, len(event.LineItems))
	for _, li := range event.LineItems {
		style := li.VariantTitle
		if style == "" {
			style = "Default"
		}
		items = append(items, domain.FulfillmentLineItem{
			Name:      li.Title,
			Style:     style,
			Quantity:  strconv.Itoa(li.Quantity),
			UnitPrice: formatMoney(li.Price),
			// the event has no custom properties; the SKU is the only
			// per-item detail worth printing
			Description: li.SKU,
		})
	}

	return &domain.FulfillmentOrder{
		UserID:                   userID,
		CustomerID:               customerID,
		FormattedDueDate:         due,
		FormattedCustomerDueDate: due,
		OrderNickname:            "Shopify #" + event.Name,
		VisualID:                 sessionID,

		FirstName: event.Customer.FirstName,
		LastName:  event.Customer.LastName,
		Email:     event.Email,
		Phone:     event.Phone,
		Address1:  fallback(event.ShippingAddress.Address1, event.BillingAddress.Address1),
		Address2:  fallback(event.ShippingAddress.Address2, event.BillingAddress.Address2),
		City:      fallback(event.ShippingAddress.City, event.BillingAddress.City),
		State:     fallback(event.ShippingAddress.Province, event.BillingAddress.Province),
		Zip:       fallback(event.ShippingAddress.Zip, event.BillingAddress.Zip),
		Country:   fallback(event.ShippingAddress.Country, event.BillingAddress.Country),

		ProductionNotes: "Front: " + orNone(assets.FrontDataURL) + "\nBack: " + orNone(assets.BackDataURL),

		LineItems: items,
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// describeProperties joins customer-visible properties into "k: v" lines.
// Keys are sorted so the description is stable across invocations.
func describeProperties(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if strings.HasPrefix(k, internalPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "Shopify item"
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+props[k])
	}
	return strings.Join(lines, "\n")
}

// formatMoney renders minor currency units as a decimal string with
// exactly two digits, e.g. 2550 -> "25.50".
func formatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// formatDueDate renders a date as zero-padded MM/DD/YYYY.
func formatDueDate(t time.Time) string {
	return t.Format("01/02/2006")
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}
