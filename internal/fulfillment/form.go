package fulfillment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aurixlab/print-bridge/internal/domain"
)

// lineItemKeys is the fixed set of line-item fields the API accepts from
// generic proxy callers.
var lineItemKeys = []string{"name", "style", "quantity", "unit_price", "description"}

// encodeOrder flattens an assembled order into the API's form layout:
// root fields at the top level, items as lineitems_attributes[i][field].
func encodeOrder(order *domain.FulfillmentOrder) url.Values {
	form := url.Values{}

	set := func(key, value string) {
		form.Set(key, strings.TrimSpace(value))
	}

	set("user_id", order.UserID)
	set("customer_id", order.CustomerID)
	set("formatted_due_date", order.FormattedDueDate)
	set("formatted_customer_due_date", order.FormattedCustomerDueDate)
	set("order_nickname", order.OrderNickname)
	set("visualid", order.VisualID)
	set("first_name", order.FirstName)
	set("last_name", order.LastName)
	set("email", order.Email)
	set("phone", order.Phone)
	set("address1", order.Address1)
	set("address2", order.Address2)
	set("city", order.City)
	set("state", order.State)
	set("zip", order.Zip)
	set("country", order.Country)
	set("production_notes", order.ProductionNotes)
	set("notes", order.Notes)

	for i, item := range order.LineItems {
		setItem := func(key, value string) {
			form.Set(itemKey(i, key), strings.TrimSpace(value))
		}
		setItem("name", item.Name)
		setItem("style", item.Style)
		setItem("quantity", item.Quantity)
		setItem("unit_price", item.UnitPrice)
		setItem("description", item.Description)
		if item.FrontMockupURL != "" {
			setItem("mockup_url", item.FrontMockupURL)
		}
		if item.BackMockupURL != "" {
			setItem("mockup_url_2", item.BackMockupURL)
		}
	}

	return form
}

// encodeOrderData flattens a generic proxy payload. Root field values are
// stringified and trimmed; line items contribute only the known keys.
func encodeOrderData(data *OrderData) url.Values {
	form := url.Values{}

	for k, v := range data.Fields {
		form.Set(k, strings.TrimSpace(stringify(v)))
	}

	for i, item := range data.LineItems {
		for _, key := range lineItemKeys {
			form.Set(itemKey(i, key), strings.TrimSpace(stringify(item[key])))
		}
	}

	return form
}

func itemKey(i int, field string) string {
	return fmt.Sprintf("lineitems_attributes[%d][%s]", i, field)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; whole values stay integral
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
