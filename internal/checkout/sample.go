// Package checkout synthesizes sample UCP checkout requests for agents
// exploring the protocol. Samples are illustrative payloads; they are not
// validated against any schema.
package checkout

import "fmt"

const (
	// ProtocolVersion is the UCP revision stamped on generated requests.
	ProtocolVersion = "1.0"
	// Capability names the checkout capability advertised in the envelope.
	Capability = "shopping.checkout"
	// DefaultCurrency is used when the caller supplies none.
	DefaultCurrency = "USD"
)

// Item is a caller-supplied line item description.
type Item struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity,omitempty"`
	PriceCents int64  `json:"price_cents,omitempty"`
}

// Price is a monetary amount in minor units.
type Price struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// LineItem is one generated checkout line.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Price  `json:"unit_price"`
}

// Envelope is the fixed protocol header on every generated request.
type Envelope struct {
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

// Request is a synthesized checkout request sample.
type Request struct {
	UCP       Envelope   `json:"ucp"`
	Currency  string     `json:"currency"`
	LineItems []LineItem `json:"line_items"`
}

// GenerateRequest builds a sample checkout request from the supplied items.
// Line item ids are sequential and 1-based. With no items, a single
// placeholder line item is emitted.
func GenerateRequest(items []Item, currency string) Request {
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(items) == 0 {
		items = []Item{{Name: "Sample Item", Quantity: 1, PriceCents: 1000}}
	}

	lineItems := make([]LineItem, 0, len(items))
	for i, item := range items {
		lineItems = append(lineItems, LineItem{
			ID:       fmt.Sprintf("item_%d", i+1),
			Name:     item.Name,
			Quantity: item.Quantity,
			UnitPrice: Price{
				AmountCents: item.PriceCents,
				Currency:    currency,
			},
		})
	}

	return Request{
		UCP: Envelope{
			Version:      ProtocolVersion,
			Capabilities: []string{Capability},
		},
		Currency:  currency,
		LineItems: lineItems,
	}
}
