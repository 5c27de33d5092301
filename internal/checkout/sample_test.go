package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequest_SuppliedItems(t *testing.T) {
	req := GenerateRequest([]Item{
		{Name: "Keyboard", Quantity: 1, PriceCents: 14900},
	}, "USD")

	require.Len(t, req.LineItems, 1)
	item := req.LineItems[0]
	assert.Equal(t, "item_1", item.ID)
	assert.Equal(t, "Keyboard", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, Price{AmountCents: 14900, Currency: "USD"}, item.UnitPrice)

	assert.Equal(t, ProtocolVersion, req.UCP.Version)
	assert.Equal(t, []string{Capability}, req.UCP.Capabilities)
	assert.Equal(t, "USD", req.Currency)
}

func TestGenerateRequest_SequentialIDs(t *testing.T) {
	req := GenerateRequest([]Item{
		{Name: "Keyboard", Quantity: 1, PriceCents: 14900},
		{Name: "Mouse", Quantity: 2, PriceCents: 4900},
		{Name: "Cable", Quantity: 3, PriceCents: 900},
	}, "EUR")

	require.Len(t, req.LineItems, 3)
	assert.Equal(t, "item_1", req.LineItems[0].ID)
	assert.Equal(t, "item_2", req.LineItems[1].ID)
	assert.Equal(t, "item_3", req.LineItems[2].ID)

	for _, item := range req.LineItems {
		assert.Equal(t, "EUR", item.UnitPrice.Currency)
	}
}

func TestGenerateRequest_DefaultPlaceholder(t *testing.T) {
	req := GenerateRequest(nil, "")

	assert.Equal(t, DefaultCurrency, req.Currency)
	require.Len(t, req.LineItems, 1)
	assert.Equal(t, "item_1", req.LineItems[0].ID)
	assert.NotEmpty(t, req.LineItems[0].Name)
	assert.Equal(t, 1, req.LineItems[0].Quantity)
}
