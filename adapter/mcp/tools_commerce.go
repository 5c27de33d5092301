package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/commercekit/ucp-mcp/internal/catalog"
	"github.com/commercekit/ucp-mcp/internal/checkout"
)

type generateCheckoutInput struct {
	Items    []checkout.Item `json:"items,omitempty"`
	Currency string          `json:"currency,omitempty"`
}

type discoverMerchantInput struct {
	MerchantURL string `json:"merchant_url" jsonschema:"required"`
}

func registerCommerceTools(srv *mcp.Server, deps ToolDependencies) error {
	srv.Tool("list_capabilities").
		Description("List UCP commerce capabilities and extensions with their schemas").
		Handler(func(ctx context.Context, input struct{}) (catalog.Taxonomy, error) {
			return deps.Catalog.List(), nil
		})

	srv.Tool("generate_checkout_request").
		Description("Generate a sample UCP checkout request from line items").
		Handler(func(ctx context.Context, input generateCheckoutInput) (checkout.Request, error) {
			return checkout.GenerateRequest(input.Items, input.Currency), nil
		})

	srv.Tool("discover_merchant").
		Description("Fetch a merchant's UCP profile from its well-known location and validate it").
		Handler(func(ctx context.Context, input discoverMerchantInput) (any, error) {
			result, err := deps.Discovery.Discover(ctx, input.MerchantURL)
			if err != nil {
				return flagged(err.Error()), nil
			}
			return result, nil
		})

	return nil
}
