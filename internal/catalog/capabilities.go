// Package catalog groups indexed schemas into the fixed UCP capability
// taxonomy used for discovery and listing.
package catalog

import (
	"strings"

	"github.com/commercekit/ucp-mcp/internal/schema"
)

// MetaSchemaName is the logical name of the capability meta-schema.
const MetaSchemaName = "capability"

// shoppingPrefix scopes taxonomy matching to the shopping domain.
const shoppingPrefix = "shopping/"

// taxonomyEntry declares one capability or extension: its key, the keyword
// matched against schema names, and a display description. The taxonomy is
// deliberately a flat table so it can be tested on its own.
type taxonomyEntry struct {
	key         string
	keyword     string
	description string
}

var coreCapabilities = []taxonomyEntry{
	{key: "checkout", keyword: "checkout", description: "Create, update and complete checkout sessions"},
	{key: "order", keyword: "order", description: "Order representation and lifecycle updates"},
	{key: "payment", keyword: "payment", description: "Payment handler negotiation and payment data"},
	{key: "fulfillment", keyword: "fulfillment", description: "Shipping, delivery and fulfillment options"},
}

var extensionCapabilities = []taxonomyEntry{
	{key: "discount", keyword: "discount", description: "Discount codes applied to a checkout"},
	{key: "buyer_consent", keyword: "consent", description: "Buyer consent collection for marketing and data use"},
}

// Capability is one taxonomy key annotated with the schemas matching it.
type Capability struct {
	Description string   `json:"description"`
	Schemas     []string `json:"schemas"`
}

// Taxonomy is the full capability listing returned to callers.
type Taxonomy struct {
	Capabilities map[string]Capability `json:"capabilities"`
	Extensions   map[string]Capability `json:"extensions"`
	MetaSchema   any                   `json:"capability_schema,omitempty"`
}

// Aggregator computes the capability taxonomy from the live schema index.
type Aggregator struct {
	index *schema.Index
	store *schema.Store
}

// NewAggregator creates a capability aggregator.
func NewAggregator(index *schema.Index, store *schema.Store) *Aggregator {
	return &Aggregator{index: index, store: store}
}

// List snapshots the schema index and attaches to each taxonomy key the
// shopping-domain schema names containing its keyword. Nothing is cached;
// the result reflects storage state at call time.
func (a *Aggregator) List() Taxonomy {
	names := []string{}
	for _, entry := range a.index.List("") {
		if strings.HasPrefix(entry.Name, shoppingPrefix) {
			names = append(names, entry.Name)
		}
	}

	taxonomy := Taxonomy{
		Capabilities: groupByKeyword(coreCapabilities, names),
		Extensions:   groupByKeyword(extensionCapabilities, names),
	}

	if doc, err := a.store.Resolve(MetaSchemaName); err == nil {
		taxonomy.MetaSchema = doc.Value
	}

	return taxonomy
}

func groupByKeyword(entries []taxonomyEntry, names []string) map[string]Capability {
	out := make(map[string]Capability, len(entries))
	for _, entry := range entries {
		matched := []string{}
		for _, name := range names {
			if strings.Contains(name, entry.keyword) {
				matched = append(matched, name)
			}
		}
		out[entry.key] = Capability{
			Description: entry.description,
			Schemas:     matched,
		}
	}
	return out
}
