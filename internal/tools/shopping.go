package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
)

// SearchProductsTool looks up catalog entries matching a free-text query.
type SearchProductsTool struct {
	Catalog *catalog.Service
}

func (t *SearchProductsTool) Name() string { return "search_products" }

func (t *SearchProductsTool) Description() string {
	return "Search the product catalog. Use this whenever the customer asks to see, browse, or find products. Supports an optional category, shoe size, and maximum price."
}

func (t *SearchProductsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "Free-text search terms, e.g. 'cushioned running shoes'"},
			"category": {"type": "string", "enum": ["shoes", "books"], "description": "Restrict results to one category"},
			"size": {"type": "string", "description": "Shoe size to filter by, e.g. '10.5'"},
			"max_price": {"type": "number", "description": "Only return products at or below this price"}
		},
		"required": ["query"]
	}`)
}

func (t *SearchProductsTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	query := stringArg(params, "query")
	category := stringArg(params, "category")
	size := stringArg(params, "size")
	maxPrice, ok := floatArg(params, "max_price")
	if !ok {
		maxPrice = 0
	}

	results := t.Catalog.Search(query, category, maxPrice, size)
	if len(results) == 0 {
		return map[string]any{
			"found":   false,
			"message": fmt.Sprintf("No products found matching '%s'.", query),
		}, nil
	}
	return map[string]any{
		"found":    true,
		"count":    len(results),
		"products": results,
	}, nil
}

// GetBestOfferTool compares simulated vendor quotes and returns the
// cheapest.
type GetBestOfferTool struct {
	Catalog *catalog.Service
}

func (t *GetBestOfferTool) Name() string { return "get_best_offer" }

func (t *GetBestOfferTool) Description() string {
	return "Get the best available price for a product across all vendors. Use this when the customer asks for the price, a deal, or the best offer on a specific product."
}

func (t *GetBestOfferTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"product_id": {"type": "string", "description": "The catalog id of the product"},
			"quantity": {"type": "integer", "minimum": 1, "description": "How many units the customer wants"}
		},
		"required": ["product_id"]
	}`)
}

func (t *GetBestOfferTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	productID := stringArg(params, "product_id")
	quantity := intArg(params, "quantity", 1, 1)

	offers, err := t.Catalog.VendorPrices(productID, quantity)
	if err != nil {
		return map[string]any{
			"found":   false,
			"message": fmt.Sprintf("Product '%s' not found. Please search the catalog first.", productID),
		}, nil
	}
	return map[string]any{
		"found":      true,
		"best_offer": offers[0],
		"all_offers": offers,
	}, nil
}

// InitiateCheckoutTool starts a purchase. It re-resolves pricing at checkout
// time so the offer the customer commits to is current, not a stale quote.
type InitiateCheckoutTool struct {
	Catalog *catalog.Service
}

func (t *InitiateCheckoutTool) Name() string { return "initiate_checkout" }

func (t *InitiateCheckoutTool) Description() string {
	return "Start the checkout process for a product the customer has confirmed they want to buy. Only call this after the customer clearly agrees to purchase."
}

func (t *InitiateCheckoutTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"product_id": {"type": "string", "description": "The catalog id of the product to buy"},
			"quantity": {"type": "integer", "minimum": 1, "description": "How many units to buy"}
		},
		"required": ["product_id"]
	}`)
}

func (t *InitiateCheckoutTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	productID := stringArg(params, "product_id")
	quantity := intArg(params, "quantity", 1, 1)

	offers, err := t.Catalog.VendorPrices(productID, quantity)
	if err != nil {
		return map[string]any{
			"success": false,
			"message": fmt.Sprintf("Product '%s' not found. Please search again.", productID),
		}, nil
	}
	best := offers[0]
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Checkout initiated for %s. Please provide payment details to complete the purchase.", best.ProductName),
		"checkout_details": map[string]any{
			"product_id":   best.ProductID,
			"product_name": best.ProductName,
			"quantity":     best.Quantity,
			"vendor":       best.Vendor,
			"total_price":  best.TotalPrice,
		},
		"offer_details": best,
	}, nil
}
