package agent

import "github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"

// turnState accumulates what the tools discovered during one turn. It is
// folded after every tool result, so a later call in the same batch
// overrides an earlier one.
type turnState struct {
	searchResults   []catalog.Summary
	offer           *catalog.Offer
	triggerCheckout bool
}

func (s *turnState) apply(toolName string, result map[string]any) {
	switch toolName {
	case "search_products":
		if result["found"] == true {
			if products, ok := result["products"].([]catalog.Summary); ok {
				s.searchResults = products
			}
		}
	case "get_best_offer":
		if result["found"] == true {
			if best, ok := result["best_offer"].(catalog.Offer); ok {
				s.offer = &best
			}
		}
	case "initiate_checkout":
		if result["success"] == true {
			s.triggerCheckout = true
			// Checkout re-resolves pricing, so its offer wins over any
			// earlier get_best_offer quote.
			if offer, ok := result["offer_details"].(catalog.Offer); ok {
				s.offer = &offer
			}
		}
	}
}
