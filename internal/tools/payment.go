package tools

import (
	"context"
	"encoding/json"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/payment"
)

// ProcessPaymentTool charges a card through the payment gateway. Exposed to
// the model so a conversation-driven checkout can complete without leaving
// the chat.
type ProcessPaymentTool struct {
	Payments *payment.Client
}

func (t *ProcessPaymentTool) Name() string { return "process_payment" }

func (t *ProcessPaymentTool) Description() string {
	return "Charge the customer's card for a confirmed purchase. Requires the full card details and the amount. Only Visa and Mastercard are accepted."
}

func (t *ProcessPaymentTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"amount": {"type": "number", "description": "Total amount to charge, in dollars"},
			"card_type": {"type": "string", "enum": ["Visa", "Mastercard"]},
			"card_number": {"type": "string", "description": "16-digit card number"},
			"card_expiry": {"type": "string", "description": "Expiry in MM/YY format"},
			"card_cvc": {"type": "string", "description": "3 or 4 digit security code"},
			"product_name": {"type": "string", "description": "What the charge is for"}
		},
		"required": ["amount", "card_type", "card_number", "card_expiry", "card_cvc"]
	}`)
}

func (t *ProcessPaymentTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	amount, _ := floatArg(params, "amount")
	card := payment.Card{
		Type:   stringArg(params, "card_type"),
		Number: stringArg(params, "card_number"),
		Expiry: stringArg(params, "card_expiry"),
		CVC:    stringArg(params, "card_cvc"),
	}

	res := t.Payments.ProcessPayment(ctx, card, amount, stringArg(params, "product_name"))
	out := map[string]any{
		"success": res.Success,
		"message": res.Message,
	}
	if res.TransactionID != "" {
		out["transaction_id"] = res.TransactionID
	}
	if res.WorldpayOutcome != "" {
		out["worldpay_outcome"] = res.WorldpayOutcome
	}
	if res.CardUsed != "" {
		out["card_used"] = res.CardUsed
	}
	return out, nil
}
