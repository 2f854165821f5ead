package server

import (
	"fmt"
	"net/http"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/payment"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Reply               string            `json:"reply"`
	OfferDetails        *catalog.Offer    `json:"offer_details"`
	CurrentContextOffer *catalog.Offer    `json:"current_context_offer"`
	ThinkingSteps       []string          `json:"thinking_steps"`
	SearchResults       []catalog.Summary `json:"search_results"`
	TriggerCheckout     bool              `json:"trigger_checkout"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SessionID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "session_id and message are required")
		return
	}

	res := s.loop.Converse(r.Context(), req.SessionID, req.Message, nil)

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:               res.Reply,
		OfferDetails:        res.OfferDetails,
		CurrentContextOffer: s.sessions.GetOrCreate(req.SessionID).BestOffer(),
		ThinkingSteps:       res.ThinkingSteps,
		SearchResults:       res.SearchResults,
		TriggerCheckout:     res.TriggerCheckout,
	})
}

type checkoutRequest struct {
	SessionID       string `json:"session_id"`
	CardType        string `json:"card_type"`
	CardNumber      string `json:"card_number"`
	CardExpiry      string `json:"card_expiry"`
	CardCVC         string `json:"card_cvc"`
	ShippingAddress string `json:"shipping_address"`
}

type checkoutResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TransactionID   string `json:"transaction_id,omitempty"`
	WorldpayOutcome string `json:"worldpay_outcome,omitempty"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	sess := s.sessions.GetOrCreate(req.SessionID)
	offer := sess.BestOffer()
	if offer == nil {
		writeJSON(w, http.StatusOK, checkoutResponse{
			Success: false,
			Message: "No active purchase found. Please start a new search.",
		})
		return
	}

	amount := offer.TotalPrice
	if amount <= 0 {
		amount = offer.FinalPrice
	}

	// Shipping is out of scope for the gateway call; recorded for the
	// fulfilment log only.
	if req.ShippingAddress != "" {
		s.log.Info("shipping address received",
			"session", req.SessionID, "address", req.ShippingAddress)
	}

	result := s.payments.ProcessPayment(r.Context(), payment.Card{
		Type:   req.CardType,
		Number: req.CardNumber,
		Expiry: req.CardExpiry,
		CVC:    req.CardCVC,
	}, amount, offer.ProductName)

	resp := checkoutResponse{
		Success:         result.Success,
		Message:         result.Message,
		TransactionID:   result.TransactionID,
		WorldpayOutcome: result.WorldpayOutcome,
	}
	if result.Success {
		resp.Message = fmt.Sprintf("🎉 Order confirmed for **%s**! %s", offer.ProductName, result.Message)
		sess.ClearBestOffer()
		s.log.Info("order confirmed",
			"session", req.SessionID,
			"product", offer.ProductID,
			"transaction_id", result.TransactionID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	products := s.catalog.Products()
	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}
