package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Browser clients connect from the storefront origin; auth is the API
	// key, not the origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsEvent struct {
	Type string `json:"type"` // "thinking" | "reply" | "error"
	Step string `json:"step,omitempty"`
	*ChatResponse
}

// handleChatWS runs chat turns over a websocket, streaming each thinking
// step as the assistant works instead of delivering them all at the end.
// The client sends chatRequest frames and receives wsEvent frames.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.SessionID == "" || req.Message == "" {
			_ = conn.WriteJSON(wsEvent{Type: "error", Step: "session_id and message are required"})
			continue
		}

		// Steps stream from the turn's own goroutine, so writes here never
		// interleave with the final reply below.
		res := s.loop.Converse(r.Context(), req.SessionID, req.Message, func(step string) {
			_ = conn.WriteJSON(wsEvent{Type: "thinking", Step: step})
		})

		err = conn.WriteJSON(wsEvent{
			Type: "reply",
			ChatResponse: &ChatResponse{
				Reply:               res.Reply,
				OfferDetails:        res.OfferDetails,
				CurrentContextOffer: s.sessions.GetOrCreate(req.SessionID).BestOffer(),
				ThinkingSteps:       res.ThinkingSteps,
				SearchResults:       res.SearchResults,
				TriggerCheckout:     res.TriggerCheckout,
			},
		})
		if err != nil {
			return
		}
	}
}
