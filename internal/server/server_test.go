package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/agent"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/payment"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/schema"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/session"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/tools"
)

type scriptedProvider struct {
	responses []schema.LLMResponse
	calls     int
}

func (p *scriptedProvider) DefaultModel() string { return "scripted" }

func (p *scriptedProvider) Chat(context.Context, schema.Messages, []map[string]any, schema.ChatOptions) (schema.LLMResponse, error) {
	i := p.calls
	if i >= len(p.responses) {
		i = len(p.responses) - 1
	}
	p.calls++
	return p.responses[i], nil
}

type testEnv struct {
	server   *Server
	store    *session.MemoryStore
	handler  http.Handler
	provider *scriptedProvider
}

func newTestEnv(t *testing.T, gatewayURL string, responses ...schema.LLMResponse) *testEnv {
	t.Helper()
	log := slog.Default()

	cat, err := catalog.NewService(rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	payments := payment.NewClient(config.WorldpayConfig{
		BaseURL:        gatewayURL,
		Username:       "u",
		Password:       "p",
		MerchantEntity: "default",
	}, log)

	reg := tools.NewRegistry(
		&tools.SearchProductsTool{Catalog: cat},
		&tools.GetBestOfferTool{Catalog: cat},
		&tools.InitiateCheckoutTool{Catalog: cat},
		&tools.ProcessPaymentTool{Payments: payments},
	)
	provider := &scriptedProvider{responses: responses}
	orch := agent.NewOrchestrator(provider, reg, schema.ChatOptions{}, 10, log)
	store := session.NewMemoryStore()
	loop := agent.NewLoop(orch, store, nil, log)

	srv := New(config.ServerConfig{}, loop, cat, payments, store, log)
	return &testEnv{server: srv, store: store, handler: srv.Router(), provider: provider}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func text(s string) schema.LLMResponse {
	return schema.LLMResponse{Content: &s, FinishReason: "stop"}
}

func toolCall(name string, args map[string]any) schema.LLMResponse {
	return schema.LLMResponse{
		ToolCalls:    []schema.ToolCallRequest{{ID: "c1", Name: name, Arguments: args}},
		FinishReason: "tool_calls",
	}
}

func TestChatEndpointSearchFlow(t *testing.T) {
	env := newTestEnv(t, "http://unused.invalid",
		toolCall("search_products", map[string]any{"query": "running shoes", "max_price": 150.0}),
		text("Here are some great options under $150."),
	)

	rec := postJSON(t, env.handler, "/chat", chatRequest{SessionID: "s1", Message: "show me running shoes under $150"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Reply != "Here are some great options under $150." {
		t.Errorf("reply = %q", resp.Reply)
	}
	if len(resp.SearchResults) == 0 {
		t.Fatal("no search results")
	}
	for _, p := range resp.SearchResults {
		if p.Category != "shoes" || p.BasePrice > 150 {
			t.Errorf("bad result %+v", p)
		}
	}
	if len(resp.ThinkingSteps) != 1 || !strings.Contains(resp.ThinkingSteps[0], "search_products") {
		t.Errorf("thinking steps = %v", resp.ThinkingSteps)
	}
	if resp.TriggerCheckout {
		t.Error("unexpected checkout trigger")
	}
}

func TestChatEndpointOfferPersistsInSession(t *testing.T) {
	env := newTestEnv(t, "http://unused.invalid",
		toolCall("get_best_offer", map[string]any{"product_id": "ddia"}),
		text("Best price found."),
	)

	rec := postJSON(t, env.handler, "/chat", chatRequest{SessionID: "s1", Message: "best price on ddia?"})
	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.OfferDetails == nil || resp.OfferDetails.ProductID != "ddia" {
		t.Fatalf("offer = %+v", resp.OfferDetails)
	}
	if resp.CurrentContextOffer == nil || resp.CurrentContextOffer.ProductID != "ddia" {
		t.Errorf("context offer = %+v", resp.CurrentContextOffer)
	}
	if env.store.GetOrCreate("s1").BestOffer() == nil {
		t.Error("offer not stored in session")
	}
}

func TestChatEndpointValidation(t *testing.T) {
	env := newTestEnv(t, "http://unused.invalid", text("ok"))

	rec := postJSON(t, env.handler, "/chat", chatRequest{Message: "hi"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing session id: status = %d", rec.Code)
	}
	rec = postJSON(t, env.handler, "/chat", chatRequest{SessionID: "s1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing message: status = %d", rec.Code)
	}
}

func TestCheckoutWithoutOffer(t *testing.T) {
	env := newTestEnv(t, "http://unused.invalid", text("ok"))

	rec := postJSON(t, env.handler, "/checkout", checkoutRequest{
		SessionID:  "s1",
		CardType:   "Visa",
		CardNumber: "4444333322221111",
		CardExpiry: "12/29",
		CardCVC:    "123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("expected failure with no offer")
	}
	if resp.Message != "No active purchase found. Please start a new search." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCheckoutSuccessClearsOffer(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"outcome":"authorized"}`))
	}))
	defer gateway.Close()

	env := newTestEnv(t, gateway.URL, text("ok"))
	sess := env.store.GetOrCreate("s1")
	sess.SetBestOffer(catalog.Offer{
		Vendor:      "Zappos",
		ProductID:   "hoka_bondi",
		ProductName: "Hoka Bondi 9",
		Quantity:    1,
		TotalPrice:  174.99,
		FinalPrice:  174.99,
	})

	rec := postJSON(t, env.handler, "/checkout", checkoutRequest{
		SessionID:       "s1",
		CardType:        "Visa",
		CardNumber:      "4444 3333 2222 1111",
		CardExpiry:      "12/29",
		CardCVC:         "123",
		ShippingAddress: "1 Main St, Springfield",
	})
	var resp checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatalf("checkout failed: %q", resp.Message)
	}
	if resp.TransactionID == "" {
		t.Error("missing transaction id")
	}
	if !strings.Contains(resp.Message, "Order confirmed for **Hoka Bondi 9**") {
		t.Errorf("message = %q", resp.Message)
	}
	if sess.BestOffer() != nil {
		t.Error("offer not cleared after successful checkout")
	}
}

func TestCheckoutDeclineKeepsOffer(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"outcome":"refused"}`))
	}))
	defer gateway.Close()

	env := newTestEnv(t, gateway.URL, text("ok"))
	sess := env.store.GetOrCreate("s1")
	sess.SetBestOffer(catalog.Offer{ProductID: "sapiens", ProductName: "Sapiens", TotalPrice: 25.99})

	rec := postJSON(t, env.handler, "/checkout", checkoutRequest{
		SessionID:  "s1",
		CardType:   "Mastercard",
		CardNumber: "5555444433332222",
		CardExpiry: "01/28",
		CardCVC:    "999",
	})
	var resp checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Fatal("decline reported as success")
	}
	if sess.BestOffer() == nil {
		t.Error("offer cleared on decline; customer should be able to retry")
	}
}

func TestCatalogEndpoint(t *testing.T) {
	env := newTestEnv(t, "http://unused.invalid", text("ok"))

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	var resp struct {
		Products []catalog.Product `json:"products"`
		Total    int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Products) != 22 {
		t.Errorf("catalog size = %d, want 22", len(resp.Products))
	}
	if resp.Total != 22 {
		t.Errorf("total = %d, want 22", resp.Total)
	}
}

func TestHealthzOpenAndAPIKeyEnforced(t *testing.T) {
	env := newTestEnv(t, "http://unused.invalid", text("ok"))
	env.server.cfg.APIKey = "sekrit"
	handler := env.server.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated catalog status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("X-API-Key", "sekrit")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated catalog status = %d", rec.Code)
	}
}
