// Package agent runs the model and tool orchestration behind the shopping
// assistant.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/schema"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/tools"
)

const (
	errorReply    = "I encountered a thinking error. Please try again."
	fallbackReply = "I'm not sure how to help."
)

// StepFunc receives a progress line each time the assistant starts a tool
// call, for live display in streaming clients.
type StepFunc func(step string)

// TurnResult is everything one user turn produced. NewMessages holds only
// the messages appended during this turn, ready to be committed to session
// history; it is empty when the turn failed before producing anything
// durable.
type TurnResult struct {
	Reply           string
	NewMessages     []schema.Message
	ThinkingSteps   []string
	SearchResults   []catalog.Summary
	OfferDetails    *catalog.Offer
	TriggerCheckout bool
}

// Orchestrator drives the bounded reasoning loop: ask the model, run the
// tools it requests, feed results back, repeat until it answers in plain
// text or the round budget runs out.
type Orchestrator struct {
	provider  schema.LLMProvider
	registry  *tools.Registry
	opts      schema.ChatOptions
	maxRounds int
	log       *slog.Logger
}

func NewOrchestrator(provider schema.LLMProvider, registry *tools.Registry, opts schema.ChatOptions, maxRounds int, log *slog.Logger) *Orchestrator {
	if maxRounds <= 0 {
		maxRounds = 10
	}
	return &Orchestrator{
		provider:  provider,
		registry:  registry,
		opts:      opts,
		maxRounds: maxRounds,
		log:       log,
	}
}

// RunTurn processes one user message against the given history. onStep may
// be nil. A provider failure aborts the turn: the result carries the fixed
// apology and no new messages, so nothing is committed to the session.
func (o *Orchestrator) RunTurn(ctx context.Context, history schema.Messages, userMessage string, onStep StepFunc) TurnResult {
	working := schema.NewMessages()
	working.AddSystem(systemPrompt)
	working.Add(history.Messages...)
	turnStart := working.Len()
	working.AddUser(userMessage)

	var (
		state turnState
		steps []string
		reply string
	)
	emit := func(step string) {
		steps = append(steps, step)
		if onStep != nil {
			onStep(step)
		}
	}

	defs := o.registry.Definitions()
	for round := 1; round <= o.maxRounds; round++ {
		resp, err := o.provider.Chat(ctx, working, defs, o.opts)
		if err != nil {
			o.log.Error("model invocation failed", "round", round, "err", err)
			return TurnResult{Reply: errorReply}
		}

		if len(resp.ToolCalls) == 0 {
			reply = resp.Text()
			working.AddAssistant(resp.Content, nil)
			break
		}

		calls := make([]schema.ToolCall, len(resp.ToolCalls))
		for i, tc := range resp.ToolCalls {
			calls[i] = schema.ToolCall{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments}
		}
		working.AddAssistant(resp.Content, calls)

		// Tool calls run strictly in the order the model emitted them:
		// later calls in a batch may depend on earlier results.
		for _, call := range resp.ToolCalls {
			emit(fmt.Sprintf("🔍 Executing **%s**...", call.Name))
			result := o.registry.Dispatch(ctx, call.Name, call.Arguments)
			state.apply(call.Name, result)
			working.AddToolResult(call.ID, call.Name, marshalResult(result))
		}
	}

	if reply == "" {
		// Round budget exhausted. Fall back to whatever the model last
		// said rather than hanging or erroring.
		reply = lastAssistantText(working)
	}
	if reply == "" {
		reply = fallbackReply
	}

	return TurnResult{
		Reply:           reply,
		NewMessages:     working.Messages[turnStart:],
		ThinkingSteps:   steps,
		SearchResults:   state.searchResults,
		OfferDetails:    state.offer,
		TriggerCheckout: state.triggerCheckout,
	}
}

func marshalResult(result map[string]any) string {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

func lastAssistantText(msgs schema.Messages) string {
	for i := len(msgs.Messages) - 1; i >= 0; i-- {
		m := msgs.Messages[i]
		if m.Role == "assistant" {
			if text := m.Text(); text != "" {
				return text
			}
		}
	}
	return ""
}
