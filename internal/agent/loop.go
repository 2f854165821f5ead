package agent

import (
	"context"
	"log/slog"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/bus"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/session"
)

// Loop binds the orchestrator to the session store and, optionally, the
// message bus. HTTP handlers and the CLI call Converse directly; chat
// channels go through Run.
type Loop struct {
	orch     *Orchestrator
	sessions session.Store
	bus      *bus.MessageBus
	log      *slog.Logger
}

func NewLoop(orch *Orchestrator, sessions session.Store, b *bus.MessageBus, log *slog.Logger) *Loop {
	return &Loop{orch: orch, sessions: sessions, bus: b, log: log}
}

// Converse runs one turn in the named session and commits its outcome: the
// turn's messages are appended to history and a newly resolved offer
// replaces the session's stored one. A failed turn commits nothing.
func (l *Loop) Converse(ctx context.Context, sessionID, message string, onStep StepFunc) TurnResult {
	sess := l.sessions.GetOrCreate(sessionID)
	res := l.orch.RunTurn(ctx, sess.History(), message, onStep)
	sess.Append(res.NewMessages...)
	if res.OfferDetails != nil {
		sess.SetBestOffer(*res.OfferDetails)
	}
	return res
}

// Run consumes inbound channel messages until ctx is cancelled. Each
// message runs in its own goroutine so a slow model call on one chat does
// not stall the others.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.bus.Inbound():
			go l.handle(ctx, msg)
		}
	}
}

func (l *Loop) handle(ctx context.Context, msg bus.InboundMessage) {
	l.log.Info("inbound message", "channel", msg.Channel, "session", msg.SessionID)
	res := l.Converse(ctx, msg.SessionID, msg.Text, nil)
	l.bus.PublishOutbound(bus.OutboundMessage{
		Channel: msg.Channel,
		ChatID:  msg.ChatID,
		Text:    res.Reply,
	})
}
