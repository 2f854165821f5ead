package channels

import (
	"context"
	"fmt"
	"log/slog"

	slackgo "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/bus"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
)

// SlackChannel lets customers shop from Slack via Socket Mode.
type SlackChannel struct {
	Base
	cfg       config.SlackConfig
	webClient *slackgo.Client
	smClient  *socketmode.Client
	botUserID string
}

func NewSlackChannel(cfg config.SlackConfig, b *bus.MessageBus) *SlackChannel {
	return &SlackChannel{
		Base: NewBase("slack", b),
		cfg:  cfg,
	}
}

func (s *SlackChannel) Name() string { return "slack" }

func (s *SlackChannel) Start(ctx context.Context) error {
	if s.cfg.BotToken == "" || s.cfg.AppToken == "" {
		return fmt.Errorf("slack: bot/app token not configured")
	}

	s.webClient = slackgo.New(s.cfg.BotToken,
		slackgo.OptionAppLevelToken(s.cfg.AppToken))

	if resp, err := s.webClient.AuthTestContext(ctx); err == nil {
		s.botUserID = resp.UserID
		slog.Info("slack: connected", "bot_user_id", s.botUserID)
	}

	s.smClient = socketmode.New(s.webClient)

	go s.smClient.RunContext(ctx) //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-s.smClient.Events:
			if !ok {
				return nil
			}
			s.handleEvent(evt)
		}
	}
}

func (s *SlackChannel) handleEvent(evt socketmode.Event) {
	if evt.Type != socketmode.EventTypeEventsAPI {
		return
	}
	s.smClient.Ack(*evt.Request)
	cb, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		return
	}
	s.handleInnerEvent(cb.InnerEvent)
}

func (s *SlackChannel) handleInnerEvent(inner slackevents.EventsAPIInnerEvent) {
	var userID, channel, text, subtype string
	switch ev := inner.Data.(type) {
	case *slackevents.MessageEvent:
		userID, channel, text, subtype = ev.User, ev.Channel, ev.Text, ev.SubType
	case *slackevents.AppMentionEvent:
		userID, channel, text = ev.User, ev.Channel, ev.Text
	case map[string]interface{}:
		// Older payloads arrive unparsed; read the fields by hand.
		userID, _ = ev["user"].(string)
		channel, _ = ev["channel"].(string)
		text, _ = ev["text"].(string)
		subtype, _ = ev["subtype"].(string)
	default:
		slog.Debug("slack: unhandled inner event", "type", inner.Type)
		return
	}

	if subtype != "" || userID == "" || channel == "" || text == "" {
		return
	}
	if userID == s.botUserID {
		return
	}

	s.HandleText(channel, text)
}

func (s *SlackChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	if s.webClient == nil {
		return fmt.Errorf("slack: client not running")
	}
	_, _, err := s.webClient.PostMessageContext(ctx, msg.ChatID,
		slackgo.MsgOptionText(msg.Text, false))
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}
