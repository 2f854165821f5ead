package channels

import (
	"context"
	"log/slog"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/bus"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
)

// Manager owns the enabled channels and routes outbound replies to the
// channel each conversation came from.
type Manager struct {
	channels map[string]Channel
	b        *bus.MessageBus
}

// NewManager registers every channel enabled in cfg.
func NewManager(cfg config.ChannelsConfig, b *bus.MessageBus) *Manager {
	m := &Manager{
		channels: make(map[string]Channel),
		b:        b,
	}
	if cfg.Telegram.Enabled {
		ch := NewTelegramChannel(cfg.Telegram, b)
		m.channels[ch.Name()] = ch
		slog.Info("channel enabled", "name", ch.Name())
	}
	if cfg.Slack.Enabled {
		ch := NewSlackChannel(cfg.Slack, b)
		m.channels[ch.Name()] = ch
		slog.Info("channel enabled", "name", ch.Name())
	}
	return m
}

// EnabledChannels returns the names of all registered channels.
func (m *Manager) EnabledChannels() []string {
	names := make([]string, 0, len(m.channels))
	for n := range m.channels {
		names = append(names, n)
	}
	return names
}

// StartAll runs every channel and the outbound dispatcher until ctx is
// cancelled.
func (m *Manager) StartAll(ctx context.Context) error {
	go m.dispatchOutbound(ctx)

	for name, ch := range m.channels {
		go func(n string, c Channel) {
			slog.Info("starting channel", "name", n)
			if err := c.Start(ctx); err != nil && ctx.Err() == nil {
				slog.Error("channel exited with error", "name", n, "err", err)
			}
		}(name, ch)
	}

	<-ctx.Done()
	return ctx.Err()
}

func (m *Manager) dispatchOutbound(ctx context.Context) {
	for {
		select {
		case msg := <-m.b.Outbound():
			ch, ok := m.channels[msg.Channel]
			if !ok {
				slog.Debug("no channel for outbound message", "channel", msg.Channel)
				continue
			}
			if err := ch.Send(ctx, msg); err != nil {
				slog.Error("send error", "channel", msg.Channel, "err", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
