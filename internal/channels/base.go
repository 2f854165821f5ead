// Package channels connects chat platforms to the assistant through the
// message bus.
package channels

import (
	"context"
	"strings"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/bus"
)

// Channel is one chat platform. Start blocks until ctx is cancelled; Send
// delivers a reply back to the platform.
type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Send(ctx context.Context, msg bus.OutboundMessage) error
}

// Base holds the wiring shared by all channels.
type Base struct {
	channelName string
	b           *bus.MessageBus
}

func NewBase(name string, b *bus.MessageBus) Base {
	return Base{channelName: name, b: b}
}

// HandleText pushes a customer message onto the bus. The session id is
// namespaced by channel so a Telegram chat and a Slack chat with the same
// native id stay separate conversations.
func (b *Base) HandleText(chatID, text string) {
	b.b.PublishInbound(bus.InboundMessage{
		Channel:   b.channelName,
		ChatID:    chatID,
		SessionID: b.channelName + ":" + chatID,
		Text:      text,
	})
}

// splitMessage splits content into chunks that fit within maxLen,
// preferring newline breaks, then space breaks, then hard cut.
func splitMessage(content string, maxLen int) []string {
	if len(content) <= maxLen {
		return []string{content}
	}
	var chunks []string
	for len(content) > 0 {
		if len(content) <= maxLen {
			chunks = append(chunks, content)
			break
		}
		cut := content[:maxLen]
		pos := strings.LastIndex(cut, "\n")
		if pos <= 0 {
			pos = strings.LastIndex(cut, " ")
		}
		if pos <= 0 {
			pos = maxLen
		}
		chunks = append(chunks, content[:pos])
		content = strings.TrimLeft(content[pos:], " \t\n")
	}
	return chunks
}
