// Package bus decouples chat channels from the assistant. Channels publish
// inbound customer messages; the agent loop publishes outbound replies.
package bus

// InboundMessage is a customer message arriving from any channel.
type InboundMessage struct {
	Channel   string // "telegram", "slack", ...
	ChatID    string // channel-native conversation id
	SessionID string // key into the session store
	Text      string
}

// OutboundMessage is a reply addressed back to the channel it came from.
type OutboundMessage struct {
	Channel string
	ChatID  string
	Text    string
}

// MessageBus is a pair of buffered queues between channels and the agent.
type MessageBus struct {
	inbound  chan InboundMessage
	outbound chan OutboundMessage
}

func NewMessageBus(buffer int) *MessageBus {
	if buffer <= 0 {
		buffer = 64
	}
	return &MessageBus{
		inbound:  make(chan InboundMessage, buffer),
		outbound: make(chan OutboundMessage, buffer),
	}
}

func (b *MessageBus) PublishInbound(msg InboundMessage)   { b.inbound <- msg }
func (b *MessageBus) PublishOutbound(msg OutboundMessage) { b.outbound <- msg }

func (b *MessageBus) Inbound() <-chan InboundMessage   { return b.inbound }
func (b *MessageBus) Outbound() <-chan OutboundMessage { return b.outbound }
