// Package session keeps per-conversation state: the message history and the
// offer currently under discussion.
package session

import (
	"sync"
	"time"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/schema"
)

// Session is one customer's conversation. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	mu        sync.Mutex
	messages  schema.Messages
	bestOffer *catalog.Offer
	lastSeen  time.Time
}

func newSession(id string) *Session {
	return &Session{ID: id, lastSeen: time.Now()}
}

// History returns a snapshot of the conversation so far.
func (s *Session) History() schema.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.messages.Clone()
}

// Append adds msgs to the conversation.
func (s *Session) Append(msgs ...schema.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.messages.Add(msgs...)
}

// BestOffer returns the offer the customer last settled on, or nil.
func (s *Session) BestOffer() *catalog.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.bestOffer == nil {
		return nil
	}
	o := *s.bestOffer
	return &o
}

func (s *Session) SetBestOffer(o catalog.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.bestOffer = &o
}

// ClearBestOffer forgets the active offer, typically after a completed
// checkout.
func (s *Session) ClearBestOffer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.bestOffer = nil
}

// LastSeen reports when the session was last touched.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// touch must be called with mu held.
func (s *Session) touch() {
	s.lastSeen = time.Now()
}
