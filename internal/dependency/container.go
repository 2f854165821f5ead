// Package dependency wires the application services using go.uber.org/dig.
package dependency

import (
	"fmt"
	"log/slog"
	"math/rand"

	"go.uber.org/dig"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/agent"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/bus"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/channels"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/janitor"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/logger"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/payment"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/providers"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/schema"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/server"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/session"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/tools"
)

// Container holds the resolved service singletons. Callers use the typed
// getters; they never need to import dig directly.
type Container struct {
	log      *slog.Logger
	loop     *agent.Loop
	msgBus   *bus.MessageBus
	manager  *channels.Manager
	janitor  *janitor.Janitor
	server   *server.Server
	sessions *session.MemoryStore
}

func (c *Container) Logger() *slog.Logger           { return c.log }
func (c *Container) AgentLoop() *agent.Loop         { return c.loop }
func (c *Container) MessageBus() *bus.MessageBus    { return c.msgBus }
func (c *Container) Channels() *channels.Manager    { return c.manager }
func (c *Container) Janitor() *janitor.Janitor      { return c.janitor }
func (c *Container) Server() *server.Server         { return c.server }
func (c *Container) Sessions() *session.MemoryStore { return c.sessions }

// New builds and wires all services from cfg.
func New(cfg config.Config) (*Container, error) {
	d := dig.New()

	constructors := []any{
		func() config.Config { return cfg },
		newLogger,
		newCatalog,
		newPayments,
		newProvider,
		newRegistry,
		newMessageBus,
		newSessionStore,
		func(m *session.MemoryStore) session.Store { return m },
		newOrchestrator,
		newLoop,
		newChannelManager,
		newJanitor,
		newServer,
	}
	for _, ctor := range constructors {
		if err := d.Provide(ctor); err != nil {
			return nil, fmt.Errorf("provide %T: %w", ctor, err)
		}
	}

	c := &Container{}
	err := d.Invoke(func(
		log *slog.Logger,
		loop *agent.Loop,
		b *bus.MessageBus,
		m *channels.Manager,
		j *janitor.Janitor,
		srv *server.Server,
		store *session.MemoryStore,
	) {
		c.log = log
		c.loop = loop
		c.msgBus = b
		c.manager = m
		c.janitor = j
		c.server = srv
		c.sessions = store
	})
	if err != nil {
		return nil, fmt.Errorf("resolve container: %w", err)
	}
	return c, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level)
}

func newCatalog() (*catalog.Service, error) {
	return catalog.NewService(rand.New(rand.NewSource(rand.Int63())))
}

func newPayments(cfg config.Config, log *slog.Logger) *payment.Client {
	return payment.NewClient(cfg.Worldpay, log)
}

func newProvider(cfg config.Config) schema.LLMProvider {
	return providers.NewOpenAIProvider(cfg.Agent.APIKey, cfg.Agent.BaseURL, cfg.Agent.Model)
}

func newRegistry(cat *catalog.Service, payments *payment.Client) *tools.Registry {
	return tools.NewRegistry(
		&tools.SearchProductsTool{Catalog: cat},
		&tools.GetBestOfferTool{Catalog: cat},
		&tools.InitiateCheckoutTool{Catalog: cat},
		&tools.ProcessPaymentTool{Payments: payments},
	)
}

func newMessageBus() *bus.MessageBus {
	return bus.NewMessageBus(100)
}

func newSessionStore() *session.MemoryStore {
	return session.NewMemoryStore()
}

func newOrchestrator(cfg config.Config, provider schema.LLMProvider, reg *tools.Registry, log *slog.Logger) *agent.Orchestrator {
	opts := schema.NewChatOptions(cfg.Agent.Model, cfg.Agent.MaxTokens, cfg.Agent.Temperature)
	return agent.NewOrchestrator(provider, reg, opts, cfg.Agent.MaxRounds, log)
}

func newLoop(orch *agent.Orchestrator, store session.Store, b *bus.MessageBus, log *slog.Logger) *agent.Loop {
	return agent.NewLoop(orch, store, b, log)
}

func newChannelManager(cfg config.Config, b *bus.MessageBus) *channels.Manager {
	return channels.NewManager(cfg.Channels, b)
}

func newJanitor(cfg config.Config, store *session.MemoryStore, log *slog.Logger) *janitor.Janitor {
	return janitor.New(store, cfg.Sessions, log)
}

func newServer(cfg config.Config, loop *agent.Loop, cat *catalog.Service, payments *payment.Client, store session.Store, log *slog.Logger) *server.Server {
	return server.New(cfg.Server, loop, cat, payments, store, log)
}
