package channels

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/bus"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
)

const telegramMaxMessageLen = 4096

// TelegramChannel lets customers shop from Telegram via long polling.
type TelegramChannel struct {
	Base
	cfg config.TelegramConfig
	bot *tgbotapi.BotAPI
}

func NewTelegramChannel(cfg config.TelegramConfig, b *bus.MessageBus) *TelegramChannel {
	return &TelegramChannel{
		Base: NewBase("telegram", b),
		cfg:  cfg,
	}
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Start(ctx context.Context) error {
	if t.cfg.BotToken == "" {
		return fmt.Errorf("telegram: bot token not configured")
	}
	bot, err := tgbotapi.NewBotAPI(t.cfg.BotToken)
	if err != nil {
		return fmt.Errorf("telegram: create bot: %w", err)
	}
	t.bot = bot
	slog.Info("telegram: connected", "username", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(update)
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return ctx.Err()
		}
	}
}

func (t *TelegramChannel) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}
	t.HandleText(strconv.FormatInt(msg.Chat.ID, 10), msg.Text)
}

func (t *TelegramChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	if t.bot == nil {
		return fmt.Errorf("telegram: bot not running")
	}
	chatID, err := strconv.ParseInt(msg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: bad chat id %q: %w", msg.ChatID, err)
	}
	for _, chunk := range splitMessage(msg.Text, telegramMaxMessageLen) {
		out := tgbotapi.NewMessage(chatID, chunk)
		if _, err := t.bot.Send(out); err != nil {
			return fmt.Errorf("telegram: send: %w", err)
		}
	}
	return nil
}
