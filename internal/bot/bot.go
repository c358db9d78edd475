package bot

import (
	"context"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mxsolis/contentbot/internal/models"
	"github.com/mxsolis/contentbot/internal/shared"
)

// AccessGate is the slice of the user store the controller needs.
type AccessGate interface {
	HasAccess(ctx context.Context, userID int64) (bool, error)
}

// IdeaBrowser is the slice of the idea store the controller needs.
type IdeaBrowser interface {
	Categories(ctx context.Context, userID int64) ([]string, error)
	Summaries(ctx context.Context, userID int64, category, language string, limit, offset int) ([]models.IdeaSummary, error)
	CountIdeas(ctx context.Context, userID int64, category string) (int, error)
	Translations(ctx context.Context, ideaID int64) (models.BilingualIdea, error)
	RenameCategory(ctx context.Context, userID int64, oldName, newName string) error
	DeleteCategory(ctx context.Context, userID int64, category string) error
}

// Pipeline is the generation entry point the controller calls.
type Pipeline interface {
	GenerateAndSave(ctx context.Context, userID int64, category string) (models.BilingualIdea, error)
}

// Bot wires the Telegram update stream to the menu handlers.
type Bot struct {
	api       *tgbotapi.BotAPI
	access    AccessGate
	ideas     IdeaBrowser
	pipeline  Pipeline
	sessions  *SessionStore
	languages []string
	logger    *log.Logger
}

// Opts contains the dependencies for a Bot.
type Opts struct {
	API       *tgbotapi.BotAPI
	Access    AccessGate
	Ideas     IdeaBrowser
	Pipeline  Pipeline
	Sessions  *SessionStore
	Languages []string
	Logger    *log.Logger
}

// NewBot creates a Bot with the provided dependencies.
func NewBot(opts Opts) *Bot {
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore()
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"es", "en"}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Bot{
		api:       opts.API,
		access:    opts.Access,
		ideas:     opts.Ideas,
		pipeline:  opts.Pipeline,
		sessions:  opts.Sessions,
		languages: opts.Languages,
		logger:    opts.Logger,
	}
}

// Run long-polls for updates and dispatches them sequentially until the
// context is cancelled. Sequential handling keeps the per-user conversation
// state free of races.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30

	updates := b.api.GetUpdatesChan(cfg)
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// primaryLanguage is the language used for list titles and page names.
func (b *Bot) primaryLanguage() string {
	return b.languages[0]
}

func (b *Bot) send(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", "chat", chatID, "error", err)
	}
}

// sendSequence delivers a rendered message sequence in order.
func (b *Bot) sendSequence(chatID int64, sequence []chatText) {
	for _, m := range sequence {
		msg := tgbotapi.NewMessage(chatID, m.text)
		if m.markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("failed to send message", "chat", chatID, "error", err)
		}
	}
}

// edit replaces a menu message in place, which keeps navigation from
// stacking one message per button press.
func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to edit message", "chat", chatID, "message", messageID, "error", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("failed to delete message", "chat", chatID, "message", messageID, "error", err)
	}
}

// allowed checks the allow-list; a store failure denies and is logged.
func (b *Bot) allowed(ctx context.Context, userID int64) bool {
	ok, err := b.access.HasAccess(ctx, userID)
	if err != nil {
		b.logger.Error("access check failed", "user", userID, "error", err)
		return false
	}
	return ok
}
