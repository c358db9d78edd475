package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	deniedText   = "⛔ No tienes acceso a este bot."
	mainMenuText = "👋 ¡Bienvenido! ¿Qué quieres hacer?"
	helpText     = "Comandos disponibles:\n" +
		"/start — menú principal\n" +
		"/generate — generar una idea de contenido\n" +
		"/help — esta ayuda\n\n" +
		"Las categorías se crean desde el menú y las ideas se generan en español e inglés."
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.allowed(ctx, userID) {
		b.logger.Warn("denied command from unknown user", "user", userID, "command", msg.Command())
		b.send(chatID, deniedText, nil)
		return
	}

	switch msg.Command() {
	case "start":
		b.sessions.Clear(userID)
		kb := mainMenuKeyboard()
		b.send(chatID, mainMenuText, &kb)
	case "generate":
		b.sendGeneratePicker(ctx, chatID, userID)
	case "help":
		b.send(chatID, helpText, nil)
	default:
		b.send(chatID, "Comando desconocido. Usa /help.", nil)
	}
}

func (b *Bot) sendGeneratePicker(ctx context.Context, chatID, userID int64) {
	categories, err := b.ideas.Categories(ctx, userID)
	if err != nil {
		b.logger.Error("failed to list categories", "user", userID, "error", err)
		b.send(chatID, "⚠️ No pude leer tus categorías. Inténtalo de nuevo.", nil)
		return
	}
	if len(categories) == 0 {
		kb := backKeyboard(Token{Action: ActionManageCategories})
		b.send(chatID, "No tienes categorías todavía. Crea una primero.", &kb)
		return
	}
	kb := generatePickerKeyboard(categories)
	b.send(chatID, "💡 ¿En qué categoría quieres generar una idea?", &kb)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Stop the client-side spinner regardless of what happens next.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", "error", err)
	}

	if cb.Message == nil {
		return
	}
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	if !b.allowed(ctx, userID) {
		b.logger.Warn("denied callback from unknown user", "user", userID)
		b.edit(chatID, messageID, deniedText, nil)
		return
	}

	token, err := DecodeToken(cb.Data)
	if err != nil {
		b.logger.Warn("dropping malformed callback", "user", userID, "error", err)
		return
	}

	switch token.Action {
	case ActionMainMenu:
		b.sessions.Clear(userID)
		kb := mainMenuKeyboard()
		b.edit(chatID, messageID, mainMenuText, &kb)

	case ActionManageCategories:
		kb := manageKeyboard()
		b.edit(chatID, messageID, "📂 Gestión de categorías:", &kb)

	case ActionAddCategory:
		b.sessions.Set(userID, State{Kind: StateAwaitingNewCategory})
		b.edit(chatID, messageID, "✏️ Envíame el nombre de la nueva categoría:", nil)

	case ActionListCategories:
		b.showCategoryList(ctx, chatID, messageID, userID, token.Page)

	case ActionViewCategory:
		b.showCategoryDetail(ctx, chatID, messageID, userID, token.Category)

	case ActionListIdeas:
		b.showIdeaList(ctx, chatID, messageID, userID, token.Category, token.Page)

	case ActionShowIdea:
		b.showIdea(ctx, chatID, messageID, userID, token)

	case ActionRenameCategory:
		b.sessions.Set(userID, State{Kind: StateAwaitingRename, OldCategory: token.Category})
		b.edit(chatID, messageID, fmt.Sprintf("✏️ Envíame el nuevo nombre para '%s':", token.Category), nil)

	case ActionDeleteCategory:
		kb := confirmDeleteKeyboard(token.Category)
		text := fmt.Sprintf("🗑 ¿Eliminar la categoría '%s' y todas sus ideas?", token.Category)
		b.edit(chatID, messageID, text, &kb)

	case ActionConfirmDelete:
		b.deleteCategory(ctx, chatID, messageID, userID, token.Category)

	case ActionGeneratePicker:
		b.showGeneratePicker(ctx, chatID, messageID, userID)

	case ActionGenerate:
		b.generateIdea(ctx, chatID, messageID, userID, token.Category)
	}
}

func (b *Bot) showCategoryList(ctx context.Context, chatID int64, messageID int, userID int64, page int) {
	categories, err := b.ideas.Categories(ctx, userID)
	if err != nil {
		b.logger.Error("failed to list categories", "user", userID, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude leer tus categorías. Inténtalo de nuevo.", nil)
		return
	}
	if len(categories) == 0 {
		kb := backKeyboard(Token{Action: ActionManageCategories})
		b.edit(chatID, messageID, "No tienes categorías todavía.", &kb)
		return
	}

	kb := categoryListKeyboard(categories, page)
	text := fmt.Sprintf("📋 Tus categorías (%d):", len(categories))
	b.edit(chatID, messageID, text, &kb)
}

func (b *Bot) showCategoryDetail(ctx context.Context, chatID int64, messageID int, userID int64, category string) {
	total, err := b.ideas.CountIdeas(ctx, userID, category)
	if err != nil {
		b.logger.Error("failed to count ideas", "user", userID, "category", category, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude leer la categoría. Inténtalo de nuevo.", nil)
		return
	}

	kb := categoryDetailKeyboard(category)
	text := fmt.Sprintf("📂 Categoría: %s\nIdeas guardadas: %d", category, total)
	b.edit(chatID, messageID, text, &kb)
}

func (b *Bot) showIdeaList(ctx context.Context, chatID int64, messageID int, userID int64, category string, page int) {
	total, err := b.ideas.CountIdeas(ctx, userID, category)
	if err != nil {
		b.logger.Error("failed to count ideas", "user", userID, "category", category, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude leer las ideas. Inténtalo de nuevo.", nil)
		return
	}
	if total == 0 {
		kb := backKeyboard(Token{Action: ActionViewCategory, Category: category})
		b.edit(chatID, messageID, fmt.Sprintf("No hay ideas en '%s' todavía.", category), &kb)
		return
	}

	summaries, err := b.ideas.Summaries(ctx, userID, category, b.primaryLanguage(), pageSize, page*pageSize)
	if err != nil {
		b.logger.Error("failed to list ideas", "user", userID, "category", category, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude leer las ideas. Inténtalo de nuevo.", nil)
		return
	}

	kb := ideaListKeyboard(category, page, summaries, total)
	text := fmt.Sprintf("📄 Ideas en '%s' (%d):", category, total)
	b.edit(chatID, messageID, text, &kb)
}

func (b *Bot) showIdea(ctx context.Context, chatID int64, messageID int, userID int64, token Token) {
	idea, err := b.ideas.Translations(ctx, token.IdeaID)
	if err != nil {
		b.logger.Error("failed to load idea", "idea", token.IdeaID, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude leer la idea. Inténtalo de nuevo.", nil)
		return
	}
	if len(idea) == 0 {
		kb := backKeyboard(Token{Action: ActionListIdeas, Category: token.Category})
		b.edit(chatID, messageID, "Esa idea ya no existe.", &kb)
		return
	}

	kb := backKeyboard(Token{Action: ActionListIdeas, Category: token.Category, Page: token.Page})
	b.edit(chatID, messageID, "📝 Aquí está tu idea:", &kb)
	b.sendSequence(chatID, storedIdeaMessages(idea, b.languages))
}

func (b *Bot) deleteCategory(ctx context.Context, chatID int64, messageID int, userID int64, category string) {
	if err := b.ideas.DeleteCategory(ctx, userID, category); err != nil {
		b.logger.Error("failed to delete category", "user", userID, "category", category, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude eliminar la categoría. Inténtalo de nuevo.", nil)
		return
	}
	b.logger.Info("category deleted", "user", userID, "category", category)
	kb := backKeyboard(Token{Action: ActionListCategories})
	b.edit(chatID, messageID, fmt.Sprintf("🗑 Categoría '%s' eliminada.", category), &kb)
}

func (b *Bot) showGeneratePicker(ctx context.Context, chatID int64, messageID int, userID int64) {
	categories, err := b.ideas.Categories(ctx, userID)
	if err != nil {
		b.logger.Error("failed to list categories", "user", userID, "error", err)
		b.edit(chatID, messageID, "⚠️ No pude leer tus categorías. Inténtalo de nuevo.", nil)
		return
	}
	if len(categories) == 0 {
		kb := backKeyboard(Token{Action: ActionManageCategories})
		b.edit(chatID, messageID, "No tienes categorías todavía. Crea una primero.", &kb)
		return
	}
	kb := generatePickerKeyboard(categories)
	b.edit(chatID, messageID, "💡 ¿En qué categoría quieres generar una idea?", &kb)
}

// generateIdea runs the pipeline behind a placeholder message: the picker is
// removed, the placeholder shows progress, and on failure the placeholder is
// edited in place so the chat never ends on silence.
func (b *Bot) generateIdea(ctx context.Context, chatID int64, messageID int, userID int64, category string) {
	b.deleteMessage(chatID, messageID)

	placeholder := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏳ Generando una idea para '%s'...", category))
	sent, err := b.api.Send(placeholder)
	if err != nil {
		b.logger.Error("failed to send placeholder", "chat", chatID, "error", err)
		return
	}

	idea, err := b.pipeline.GenerateAndSave(ctx, userID, category)
	if err != nil {
		b.logger.Error("generation failed", "user", userID, "category", category, "error", err)
		b.edit(chatID, sent.MessageID, "❌ No pude generar la idea. Inténtalo de nuevo.", nil)
		return
	}

	b.deleteMessage(chatID, sent.MessageID)
	b.sendSequence(chatID, generatedIdeaMessages(category, idea, b.languages))
	kb := mainMenuKeyboard()
	b.send(chatID, "✅ Idea guardada. ¿Algo más?", &kb)
}

// handleText consumes the pending text-capture state, if any. Text arriving
// with no pending state is ignored.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	state, ok := b.sessions.Take(userID)
	if !ok {
		return
	}
	if !b.allowed(ctx, userID) {
		b.send(chatID, deniedText, nil)
		return
	}

	name := strings.TrimSpace(msg.Text)
	if name == "" {
		// Keep the window open for another try.
		b.sessions.Set(userID, state)
		b.send(chatID, "El nombre no puede estar vacío. Inténtalo de nuevo:", nil)
		return
	}

	switch state.Kind {
	case StateAwaitingNewCategory:
		// Categories exist through their ideas; naming one just points the
		// user at generation.
		kb := mainMenuKeyboard()
		text := fmt.Sprintf("✅ Categoría '%s' lista. Genera tu primera idea en ella con /generate.", name)
		b.send(chatID, text, &kb)

	case StateAwaitingRename:
		if err := b.ideas.RenameCategory(ctx, userID, state.OldCategory, name); err != nil {
			b.logger.Error("failed to rename category", "user", userID, "error", err)
			b.send(chatID, "⚠️ No pude renombrar la categoría. Inténtalo de nuevo.", nil)
			return
		}
		b.logger.Info("category renamed", "user", userID, "from", state.OldCategory, "to", name)
		kb := backKeyboard(Token{Action: ActionListCategories})
		b.send(chatID, fmt.Sprintf("✅ Categoría '%s' ahora se llama '%s'.", state.OldCategory, name), &kb)
	}
}
