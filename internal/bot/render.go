package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mxsolis/contentbot/internal/models"
)

// pageSize is the number of entries per page in category and idea lists.
const pageSize = 5

// chatText is one outbound message in a rendered sequence. Prompt and link
// messages carry model- or user-controlled text verbatim, so they are sent
// without Markdown parsing to avoid broken entities.
type chatText struct {
	text     string
	markdown bool
}

// chatLabels holds the per-language wording of the rendered idea sections.
type chatLabels struct {
	name, title, script, hook, body, closing string
	hashtags, prompts, images, videos        string
}

var chatLabelsByLanguage = map[string]chatLabels{
	"es": {
		name: "Español", title: "Título", script: "Guion",
		hook: "Gancho", body: "Cuerpo", closing: "Cierre",
		hashtags: "Hashtags", prompts: "Prompts para videos",
		images: "Imágenes sugeridas", videos: "Videos sugeridos",
	},
	"en": {
		name: "English", title: "Title", script: "Script",
		hook: "Hook", body: "Body", closing: "Closing",
		hashtags: "Hashtags", prompts: "Video prompts",
		images: "Suggested images", videos: "Suggested videos",
	},
}

func chatLabelsFor(lang string) chatLabels {
	if l, ok := chatLabelsByLanguage[lang]; ok {
		return l
	}
	l := chatLabelsByLanguage["en"]
	l.name = lang
	return l
}

// generatedIdeaMessages renders a freshly generated idea as the full message
// sequence: per language (in configured order) a content block, a hashtags
// block, one message per video prompt and one per media link.
func generatedIdeaMessages(category string, idea models.BilingualIdea, languages []string) []chatText {
	var out []chatText
	for _, lang := range languages {
		t, ok := idea[lang]
		if !ok {
			continue
		}
		l := chatLabelsFor(lang)

		var b strings.Builder
		fmt.Fprintf(&b, "*%s - %s*\n\n", category, l.name)
		fmt.Fprintf(&b, "*%s:* %s\n\n", l.title, t.Title)
		fmt.Fprintf(&b, "*%s:*\n", l.script)
		fmt.Fprintf(&b, "- %s: %s\n", l.hook, t.Script.Hook)
		fmt.Fprintf(&b, "- %s: %s\n", l.body, t.Script.Body)
		fmt.Fprintf(&b, "- %s: %s", l.closing, t.Script.Closing)
		out = append(out, chatText{text: b.String(), markdown: true})

		out = append(out, translationExtras(t, l)...)

		for _, u := range t.ImageURLs {
			out = append(out, chatText{text: fmt.Sprintf("%s: %s", l.images, u)})
		}
		for _, u := range t.VideoURLs {
			out = append(out, chatText{text: fmt.Sprintf("%s: %s", l.videos, u)})
		}
	}
	return out
}

// storedIdeaMessages renders a browsed idea: per language a compact content
// block, a hashtags block, then one message per video prompt.
func storedIdeaMessages(idea models.BilingualIdea, languages []string) []chatText {
	var out []chatText
	for _, lang := range languages {
		t, ok := idea[lang]
		if !ok {
			continue
		}
		l := chatLabelsFor(lang)

		var b strings.Builder
		fmt.Fprintf(&b, "*%s*\n\n", t.Title)
		fmt.Fprintf(&b, "*%s:* %s\n", l.hook, t.Script.Hook)
		fmt.Fprintf(&b, "*%s:* %s\n", l.body, t.Script.Body)
		fmt.Fprintf(&b, "*%s:* %s", l.closing, t.Script.Closing)
		out = append(out, chatText{text: b.String(), markdown: true})

		out = append(out, translationExtras(t, l)...)
	}
	return out
}

// translationExtras renders the hashtags block and the per-prompt messages
// shared by both idea renderings.
func translationExtras(t models.Translation, l chatLabels) []chatText {
	var out []chatText
	if t.Hashtags != "" {
		out = append(out, chatText{text: fmt.Sprintf("*%s (%s):*\n%s", l.hashtags, l.name, t.Hashtags), markdown: true})
	}
	if len(t.VideoPrompts) > 0 {
		out = append(out, chatText{text: fmt.Sprintf("%s (%s):", l.prompts, l.name)})
		for _, p := range t.VideoPrompts {
			out = append(out, chatText{text: p})
		}
	}
	return out
}

func button(label string, token Token) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, token.Encode())
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("📂 Gestionar categorías", Token{Action: ActionManageCategories})),
		tgbotapi.NewInlineKeyboardRow(button("💡 Generar ideas", Token{Action: ActionGeneratePicker})),
	)
}

func manageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("➕ Agregar categoría", Token{Action: ActionAddCategory})),
		tgbotapi.NewInlineKeyboardRow(button("📋 Listar categorías", Token{Action: ActionListCategories})),
		tgbotapi.NewInlineKeyboardRow(button("⬅️ Volver", Token{Action: ActionMainMenu})),
	)
}

// categoryListKeyboard pages the full category list. Navigation buttons
// appear only when the page they lead to actually exists.
func categoryListKeyboard(categories []string, page int) tgbotapi.InlineKeyboardMarkup {
	start := page * pageSize
	end := start + pageSize
	if start > len(categories) {
		start = len(categories)
	}
	if end > len(categories) {
		end = len(categories)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories[start:end] {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(c, Token{Action: ActionViewCategory, Category: c}),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, button("⬅️ Anterior", Token{Action: ActionListCategories, Page: page - 1}))
	}
	if end < len(categories) {
		nav = append(nav, button("Siguiente ➡️", Token{Action: ActionListCategories, Page: page + 1}))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Volver", Token{Action: ActionManageCategories})))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func categoryDetailKeyboard(category string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("📄 Ver ideas", Token{Action: ActionListIdeas, Category: category})),
		tgbotapi.NewInlineKeyboardRow(button("✏️ Renombrar", Token{Action: ActionRenameCategory, Category: category})),
		tgbotapi.NewInlineKeyboardRow(button("🗑 Eliminar", Token{Action: ActionDeleteCategory, Category: category})),
		tgbotapi.NewInlineKeyboardRow(button("⬅️ Volver", Token{Action: ActionListCategories})),
	)
}

func confirmDeleteKeyboard(category string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("✅ Sí, eliminar", Token{Action: ActionConfirmDelete, Category: category})),
		tgbotapi.NewInlineKeyboardRow(button("❌ No, cancelar", Token{Action: ActionViewCategory, Category: category})),
	)
}

// ideaListKeyboard pages a category's ideas. total is the exact idea count,
// so the next button appears iff rows remain past this page.
func ideaListKeyboard(category string, page int, summaries []models.IdeaSummary, total int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range summaries {
		label := fmt.Sprintf("%s — %s", s.Title, s.CreatedAt.Format("2006-01-02"))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(label, Token{Action: ActionShowIdea, Category: category, Page: page, IdeaID: s.ID}),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, button("⬅️ Anterior", Token{Action: ActionListIdeas, Category: category, Page: page - 1}))
	}
	if (page+1)*pageSize < total {
		nav = append(nav, button("Siguiente ➡️", Token{Action: ActionListIdeas, Category: category, Page: page + 1}))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Volver", Token{Action: ActionViewCategory, Category: category})))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func generatePickerKeyboard(categories []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(c, Token{Action: ActionGenerate, Category: c}),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Volver", Token{Action: ActionMainMenu})))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func backKeyboard(token Token) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("⬅️ Volver", token)),
	)
}
