package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mxsolis/contentbot/internal/models"
)

func renderIdea() models.BilingualIdea {
	return models.BilingualIdea{
		"es": {
			Language:     "es",
			Title:        "Rutina exprés",
			Script:       models.Script{Hook: "¿Sin tiempo?", Body: "Tres ejercicios", Closing: "Guárdalo"},
			Hashtags:     "#fitness",
			VideoPrompts: []string{"persona entrenando", "toalla y pesas"},
			ImageURLs:    []string{"https://images.test/1.jpg"},
		},
		"en": {
			Language: "en",
			Title:    "Express routine",
			Script:   models.Script{Hook: "No time?", Body: "Three moves", Closing: "Save it"},
			Hashtags: "#fitness",
		},
	}
}

func TestRenderers(t *testing.T) {
	languages := []string{"es", "en"}

	t.Run("Stored Idea Spanish First", func(t *testing.T) {
		msgs := storedIdeaMessages(renderIdea(), languages)
		if len(msgs) == 0 {
			t.Fatal("expected messages")
		}

		var esIdx, enIdx = -1, -1
		for i, m := range msgs {
			if strings.Contains(m.text, "Rutina exprés") {
				esIdx = i
			}
			if strings.Contains(m.text, "Express routine") {
				enIdx = i
			}
		}
		if esIdx == -1 || enIdx == -1 {
			t.Fatal("expected both language blocks")
		}
		if esIdx > enIdx {
			t.Error("expected the Spanish block before the English one")
		}
	})

	t.Run("Stored Idea Message Shape", func(t *testing.T) {
		msgs := storedIdeaMessages(renderIdea(), languages)

		// es: content + hashtags + prompts header + 2 prompts; en: content + hashtags.
		if len(msgs) != 7 {
			t.Fatalf("expected 7 messages, got %d", len(msgs))
		}
		if !msgs[0].markdown {
			t.Error("expected the content block to use markdown")
		}
		if msgs[3].markdown || msgs[4].markdown {
			t.Error("expected raw prompt messages without markdown")
		}
		if msgs[3].text != "persona entrenando" {
			t.Errorf("expected one message per prompt, got %q", msgs[3].text)
		}
	})

	t.Run("Generated Idea Includes Media Links", func(t *testing.T) {
		msgs := generatedIdeaMessages("Fitness", renderIdea(), languages)

		var sawHeader, sawImage bool
		for _, m := range msgs {
			if strings.Contains(m.text, "Fitness - Español") {
				sawHeader = true
			}
			if strings.Contains(m.text, "https://images.test/1.jpg") {
				sawImage = true
			}
		}
		if !sawHeader {
			t.Error("expected a category header for the Spanish block")
		}
		if !sawImage {
			t.Error("expected a media link message")
		}
	})

	t.Run("Missing Language Skipped", func(t *testing.T) {
		idea := models.BilingualIdea{"es": renderIdea()["es"]}
		msgs := storedIdeaMessages(idea, languages)
		for _, m := range msgs {
			if strings.Contains(m.text, "Express routine") {
				t.Error("expected no English block")
			}
		}
	})
}

func TestKeyboards(t *testing.T) {
	categories := make([]string, 12)
	for i := range categories {
		categories[i] = fmt.Sprintf("Cat %02d", i)
	}

	t.Run("Category List First Page", func(t *testing.T) {
		kb := categoryListKeyboard(categories, 0)

		// 5 categories + nav row + back row.
		if len(kb.InlineKeyboard) != 7 {
			t.Fatalf("expected 7 rows, got %d", len(kb.InlineKeyboard))
		}

		nav := kb.InlineKeyboard[5]
		if len(nav) != 1 {
			t.Fatalf("expected only a next button, got %d buttons", len(nav))
		}
		token, err := DecodeToken(*nav[0].CallbackData)
		if err != nil {
			t.Fatalf("failed to decode nav token: %v", err)
		}
		if token.Action != ActionListCategories || token.Page != 1 {
			t.Errorf("expected next to page 1, got %+v", token)
		}
	})

	t.Run("Category List Last Page Exact", func(t *testing.T) {
		kb := categoryListKeyboard(categories, 2)

		// 2 remaining categories + nav row + back row.
		if len(kb.InlineKeyboard) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(kb.InlineKeyboard))
		}

		nav := kb.InlineKeyboard[2]
		if len(nav) != 1 {
			t.Fatalf("expected only a prev button, got %d buttons", len(nav))
		}
		token, err := DecodeToken(*nav[0].CallbackData)
		if err != nil {
			t.Fatalf("failed to decode nav token: %v", err)
		}
		if token.Action != ActionListCategories || token.Page != 1 {
			t.Errorf("expected prev to page 1, got %+v", token)
		}
	})

	t.Run("Category List Middle Page Has Both", func(t *testing.T) {
		kb := categoryListKeyboard(categories, 1)
		nav := kb.InlineKeyboard[5]
		if len(nav) != 2 {
			t.Fatalf("expected prev and next buttons, got %d", len(nav))
		}
	})

	t.Run("Category Buttons Carry The Name", func(t *testing.T) {
		kb := categoryListKeyboard([]string{"Ideas de viaje"}, 0)
		token, err := DecodeToken(*kb.InlineKeyboard[0][0].CallbackData)
		if err != nil {
			t.Fatalf("failed to decode token: %v", err)
		}
		if token.Action != ActionViewCategory || token.Category != "Ideas de viaje" {
			t.Errorf("unexpected token %+v", token)
		}
	})

	t.Run("Idea List Exact Count Boundary", func(t *testing.T) {
		summaries := make([]models.IdeaSummary, 5)
		for i := range summaries {
			summaries[i] = models.IdeaSummary{ID: int64(i + 1), Title: "Idea", CreatedAt: time.Now()}
		}

		// Exactly 10 ideas: page 1 is the last page, so no next button.
		kb := ideaListKeyboard("Fitness", 1, summaries, 10)

		nav := kb.InlineKeyboard[5]
		if len(nav) != 1 {
			t.Fatalf("expected only a prev button on the last exact page, got %d", len(nav))
		}
		token, err := DecodeToken(*nav[0].CallbackData)
		if err != nil {
			t.Fatalf("failed to decode nav token: %v", err)
		}
		if token.Action != ActionListIdeas || token.Page != 0 {
			t.Errorf("expected prev to page 0, got %+v", token)
		}
	})

	t.Run("Idea Buttons Reference The Idea", func(t *testing.T) {
		summaries := []models.IdeaSummary{{ID: 42, Title: "Idea", CreatedAt: time.Now()}}
		kb := ideaListKeyboard("Fitness", 0, summaries, 1)

		token, err := DecodeToken(*kb.InlineKeyboard[0][0].CallbackData)
		if err != nil {
			t.Fatalf("failed to decode token: %v", err)
		}
		if token.Action != ActionShowIdea || token.IdeaID != 42 || token.Category != "Fitness" {
			t.Errorf("unexpected token %+v", token)
		}

		// No nav row with a single idea.
		if len(kb.InlineKeyboard) != 2 {
			t.Errorf("expected idea row and back row only, got %d rows", len(kb.InlineKeyboard))
		}
	})
}
