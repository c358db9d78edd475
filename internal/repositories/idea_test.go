package repositories

import (
	"context"
	"testing"

	"github.com/mxsolis/contentbot/internal/models"
)

func sampleIdea(title string) models.BilingualIdea {
	return models.BilingualIdea{
		"es": {
			Title:        title + " (es)",
			Script:       models.Script{Hook: "gancho", Body: "cuerpo", Closing: "cierre"},
			Hashtags:     "#uno #dos",
			VideoPrompts: []string{"prompt a", "prompt b"},
			SearchPrompt: "query",
			ImageURLs:    []string{"https://img.test/1.jpg"},
		},
		"en": {
			Title:    title + " (en)",
			Script:   models.Script{Hook: "hook", Body: "body", Closing: "closing"},
			Hashtags: "#one #two",
		},
	}
}

func TestIdeaRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Insert And Translations Round Trip", func(t *testing.T) {
		repo := NewIdeaRepository(newTestDB(t))

		id, err := repo.Insert(ctx, 1, "Fitness", sampleIdea("Idea"))
		if err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}
		if id == 0 {
			t.Fatal("expected a generated idea id")
		}

		got, err := repo.Translations(ctx, id)
		if err != nil {
			t.Fatalf("failed to load translations: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 translations, got %d", len(got))
		}

		es := got["es"]
		if es.Language != "es" {
			t.Errorf("expected language es, got %s", es.Language)
		}
		if es.Title != "Idea (es)" {
			t.Errorf("expected title Idea (es), got %s", es.Title)
		}
		if es.Script.Hook != "gancho" || es.Script.Closing != "cierre" {
			t.Errorf("script did not round trip: %+v", es.Script)
		}
		if len(es.VideoPrompts) != 2 || es.VideoPrompts[0] != "prompt a" {
			t.Errorf("video prompts did not round trip: %v", es.VideoPrompts)
		}
		if es.SearchPrompt != "query" {
			t.Errorf("expected search prompt query, got %s", es.SearchPrompt)
		}
		if len(es.ImageURLs) != 1 {
			t.Errorf("image urls did not round trip: %v", es.ImageURLs)
		}

		en := got["en"]
		if en.VideoPrompts != nil || en.ImageURLs != nil || en.VideoURLs != nil {
			t.Errorf("expected empty lists to come back nil, got %+v", en)
		}
		if en.SearchPrompt != "" {
			t.Errorf("expected empty search prompt, got %s", en.SearchPrompt)
		}
	})

	t.Run("Insert Is Atomic", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewIdeaRepository(db)

		// Translations insert in sorted language order (en before es), so
		// failing on es aborts the transaction halfway through.
		_, err := db.Exec(`
			CREATE TRIGGER reject_es BEFORE INSERT ON content_translations
			WHEN NEW.language = 'es'
			BEGIN SELECT RAISE(ABORT, 'simulated failure'); END
		`)
		if err != nil {
			t.Fatalf("failed to create trigger: %v", err)
		}

		if _, err := repo.Insert(ctx, 1, "Fitness", sampleIdea("x")); err == nil {
			t.Fatal("expected insert to fail")
		}

		for _, table := range []string{"content_ideas", "content_translations"} {
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
				t.Fatalf("failed to count %s: %v", table, err)
			}
			if count != 0 {
				t.Errorf("expected zero rows in %s after failed insert, got %d", table, count)
			}
		}
	})

	t.Run("Categories Distinct And Sorted", func(t *testing.T) {
		repo := NewIdeaRepository(newTestDB(t))

		for _, category := range []string{"Viajes", "Fitness", "Viajes"} {
			if _, err := repo.Insert(ctx, 1, category, sampleIdea("x")); err != nil {
				t.Fatalf("failed to insert idea: %v", err)
			}
		}
		// Other users' categories must not leak in.
		if _, err := repo.Insert(ctx, 2, "Cocina", sampleIdea("x")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}

		categories, err := repo.Categories(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list categories: %v", err)
		}
		if len(categories) != 2 || categories[0] != "Fitness" || categories[1] != "Viajes" {
			t.Errorf("expected [Fitness Viajes], got %v", categories)
		}

		count, err := repo.CountCategories(ctx, 1)
		if err != nil {
			t.Fatalf("failed to count categories: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 categories, got %d", count)
		}
	})

	t.Run("Ideas Newest First With Category Filter", func(t *testing.T) {
		repo := NewIdeaRepository(newTestDB(t))

		if _, err := repo.Insert(ctx, 1, "Fitness", sampleIdea("First")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}
		if _, err := repo.Insert(ctx, 1, "Fitness", sampleIdea("Second")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}
		if _, err := repo.Insert(ctx, 1, "Viajes", sampleIdea("Other")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}

		rows, err := repo.Ideas(ctx, 1, "Fitness", 50, 0)
		if err != nil {
			t.Fatalf("failed to list ideas: %v", err)
		}
		// Two ideas, two languages each.
		if len(rows) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(rows))
		}
		if rows[0].Title != "Second (en)" && rows[0].Title != "Second (es)" {
			t.Errorf("expected newest idea first, got %s", rows[0].Title)
		}
		for _, row := range rows {
			if row.Category != "Fitness" {
				t.Errorf("expected only Fitness rows, got %s", row.Category)
			}
		}

		all, err := repo.Ideas(ctx, 1, "", 50, 0)
		if err != nil {
			t.Fatalf("failed to list all ideas: %v", err)
		}
		if len(all) != 6 {
			t.Errorf("expected 6 rows without filter, got %d", len(all))
		}
	})

	t.Run("Summaries And CountIdeas Pagination", func(t *testing.T) {
		repo := NewIdeaRepository(newTestDB(t))

		for i := 0; i < 7; i++ {
			if _, err := repo.Insert(ctx, 1, "Fitness", sampleIdea("Idea")); err != nil {
				t.Fatalf("failed to insert idea: %v", err)
			}
		}

		total, err := repo.CountIdeas(ctx, 1, "Fitness")
		if err != nil {
			t.Fatalf("failed to count ideas: %v", err)
		}
		if total != 7 {
			t.Errorf("expected 7 ideas, got %d", total)
		}

		page0, err := repo.Summaries(ctx, 1, "Fitness", "es", 5, 0)
		if err != nil {
			t.Fatalf("failed to list summaries: %v", err)
		}
		if len(page0) != 5 {
			t.Errorf("expected 5 summaries on page 0, got %d", len(page0))
		}

		page1, err := repo.Summaries(ctx, 1, "Fitness", "es", 5, 5)
		if err != nil {
			t.Fatalf("failed to list summaries: %v", err)
		}
		if len(page1) != 2 {
			t.Errorf("expected 2 summaries on page 1, got %d", len(page1))
		}

		for _, s := range page0 {
			if s.Title != "Idea (es)" {
				t.Errorf("expected primary-language title, got %s", s.Title)
			}
		}
	})

	t.Run("RenameCategory", func(t *testing.T) {
		repo := NewIdeaRepository(newTestDB(t))

		if _, err := repo.Insert(ctx, 1, "Fitnes", sampleIdea("x")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}
		if _, err := repo.Insert(ctx, 2, "Fitnes", sampleIdea("x")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}

		if err := repo.RenameCategory(ctx, 1, "Fitnes", "Fitness"); err != nil {
			t.Fatalf("failed to rename category: %v", err)
		}

		categories, err := repo.Categories(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list categories: %v", err)
		}
		if len(categories) != 1 || categories[0] != "Fitness" {
			t.Errorf("expected [Fitness], got %v", categories)
		}

		// The other user's category keeps its old name.
		other, err := repo.Categories(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list categories: %v", err)
		}
		if len(other) != 1 || other[0] != "Fitnes" {
			t.Errorf("expected rename to be scoped to one user, got %v", other)
		}
	})

	t.Run("DeleteCategory Cascades", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewIdeaRepository(db)

		keptID, err := repo.Insert(ctx, 1, "Viajes", sampleIdea("keep"))
		if err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}
		if _, err := repo.Insert(ctx, 1, "Fitness", sampleIdea("drop")); err != nil {
			t.Fatalf("failed to insert idea: %v", err)
		}

		if err := repo.DeleteCategory(ctx, 1, "Fitness"); err != nil {
			t.Fatalf("failed to delete category: %v", err)
		}

		count, err := repo.CountIdeas(ctx, 1, "Fitness")
		if err != nil {
			t.Fatalf("failed to count ideas: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 ideas after delete, got %d", count)
		}

		var orphans int
		err = db.QueryRow(`
			SELECT COUNT(*) FROM content_translations t
			LEFT JOIN content_ideas i ON i.id = t.idea_id
			WHERE i.id IS NULL
		`).Scan(&orphans)
		if err != nil {
			t.Fatalf("failed to count orphan translations: %v", err)
		}
		if orphans != 0 {
			t.Errorf("expected cascade to remove translations, found %d orphans", orphans)
		}

		kept, err := repo.Translations(ctx, keptID)
		if err != nil {
			t.Fatalf("failed to load kept idea: %v", err)
		}
		if len(kept) != 2 {
			t.Errorf("expected the other category to survive, got %d translations", len(kept))
		}
	})
}
