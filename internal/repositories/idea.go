package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mxsolis/contentbot/internal/models"
)

// IdeaRepository implements CRUD over ideas, their per-language translations
// and the derived category set.
type IdeaRepository struct {
	db *sql.DB
}

// NewIdeaRepository creates a new IdeaRepository with the given database connection
func NewIdeaRepository(db *sql.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

// Insert stores an idea and one translation row per language as a single
// transaction. If any translation insert fails nothing is committed.
// Returns the generated idea id.
func (r *IdeaRepository) Insert(ctx context.Context, userID int64, category string, translations models.BilingualIdea) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin insert idea", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "INSERT INTO content_ideas (user_id, category) VALUES (?, ?)", userID, category)
	if err != nil {
		return 0, storeErr("insert idea", err)
	}

	ideaID, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("insert idea", err)
	}

	// Deterministic language order keeps the failure point stable under test.
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		if err := insertTranslation(ctx, tx, ideaID, lang, translations[lang]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit insert idea", err)
	}

	return ideaID, nil
}

func insertTranslation(ctx context.Context, tx *sql.Tx, ideaID int64, lang string, t models.Translation) error {
	script, err := json.Marshal(t.Script)
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}

	query := `
		INSERT INTO content_translations (idea_id, language, title, content, hashtags, video_prompts, image_urls, video_urls, search_prompt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		ideaID,
		lang,
		t.Title,
		string(script),
		t.Hashtags,
		marshalList(t.VideoPrompts),
		marshalList(t.ImageURLs),
		marshalList(t.VideoURLs),
		nullString(t.SearchPrompt),
	)
	if err != nil {
		return storeErr("insert translation", err)
	}
	return nil
}

// Categories returns the distinct category names on a user's ideas, alphabetical.
func (r *IdeaRepository) Categories(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM content_ideas WHERE user_id = ? ORDER BY category", userID)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, storeErr("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}
	return categories, nil
}

// CountCategories returns the exact number of distinct categories for a user.
func (r *IdeaRepository) CountCategories(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT category) FROM content_ideas WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, storeErr("count categories", err)
	}
	return count, nil
}

// Ideas returns flattened (idea, translation) rows for a user, newest idea
// first, one row per language. An empty category applies no filter.
func (r *IdeaRepository) Ideas(ctx context.Context, userID int64, category string, limit, offset int) ([]models.IdeaRow, error) {
	query := `
		SELECT i.id, i.category, i.created_at, t.language, t.title, t.content, t.hashtags
		FROM content_ideas i
		JOIN content_translations t ON i.id = t.idea_id
		WHERE i.user_id = ?
	`
	args := []any{userID}
	if category != "" {
		query += " AND i.category = ?"
		args = append(args, category)
	}
	query += " ORDER BY i.created_at DESC, i.id DESC, t.language LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list ideas", err)
	}
	defer rows.Close()

	var out []models.IdeaRow
	for rows.Next() {
		var (
			row     models.IdeaRow
			content string
		)
		if err := rows.Scan(&row.IdeaID, &row.Category, &row.CreatedAt, &row.Language, &row.Title, &content, &row.Hashtags); err != nil {
			return nil, storeErr("scan idea row", err)
		}
		if err := json.Unmarshal([]byte(content), &row.Script); err != nil {
			return nil, fmt.Errorf("unmarshal script for idea %d: %w", row.IdeaID, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list ideas", err)
	}
	return out, nil
}

// Summaries returns one list entry per idea in a category, newest first,
// titled in the given language. Used by the idea browser.
func (r *IdeaRepository) Summaries(ctx context.Context, userID int64, category, language string, limit, offset int) ([]models.IdeaSummary, error) {
	query := `
		SELECT i.id, t.title, i.created_at
		FROM content_ideas i
		JOIN content_translations t ON i.id = t.idea_id AND t.language = ?
		WHERE i.user_id = ? AND i.category = ?
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, language, userID, category, limit, offset)
	if err != nil {
		return nil, storeErr("list idea summaries", err)
	}
	defer rows.Close()

	var out []models.IdeaSummary
	for rows.Next() {
		var s models.IdeaSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, storeErr("scan idea summary", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list idea summaries", err)
	}
	return out, nil
}

// CountIdeas returns the exact number of ideas a user has in a category.
// An empty category counts across all categories.
func (r *IdeaRepository) CountIdeas(ctx context.Context, userID int64, category string) (int, error) {
	query := "SELECT COUNT(*) FROM content_ideas WHERE user_id = ?"
	args := []any{userID}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, storeErr("count ideas", err)
	}
	return count, nil
}

// RenameCategory bulk-renames a user's category. No-op when old is absent.
func (r *IdeaRepository) RenameCategory(ctx context.Context, userID int64, oldName, newName string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE content_ideas SET category = ? WHERE user_id = ? AND category = ?", newName, userID, oldName)
	if err != nil {
		return storeErr("rename category", err)
	}
	return nil
}

// DeleteCategory removes every idea under a user's category; the schema
// cascades the delete to the translations.
func (r *IdeaRepository) DeleteCategory(ctx context.Context, userID int64, category string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM content_ideas WHERE user_id = ? AND category = ?", userID, category)
	if err != nil {
		return storeErr("delete category", err)
	}
	return nil
}

// Translations returns all stored translations for an idea keyed by language.
func (r *IdeaRepository) Translations(ctx context.Context, ideaID int64) (models.BilingualIdea, error) {
	query := `
		SELECT language, title, content, hashtags, video_prompts, image_urls, video_urls, search_prompt
		FROM content_translations
		WHERE idea_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, ideaID)
	if err != nil {
		return nil, storeErr("get translations", err)
	}
	defer rows.Close()

	out := models.BilingualIdea{}
	for rows.Next() {
		var (
			t                       models.Translation
			content                 string
			prompts, images, videos sql.NullString
			searchPrompt            sql.NullString
		)
		if err := rows.Scan(&t.Language, &t.Title, &content, &t.Hashtags, &prompts, &images, &videos, &searchPrompt); err != nil {
			return nil, storeErr("scan translation", err)
		}
		if err := json.Unmarshal([]byte(content), &t.Script); err != nil {
			return nil, fmt.Errorf("unmarshal script for idea %d: %w", ideaID, err)
		}
		t.VideoPrompts = unmarshalList(prompts)
		t.ImageURLs = unmarshalList(images)
		t.VideoURLs = unmarshalList(videos)
		t.SearchPrompt = searchPrompt.String
		out[t.Language] = t
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("get translations", err)
	}
	return out, nil
}

// marshalList JSON-encodes a string list, storing NULL for empty lists.
func marshalList(list []string) any {
	if len(list) == 0 {
		return nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return string(data)
}

// unmarshalList decodes a JSON list column, tolerating NULL.
func unmarshalList(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(v.String), &list); err != nil {
		return nil
	}
	return list
}

// nullString stores NULL instead of an empty string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
