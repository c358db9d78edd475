// Notion workspace mirror implementation of [Publisher]
//
// Endpoints per https://developers.notion.com/reference
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mxsolis/contentbot/internal/models"
	"github.com/mxsolis/contentbot/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultNotionBaseURL = "https://api.notion.com"
	notionVersion        = "2022-06-28"

	// categoryProperty is the database property the category tag lands on.
	categoryProperty = "Área"
	pageIcon         = "📝"
)

// NotionService implements [Publisher] by creating one database page per
// generated idea. The page's block order is consumed by external tooling and
// is reproduced exactly on every publish.
type NotionService struct {
	databaseID string
	languages  []string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	schemaOnce sync.Once
	properties map[string]string // property name -> property type
	titleProp  string
}

// NewNotionService creates a Notion client authenticated with a static
// bearer token via [oauth2.NewClient]. An empty baseURL selects the public
// endpoint; tests pass an httptest server URL.
func NewNotionService(token, databaseID string, languages []string, baseURL string, logger *log.Logger) *NotionService {
	if baseURL == "" {
		baseURL = defaultNotionBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return &NotionService{
		databaseID: databaseID,
		languages:  languages,
		baseURL:    baseURL,
		httpClient: oauth2.NewClient(context.Background(), src),
		logger:     logger,
	}
}

// block is one Notion block object. The API is polymorphic enough that a
// typed struct per variant buys nothing over a shaped map.
type block = map[string]any

// CreateContentPage publishes one idea as a database page tagged with its
// category and the fixed page icon.
func (s *NotionService) CreateContentPage(ctx context.Context, idea models.BilingualIdea, category string) error {
	s.ensureSchema(ctx)

	payload := map[string]any{
		"parent":     map[string]any{"database_id": s.databaseID},
		"icon":       map[string]any{"type": "emoji", "emoji": pageIcon},
		"properties": s.pageProperties(idea, category),
		"children":   s.contentBlocks(idea),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		return fmt.Errorf("%w: status %d: %s", shared.ErrPublishFailed, resp.StatusCode, errBody.String())
	}

	return nil
}

// ensureSchema retrieves the target database's property map once, to learn
// the title property's name and the category property's type. Failures fall
// back to the conventional "Name" title property.
func (s *NotionService) ensureSchema(ctx context.Context) {
	s.schemaOnce.Do(func() {
		s.properties = map[string]string{}
		s.titleProp = "Name"

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/databases/"+s.databaseID, nil)
		if err != nil {
			return
		}
		req.Header.Set("Notion-Version", notionVersion)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.logger.Warn("failed to retrieve notion database schema", "error", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			s.logger.Warn("notion schema lookup returned non-success status", "status", resp.StatusCode)
			return
		}

		var db struct {
			Properties map[string]struct {
				Type string `json:"type"`
			} `json:"properties"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&db); err != nil {
			s.logger.Warn("failed to decode notion database schema", "error", err)
			return
		}

		for name, p := range db.Properties {
			s.properties[name] = p.Type
			if p.Type == "title" {
				s.titleProp = name
			}
		}
	})
}

// pageProperties builds the page's title and category properties. The
// category lands on the property type the target schema actually has.
func (s *NotionService) pageProperties(idea models.BilingualIdea, category string) map[string]any {
	title := fmt.Sprintf("Content for %s", category)
	if len(s.languages) > 0 {
		if t, ok := idea[s.languages[0]]; ok && t.Title != "" {
			title = t.Title
		}
	}

	properties := map[string]any{
		s.titleProp: map[string]any{
			"title": []any{textSpan(title, "", false, false)},
		},
	}

	switch s.properties[categoryProperty] {
	case "multi_select":
		properties[categoryProperty] = map[string]any{
			"multi_select": []any{map[string]any{"name": category}},
		}
	case "select":
		properties[categoryProperty] = map[string]any{
			"select": map[string]any{"name": category},
		}
	case "":
		// Property absent from the schema; nothing to tag.
	default:
		properties[categoryProperty] = map[string]any{
			"rich_text": []any{textSpan(category, "", false, false)},
		}
	}

	return properties
}

// sectionLabels holds the per-language headings. Unlisted languages fall
// back to the English set with a generic section header.
type sectionLabels struct {
	section, title, script, hook, body, closing string
	prompts, hashtags, images, videos, link     string
}

var labelsByLanguage = map[string]sectionLabels{
	"es": {
		section: "🇪🇸 Versión en Español", title: "🎯 Título", script: "🎬 Guion",
		hook: "🪝 Gancho", body: "📖 Cuerpo", closing: "🎯 Cierre",
		prompts: "🎥 Prompts de Video", hashtags: "🏷️ Hashtags",
		images: "🖼️ Imágenes sugeridas (Pexels)", videos: "🎬 Videos sugeridos (Pexels)",
		link: "Link directo",
	},
	"en": {
		section: "🇺🇸 English Version", title: "🎯 Title", script: "🎬 Script",
		hook: "🪝 Hook", body: "📖 Body", closing: "🎯 Closing",
		prompts: "🎥 Video Prompts", hashtags: "🏷️ Hashtags",
		images: "🖼️ Suggested images (Pexels)", videos: "🎬 Suggested videos (Pexels)",
		link: "Direct link",
	},
}

func labelsFor(lang string) sectionLabels {
	if l, ok := labelsByLanguage[lang]; ok {
		return l
	}
	l := labelsByLanguage["en"]
	l.section = fmt.Sprintf("Version: %s", lang)
	return l
}

// contentBlocks renders the full ordered block tree: document title, then
// one section per configured language.
func (s *NotionService) contentBlocks(idea models.BilingualIdea) []block {
	blocks := []block{heading(1, "📝 Guion de Contenido", false)}

	for _, lang := range s.languages {
		t, ok := idea[lang]
		if !ok {
			continue
		}
		blocks = append(blocks, s.languageSection(lang, t)...)
	}

	return blocks
}

// languageSection renders one language's blocks in the contract order:
// section heading, title, script paragraphs, video prompt bullets, hashtags,
// then image and video blocks each followed by a direct-link line.
func (s *NotionService) languageSection(lang string, t models.Translation) []block {
	l := labelsFor(lang)

	blocks := []block{
		heading(2, l.section, false),
		heading(3, fmt.Sprintf("%s: %s", l.title, t.Title), true),
		heading(3, l.script, false),
		labeledParagraph(l.hook+": ", t.Script.Hook),
		labeledParagraph(l.body+": ", t.Script.Body),
		labeledParagraph(l.closing+": ", t.Script.Closing),
	}

	if len(t.VideoPrompts) > 0 {
		blocks = append(blocks, heading(3, l.prompts, false))
		for i, prompt := range t.VideoPrompts {
			blocks = append(blocks, bulletItem(fmt.Sprintf("Video %d: %s", i+1, prompt)))
		}
	}

	if t.Hashtags != "" {
		blocks = append(blocks, heading(3, l.hashtags, false), codeParagraph(t.Hashtags, ""))
	}

	if len(t.ImageURLs) > 0 {
		blocks = append(blocks, heading(3, l.images, false))
		for _, u := range t.ImageURLs {
			blocks = append(blocks, mediaBlock("image", u), codeParagraph(fmt.Sprintf("%s: %s", l.link, u), u))
		}
	}

	if len(t.VideoURLs) > 0 {
		blocks = append(blocks, heading(3, l.videos, false))
		for _, u := range t.VideoURLs {
			blocks = append(blocks, mediaBlock("video", u), codeParagraph(fmt.Sprintf("%s: %s", l.link, u), u))
		}
	}

	return blocks
}

// textSpan builds one rich_text element. link and annotations are optional.
func textSpan(content, link string, bold, code bool) map[string]any {
	text := map[string]any{"content": content}
	if link != "" {
		text["link"] = map[string]any{"url": link}
	}

	span := map[string]any{"type": "text", "text": text}

	annotations := map[string]any{}
	if bold {
		annotations["bold"] = true
	}
	if code {
		annotations["code"] = true
	}
	if len(annotations) > 0 {
		span["annotations"] = annotations
	}

	return span
}

func heading(level int, content string, bold bool) block {
	key := fmt.Sprintf("heading_%d", level)
	return block{
		"object": "block",
		"type":   key,
		key:      map[string]any{"rich_text": []any{textSpan(content, "", bold, false)}},
	}
}

// labeledParagraph renders a bold label span followed by plain content.
func labeledParagraph(label, content string) block {
	return block{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": []any{textSpan(label, "", true, false), textSpan(content, "", false, false)},
		},
	}
}

// codeParagraph renders code-annotated text, optionally hyperlinked.
func codeParagraph(content, link string) block {
	return block{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": []any{textSpan(content, link, false, true)},
		},
	}
}

func bulletItem(content string) block {
	return block{
		"object": "block",
		"type":   "bulleted_list_item",
		"bulleted_list_item": map[string]any{
			"rich_text": []any{textSpan(content, "", false, false)},
		},
	}
}

// mediaBlock embeds an external image or video by URL.
func mediaBlock(kind, url string) block {
	return block{
		"object": "block",
		"type":   kind,
		kind: map[string]any{
			"type":     "external",
			"external": map[string]any{"url": url},
		},
	}
}
