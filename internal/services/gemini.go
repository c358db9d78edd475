// Gemini generateContent client and reply repair.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mxsolis/contentbot/internal/models"
	"github.com/mxsolis/contentbot/internal/shared"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

var (
	fencedJSON    = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// GeminiService implements [Generator] against the Gemini REST API.
type GeminiService struct {
	apiKey     string
	model      string
	languages  []string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewGeminiService creates a Gemini client. An empty baseURL selects the
// public endpoint; tests pass an httptest server URL.
func NewGeminiService(apiKey, model string, languages []string, baseURL string, logger *log.Logger) *GeminiService {
	if model == "" {
		model = "gemini-1.5-pro"
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		languages:  languages,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// buildPrompt assembles the generation instruction: category, avoid-list,
// duration band, strict JSON schema, no prose.
func (s *GeminiService) buildPrompt(category string, existingTitles []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate one short-form video content idea for the category: %s (30 to 45 seconds).\n", category)
	if len(existingTitles) > 0 {
		fmt.Fprintf(&b, "Avoid repeating these existing ideas: %s.\n", strings.Join(existingTitles, ", "))
	}

	b.WriteString(`The idea must have:
1. A short title.
2. A script split in 3 parts: hook, body, closing.
3. A list of viral hashtags for TikTok.
4. Between 3 and 10 video shot prompts usable with a video generation model.
5. A short stock-media search prompt describing the visuals.
`)
	fmt.Fprintf(&b, "Return it as JSON with one version per language code, for exactly these languages: %s.\n", strings.Join(s.languages, ", "))
	b.WriteString(`Respond ONLY with the JSON, no extra text.
Exact format per language:
{
  "<lang>": {
    "title": "...",
    "script": {"hook": "...", "body": "...", "closing": "..."},
    "hashtags": "#One #Two",
    "video_prompts": ["...", "..."],
    "search_prompt": "..."
  }
}`)

	return b.String()
}

// GenerateIdea prompts the model and parses its repaired reply.
func (s *GeminiService) GenerateIdea(ctx context.Context, category string, existingTitles []string) (models.BilingualIdea, error) {
	raw, err := s.complete(ctx, s.buildPrompt(category, existingTitles))
	if err != nil {
		return nil, err
	}

	cleaned := RepairJSON(raw)

	var idea models.BilingualIdea
	if err := json.Unmarshal([]byte(cleaned), &idea); err != nil {
		s.logger.Error("model reply failed to parse", "error", err)
		s.logger.Error("raw reply", "text", raw)
		s.logger.Error("cleaned reply", "text", cleaned)
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidModelReply, err)
	}

	for lang, t := range idea {
		t.Language = lang
		idea[lang] = t
	}

	return idea, nil
}

// complete performs one generateContent call and returns the first
// candidate's text.
func (s *GeminiService) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, errBody.String())
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", shared.ErrInvalidModelReply)
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// RepairJSON normalizes a model reply into parseable JSON: trims whitespace,
// unwraps a fenced ```json block when present, and strips trailing commas
// before a closing brace or bracket. It never touches valid content.
func RepairJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	return trailingComma.ReplaceAllString(text, "$1")
}
