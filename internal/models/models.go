package models

import "time"

// Script is the three-part structure every generated idea follows.
type Script struct {
	Hook    string `json:"hook"`
	Body    string `json:"body"`
	Closing string `json:"closing"`
}

// Translation is the language-specific rendering of an idea.
//
// Title, Script and Hashtags come from the model. VideoPrompts and
// SearchPrompt are optional model output; ImageURLs and VideoURLs are
// attached by the pipeline from stock media search and may be empty.
type Translation struct {
	Language     string   `json:"-"`
	Title        string   `json:"title"`
	Script       Script   `json:"script"`
	Hashtags     string   `json:"hashtags"`
	VideoPrompts []string `json:"video_prompts,omitempty"`
	SearchPrompt string   `json:"search_prompt,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
	VideoURLs    []string `json:"video_urls,omitempty"`
}

// BilingualIdea maps a language tag ("es", "en") to its translation.
//
// Iteration order is undefined; callers that care about order (renderers,
// the workspace mirror) iterate the configured language list instead.
type BilingualIdea map[string]Translation

// Idea is a stored content concept owned by one (user, category).
type Idea struct {
	ID        int64
	UserID    int64
	Category  string
	CreatedAt time.Time
}

// IdeaRow is one flattened (idea, translation) listing row as returned by
// the ideas query: newest idea first, one row per language.
type IdeaRow struct {
	IdeaID    int64
	Category  string
	CreatedAt time.Time
	Language  string
	Title     string
	Script    Script
	Hashtags  string
}

// IdeaSummary is a compact list entry for the idea browser, keyed by the
// primary-language title.
type IdeaSummary struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}
