package services

import (
	"context"

	"github.com/mxsolis/contentbot/internal/models"
)

// Generator produces one bilingual content package for a category, steering
// the model away from the titles the user already has.
type Generator interface {
	GenerateIdea(ctx context.Context, category string, existingTitles []string) (models.BilingualIdea, error)
}

// MediaSearcher finds stock media URLs for a free-text query. Implementations
// never fail: an unavailable backend produces empty results.
type MediaSearcher interface {
	SearchImages(ctx context.Context, query string, count int, orientation string) []string
	SearchVideos(ctx context.Context, query string, count int, orientation string) []string
}

// Publisher mirrors a generated idea into the external workspace.
type Publisher interface {
	CreateContentPage(ctx context.Context, idea models.BilingualIdea, category string) error
}

// NopPublisher discards pages. Used when no workspace is configured.
type NopPublisher struct{}

func (NopPublisher) CreateContentPage(ctx context.Context, idea models.BilingualIdea, category string) error {
	return nil
}
