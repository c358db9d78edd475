// Pexels stock media search implementation of [MediaSearcher]
//
// Response types based on https://www.pexels.com/api/documentation/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mxsolis/contentbot/internal/shared"
)

const defaultPexelsBaseURL = "https://api.pexels.com"

// PexelsService implements [MediaSearcher] for the Pexels photo and video
// search APIs. All failures degrade to empty results.
type PexelsService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewPexelsService creates a Pexels client. An empty baseURL selects the
// public endpoint; tests pass an httptest server URL.
func NewPexelsService(apiKey, baseURL string, logger *log.Logger) *PexelsService {
	if baseURL == "" {
		baseURL = defaultPexelsBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PexelsService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

type pexelsPhoto struct {
	Src struct {
		Medium string `json:"medium"`
	} `json:"src"`
}

type pexelsVideoFile struct {
	Link string `json:"link"`
}

type pexelsVideo struct {
	VideoFiles []pexelsVideoFile `json:"video_files"`
}

type pexelsPhotoResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

type pexelsVideoResponse struct {
	Videos []pexelsVideo `json:"videos"`
}

// SearchImages returns up to count medium-size photo URLs for the query.
// The orientation hint ("portrait", "landscape", "square") is optional.
func (s *PexelsService) SearchImages(ctx context.Context, query string, count int, orientation string) []string {
	var result pexelsPhotoResponse
	if !s.search(ctx, "/v1/search", query, count, orientation, &result) {
		return nil
	}

	urls := make([]string, 0, len(result.Photos))
	for _, p := range result.Photos {
		urls = append(urls, p.Src.Medium)
	}
	return urls
}

// SearchVideos returns up to count video file URLs for the query, taking the
// first file variant of each hit.
func (s *PexelsService) SearchVideos(ctx context.Context, query string, count int, orientation string) []string {
	var result pexelsVideoResponse
	if !s.search(ctx, "/videos/search", query, count, orientation, &result) {
		return nil
	}

	urls := make([]string, 0, len(result.Videos))
	for _, v := range result.Videos {
		if len(v.VideoFiles) > 0 {
			urls = append(urls, v.VideoFiles[0].Link)
		}
	}
	return urls
}

// search performs one GET against a Pexels search endpoint. Returns false on
// any failure; media lookups never abort the caller.
func (s *PexelsService) search(ctx context.Context, path, query string, count int, orientation string, result any) bool {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(count))
	if orientation != "" {
		params.Set("orientation", orientation)
	}

	endpoint := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.logger.Warn("pexels request build failed", "error", err)
		return false
	}
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("pexels request failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("pexels returned non-success status", "status", resp.StatusCode, "path", path)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		s.logger.Warn("pexels response decode failed", "error", err)
		return false
	}

	return true
}
