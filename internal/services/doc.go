// Package services implements the HTTP clients for the three external
// collaborators of the idea pipeline.
//
// # Generator
//
// [GeminiService] prompts the Gemini generateContent endpoint for a bilingual
// content package and repairs the reply before parsing: fenced ```json blocks
// are unwrapped and trailing commas before a closing brace or bracket are
// stripped, the two failure modes the model actually produces. A reply that
// still fails to parse is logged (raw and cleaned) and surfaces
// [shared.ErrInvalidModelReply]; there is no retry and no partial result.
//
// # MediaSearcher
//
// [PexelsService] looks up stock photo and video URLs for a free-text query.
// Media enrichment is best-effort by contract: any non-success HTTP status
// yields an empty slice, never an error.
//
// # Publisher
//
// [NotionService] mirrors a generated idea into a Notion database page. The
// block order it emits is an external contract read by downstream tooling
// and must not be reordered. The authenticated client is built with
// [oauth2.NewClient] over a static bearer token.
//
// All three clients take an overridable base URL so tests can point them at
// an httptest server.
package services
