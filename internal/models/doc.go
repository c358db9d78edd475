// Package models defines domain entities for the content idea bot.
//
// The central entity is an [Idea]: one generated content concept belonging to
// a (user, category) pair, carrying exactly one [Translation] per supported
// language. Translations hold the bilingual payload produced by the model —
// title, three-part [Script], hashtags — plus the optional enrichment the
// pipeline attaches afterwards (video shot prompts, stock media URLs and the
// search prompt used to retrieve them).
//
// Categories are derived, not stored: a user's category set is the distinct
// set of category labels on their ideas.
package models
