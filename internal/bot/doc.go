// Package bot implements the Telegram conversation controller.
//
// The controller is an inline-keyboard driven state machine. Menu navigation
// is stateless: every button press carries a [Token] that fully identifies
// the next view, and each view re-queries the store, so re-entering a menu
// never shows stale data. The only server-side conversation state is the
// text-capture window tracked by [SessionStore]: after "add category" or
// "rename category" the user's next free-text message completes the pending
// operation; text arriving outside such a window is ignored.
//
// Callback tokens carry category names as base64url payloads, so any
// category name round-trips through a button press unchanged — names with
// spaces or underscores cannot collide.
//
// Updates are handled sequentially in arrival order; the one long-running
// transition (idea generation) keeps the user informed with an ephemeral
// placeholder message that is edited in place on failure.
package bot
