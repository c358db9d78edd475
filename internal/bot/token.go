package bot

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/mxsolis/contentbot/internal/shared"
)

// Action identifies the view or operation a button press requests.
type Action string

const (
	ActionMainMenu         Action = "menu"
	ActionManageCategories Action = "manage"
	ActionAddCategory      Action = "addcat"
	ActionListCategories   Action = "cats"
	ActionViewCategory     Action = "cat"
	ActionListIdeas        Action = "ideas"
	ActionShowIdea         Action = "idea"
	ActionRenameCategory   Action = "rename"
	ActionDeleteCategory   Action = "delcat"
	ActionConfirmDelete    Action = "wipecat"
	ActionGeneratePicker   Action = "genmenu"
	ActionGenerate         Action = "gen"
)

var knownActions = map[Action]bool{
	ActionMainMenu:         true,
	ActionManageCategories: true,
	ActionAddCategory:      true,
	ActionListCategories:   true,
	ActionViewCategory:     true,
	ActionListIdeas:        true,
	ActionShowIdea:         true,
	ActionRenameCategory:   true,
	ActionDeleteCategory:   true,
	ActionConfirmDelete:    true,
	ActionGeneratePicker:   true,
	ActionGenerate:         true,
}

// Token is the structured payload behind every inline keyboard button.
//
// Unused fields stay at their zero value; which fields an action consumes is
// up to the handler. The category travels base64url-encoded so any stored
// category name survives the round trip byte for byte.
type Token struct {
	Action   Action
	Category string
	Page     int
	IdeaID   int64
}

var tokenEncoding = base64.RawURLEncoding

// Encode renders the token as callback data. The wire form is four
// colon-separated fields: action, encoded category, page, idea id.
func (t Token) Encode() string {
	return strings.Join([]string{
		string(t.Action),
		tokenEncoding.EncodeToString([]byte(t.Category)),
		strconv.Itoa(t.Page),
		strconv.FormatInt(t.IdeaID, 10),
	}, ":")
}

// DecodeToken parses callback data produced by [Token.Encode]. Data from a
// foreign or outdated keyboard fails with [shared.ErrInvalidCallback].
func DecodeToken(data string) (Token, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return Token{}, fmt.Errorf("%w: %q", shared.ErrInvalidCallback, data)
	}

	action := Action(parts[0])
	if !knownActions[action] {
		return Token{}, fmt.Errorf("%w: unknown action %q", shared.ErrInvalidCallback, parts[0])
	}

	category, err := tokenEncoding.DecodeString(parts[1])
	if err != nil {
		return Token{}, fmt.Errorf("%w: bad category payload: %v", shared.ErrInvalidCallback, err)
	}

	page, err := strconv.Atoi(parts[2])
	if err != nil || page < 0 {
		return Token{}, fmt.Errorf("%w: bad page %q", shared.ErrInvalidCallback, parts[2])
	}

	ideaID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || ideaID < 0 {
		return Token{}, fmt.Errorf("%w: bad idea id %q", shared.ErrInvalidCallback, parts[3])
	}

	return Token{Action: action, Category: string(category), Page: page, IdeaID: ideaID}, nil
}
