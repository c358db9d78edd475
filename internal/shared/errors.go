package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Access control errors
	ErrAccessDenied = fmt.Errorf("user not on the allow-list")

	// Generation errors
	ErrInvalidModelReply = fmt.Errorf("model returned invalid structured content")
	ErrRunSuperseded     = fmt.Errorf("generation superseded by a newer request")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrIdeaNotFound       = fmt.Errorf("idea not found")

	// Downstream sink errors
	ErrPublishFailed     = fmt.Errorf("workspace publish failed")
	ErrMediaSearchFailed = fmt.Errorf("media search failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidCallback = fmt.Errorf("invalid callback token")
)
