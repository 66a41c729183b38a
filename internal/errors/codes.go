package errors

// Code identifies a class of gateway failure. Codes are transport-agnostic;
// the HTTP layer maps them to status codes.
type Code string

const (
	// Operator input
	ErrInvalidCommand  Code = "invalid_command"
	ErrEmptyInput      Code = "empty_input"
	ErrInvalidArgument Code = "invalid_argument"
	ErrInvalidDate     Code = "invalid_date"

	// Remote feed service
	ErrMisconfiguredCredentials Code = "misconfigured_credentials"
	ErrRemoteUnavailable        Code = "remote_unavailable"

	// Data
	ErrDataUnavailable  Code = "data_unavailable"
	ErrStoreUnavailable Code = "store_unavailable"

	ErrInternal Code = "internal_error"
)

var messages = map[Code]string{
	ErrInvalidCommand:           "invalid command",
	ErrEmptyInput:               "input must not be empty",
	ErrInvalidArgument:          "invalid argument",
	ErrInvalidDate:              "invalid date",
	ErrMisconfiguredCredentials: "feed credentials are not configured",
	ErrRemoteUnavailable:        "feed service unavailable",
	ErrDataUnavailable:          "data unavailable",
	ErrStoreUnavailable:         "reading store unavailable",
	ErrInternal:                 "internal error",
}

// Message returns the default human readable message for code.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return string(code)
}
