package api

import (
	"errors"
	"fmt"
)

// User-facing messages for failed recommendation requests.
const (
	MsgGeneric         = "Something went wrong"
	MsgConnectionError = "Failed to connect to server"
)

// DisplayMessage maps a recommendation error to the text shown to the user.
// Server-reported messages are passed through verbatim.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return MsgGeneric
	}
	return MsgConnectionError
}

// FormatMatch renders a similarity score as a percentage with one decimal,
// e.g. 0.873 -> "87.3% Match".
func FormatMatch(similarity float64) string {
	return fmt.Sprintf("%.1f%% Match", similarity*100)
}
