// Error codes reference.
//
// User-facing error messages carry short codes so an operator can be quoted
// a code and know where to look:
//
//	SRC001 - Source not found: the configured CSV path or URL does not exist
//	SRC002 - Source fetch failed: upstream returned a non-success status
//	SRC003 - Source unreachable: connection refused / DNS failure
//	SRC004 - Fetch timeout: source did not respond in time
//	SRC005 - No data loaded: no snapshot has been loaded yet
//	CFG001 - Fields file invalid: the YAML fields override failed to parse
//	REQ001 - Invalid date bound: a from/to query value is not a date
//	REQ002 - Request cancelled
//	RATE01 - Too many requests
//	ERR000 - Unknown error (check logs for the technical error)
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns sit before general ones.
package catalog

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The configured source file does not exist",
			Action:  "Check the CSV_PATH setting",
			Code:    "SRC001",
		},
	},
	{
		pattern: "unexpected status",
		msg: UserMessage{
			Message: "The source server rejected the fetch",
			Action:  "Verify the CSV_URL is correct and publicly readable",
			Code:    "SRC002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The source server is unreachable",
			Action:  "Please try again in a few moments",
			Code:    "SRC003",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "The source host could not be resolved",
			Action:  "Check the CSV_URL hostname",
			Code:    "SRC003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The source did not respond in time",
			Action:  "Try again, or raise SOURCE_FETCH_TIMEOUT",
			Code:    "SRC004",
		},
	},
	{
		pattern: "no snapshot loaded",
		msg: UserMessage{
			Message: "No event data has been loaded yet",
			Action:  "Trigger a reload or check the source configuration",
			Code:    "SRC005",
		},
	},
	{
		pattern: "fields file",
		msg: UserMessage{
			Message: "The fields override file could not be read",
			Action:  "Fix the YAML in the configured fields file",
			Code:    "CFG001",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "A date filter value could not be parsed",
			Action:  "Use YYYY-MM-DD for the from/to parameters",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE01",
		},
	},
}

// MapError converts a technical error into a user-friendly message. Unmatched
// errors fall through to ERR000 so the raw text never reaches a client.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or check the server logs",
		Code:    "ERR000",
	}
}

// ErrNoSnapshot is returned by callers that require loaded data.
var ErrNoSnapshot = fmt.Errorf("no snapshot loaded")
