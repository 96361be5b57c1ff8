package opentdb

import "fmt"

// Response codes documented by the Open Trivia Database.
const (
	CodeSuccess          = 0
	CodeNoResults        = 1
	CodeInvalidParameter = 2
	CodeTokenNotFound    = 3
	CodeTokenEmpty       = 4
	CodeRateLimit        = 5
)

var codeNames = map[int]string{
	CodeNoResults:        "no results",
	CodeInvalidParameter: "invalid parameter",
	CodeTokenNotFound:    "token not found",
	CodeTokenEmpty:       "token empty",
	CodeRateLimit:        "rate limit",
}

// StatusError is returned for a non-2xx HTTP response.
type StatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("opentdb: %s %s", e.URL, e.Status)
}

// ResponseCodeError is returned when the API answers with a non-zero response_code.
type ResponseCodeError struct {
	Code int
}

func (e *ResponseCodeError) Error() string {
	name, ok := codeNames[e.Code]
	if !ok {
		name = "unknown"
	}
	return fmt.Sprintf("opentdb: cannot fetch questions: response code %d (%s)", e.Code, name)
}
