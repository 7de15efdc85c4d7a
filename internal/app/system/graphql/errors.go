package graphql

import (
	"fmt"
	"strings"
)

// StatusError reports a non-2xx HTTP response from the endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error %d", e.Code)
}

// ResponseError carries the "errors" array of a GraphQL response that
// produced no data.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// FetchError is the single error type returned by Client.Do. It wraps the
// underlying status, transport, or decode error and keeps its message.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "Fetch " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }
