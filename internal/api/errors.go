package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork wraps every failure where no HTTP response was received
	ErrNetwork = errors.New("network error")
	// ErrDecode wraps a response body that did not have the expected shape
	ErrDecode = errors.New("unexpected response body")
)

// StatusError is a response outside the success range of an endpoint
type StatusError struct {
	StatusCode int
	// Message is the server's "message" field, when it sent one
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Message turns err into banner text. Transport failures use networkText;
// rejections use the server's message.
func Message(err error, networkText string) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	switch {
	case errors.Is(err, ErrNetwork):
		return networkText
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		return se.Error()
	}
	return err.Error()
}
