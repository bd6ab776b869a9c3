package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// User-facing messages.
const (
	MsgNetwork    = "Unable to connect. Please check your internet connection"
	MsgServer     = "Server error. Please try again later"
	MsgExists     = "This item already exists"
	MsgNotFound   = "The requested item was not found"
	MsgValidation = "Please check your input and try again"
)

// StatusCoder is implemented by errors that carry an HTTP response status.
type StatusCoder interface {
	StatusCode() int
}

// BackendMessager is implemented by errors that carry a structured backend message.
type BackendMessager interface {
	BackendMessage() string
}

var backendKeywords = []struct {
	needles []string
	kind    Kind
	message string
}{
	{[]string{"duplicate", "already exists"}, KindConflict, MsgExists},
	{[]string{"not found"}, KindNotFound, MsgNotFound},
	{[]string{"validation"}, KindValidation, MsgValidation},
}

// Classify translates err into a user-facing error for the operation op
// (phrased as a verb, e.g. "add to favorites"). Rules are ordered: auth and
// connectivity are decided before the backend message is inspected, since a
// 401 often carries a generic backend message of its own.
func Classify(err error, op string) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	status, hasResponse := statusOf(err)
	lower := strings.ToLower(err.Error())

	switch {
	case status == http.StatusUnauthorized ||
		strings.Contains(lower, "auth") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "unauthorized"):
		return wrap(err, KindAuthRequired, op, fmt.Sprintf("Please sign in to %s", op))
	case !hasResponse:
		return wrap(err, KindNetworkUnavailable, op, MsgNetwork)
	case status >= http.StatusInternalServerError:
		return wrap(err, KindServerError, op, MsgServer)
	}

	if msg := backendMessageOf(err); msg != "" {
		lowerMsg := strings.ToLower(msg)
		for _, rule := range backendKeywords {
			for _, needle := range rule.needles {
				if strings.Contains(lowerMsg, needle) {
					return wrap(err, rule.kind, op, rule.message)
				}
			}
		}
		return wrap(err, KindUnknown, op, msg)
	}

	return wrap(err, KindUnknown, op, fmt.Sprintf("Failed to %s. Please try again", op))
}

func wrap(err error, kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Action: defaultAction(kind), Err: err}
}

func statusOf(err error) (int, bool) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}

func backendMessageOf(err error) string {
	var bm BackendMessager
	if errors.As(err, &bm) {
		return strings.TrimSpace(bm.BackendMessage())
	}
	return ""
}
