// Package apperr classifies transport and backend failures into a stable taxonomy
// with a user-facing message and the action the user should take.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable failure category shown to callers.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthRequired
	KindNetworkUnavailable
	KindServerError
	KindConflict
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindAuthRequired:
		return "auth_required"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindServerError:
		return "server_error"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// Action is what the user is expected to do next.
type Action string

const (
	ActionNone            Action = ""
	ActionSignIn          Action = "sign_in"
	ActionCheckConnection Action = "check_connection"
	ActionRetry           Action = "retry"
	ActionFixInput        Action = "fix_input"
)

// Error is a classified failure. Message is safe to show to users.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Action  Action
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error that did not come from the network,
// such as a failed precondition.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Action: defaultAction(kind)}
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func defaultAction(k Kind) Action {
	switch k {
	case KindAuthRequired:
		return ActionSignIn
	case KindNetworkUnavailable:
		return ActionCheckConnection
	case KindServerError, KindUnknown:
		return ActionRetry
	case KindValidation:
		return ActionFixInput
	default:
		return ActionNone
	}
}
