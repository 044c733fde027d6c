package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure so transport code can map it to a
// status without inspecting message text.
type Kind string

const (
	KindValidation Kind = "validation"     // bad input, caller corrects and resubmits
	KindConflict   Kind = "state_conflict" // state moved underneath the caller, reload
	KindStock      Kind = "stock"          // adjustment would drive inventory negative
	KindNotFound   Kind = "not_found"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Stockf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindStock, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, unwrapping as needed. Errors that are not
// *Error report an empty kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
