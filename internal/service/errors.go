package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so transport code can pick a status
// without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyInput
	KindNoHeaderRow
	KindDateParse
	KindNoRecords
	KindStoreUnavailable
	KindNotFound
	KindUnauthenticated
	KindMalformedRequest
)

// Error is a classified, user-visible failure. Raw carries the offending
// input value for parse failures; Err the wrapped infrastructure cause.
type Error struct {
	Kind    Kind
	Message string
	Raw     string
	Err     error
}

func (e *Error) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Raw)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func errEmptyInput() error {
	return &Error{Kind: KindEmptyInput, Message: "CSV file is empty"}
}

func errNoHeader() error {
	return &Error{Kind: KindNoHeaderRow, Message: "CSV file has no header"}
}

func errDateParse(raw string) error {
	return &Error{Kind: KindDateParse, Message: "failed to parse date", Raw: raw}
}

func errNoRecords() error {
	return &Error{Kind: KindNoRecords, Message: "no expenses found in the CSV file"}
}

func errStore(op string, err error) error {
	return &Error{Kind: KindStoreUnavailable, Message: op, Err: err}
}

func errNotFound() error {
	return &Error{Kind: KindNotFound, Message: "expense not found"}
}

func errUnauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Message: "could not resolve owner from token"}
}

func errMalformed(msg string, raw string) error {
	return &Error{Kind: KindMalformedRequest, Message: msg, Raw: raw}
}
