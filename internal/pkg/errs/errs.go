// Package errs narrows cockroachdb/errors to the operations this codebase
// uses: wrap with context, mark with a sentinel, render the stack.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr as err's identity for errors.Is.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// ExtractStackLines renders err with its stack trace and returns at most
// maxLines lines of it.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
