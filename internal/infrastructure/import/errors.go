package csvimport

import (
	"errors"
	"fmt"
)

// Row error codes surfaced in import results
const (
	ErrCodeRequiredField = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType   = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeInvalidFormat = "ERR_IMPORT_INVALID_FORMAT"
	ErrCodeInvalidLength = "ERR_IMPORT_INVALID_LENGTH"
	ErrCodeMalformedRow  = "ERR_IMPORT_MALFORMED_ROW"
)

var (
	// ErrEmptyFile is returned when the upload contains no bytes
	ErrEmptyFile = errors.New("csv file is empty")

	// ErrInvalidEncoding is returned when the upload is not valid UTF-8
	ErrInvalidEncoding = errors.New("csv file is not valid UTF-8")

	// ErrMissingHeader is returned when the upload has no header row
	ErrMissingHeader = errors.New("csv file missing header row")

	// ErrMissingColumns is returned when required columns are absent from
	// the header
	ErrMissingColumns = errors.New("csv header missing required columns")
)

// RowError describes a problem with one row of the upload
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorList accumulates row errors up to a cap. The total keeps counting
// past the cap so callers can report how many rows actually failed.
type ErrorList struct {
	errors []RowError
	limit  int
	total  int
}

// NewErrorList creates a list that retains at most limit errors
func NewErrorList(limit int) *ErrorList {
	if limit <= 0 {
		limit = 100
	}
	return &ErrorList{limit: limit}
}

// Add records a row error
func (l *ErrorList) Add(err RowError) {
	l.total++
	if len(l.errors) < l.limit {
		l.errors = append(l.errors, err)
	}
}

// Errors returns the retained errors
func (l *ErrorList) Errors() []RowError {
	return l.errors
}

// Total returns the number of errors recorded, including dropped ones
func (l *ErrorList) Total() int {
	return l.total
}

// Truncated reports whether errors were dropped after hitting the cap
func (l *ErrorList) Truncated() bool {
	return l.total > len(l.errors)
}
