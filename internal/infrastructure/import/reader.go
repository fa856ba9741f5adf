// Package csvimport reads and validates CSV uploads row by row. Rows that
// fail validation are reported individually so one bad line does not sink
// a whole import.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldType names the conversion applied to a column value
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
	TypeEmail   FieldType = "email"
)

// Field describes one expected column
type Field struct {
	Column   string
	Type     FieldType
	Required bool
	MaxLen   int
}

// Schema is the set of columns an import understands. Unknown columns in
// the upload are ignored.
type Schema struct {
	Fields []Field
}

// requiredColumns returns the columns that must appear in the header
func (s Schema) requiredColumns() []string {
	var cols []string
	for _, f := range s.Fields {
		if f.Required {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// Row is one validated data row. Values are typed by the schema.
type Row struct {
	// Number is the 1-based line number in the upload, header included
	Number int
	values map[string]any
}

// String returns the string value of a column, or "" when absent
func (r Row) String(column string) string {
	v, _ := r.values[column].(string)
	return v
}

// Int returns the integer value of a column, or 0 when absent
func (r Row) Int(column string) int {
	v, _ := r.values[column].(int)
	return v
}

// Decimal returns the decimal value of a column, or zero when absent
func (r Row) Decimal(column string) decimal.Decimal {
	v, ok := r.values[column].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return v
}

// Time returns the time value of a column, or the zero time when absent
func (r Row) Time(column string) time.Time {
	v, _ := r.values[column].(time.Time)
	return v
}

// Result is the outcome of reading an upload
type Result struct {
	// Rows holds the rows that passed validation
	Rows []Row
	// Errors holds per-row failures
	Errors *ErrorList
	// TotalRows counts data rows read, valid or not
	TotalRows int
}

// dateLayouts accepted for TypeDate columns, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// maxErrorsPerImport caps the retained row errors per upload
const maxErrorsPerImport = 100

// Read consumes the upload and validates every data row against the
// schema. A header-level problem fails the whole read; row-level problems
// are collected in Result.Errors.
func Read(r io.Reader, schema Schema) (*Result, error) {
	br := bufio.NewReader(r)
	if err := stripBOM(br); err != nil {
		return nil, err
	}
	if err := checkUTF8(br); err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeColumn(name)] = i
	}
	for _, required := range schema.requiredColumns() {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, required)
		}
	}

	result := &Result{Errors: NewErrorList(maxErrorsPerImport)}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.TotalRows++
			result.Errors.Add(RowError{
				Row:     line,
				Code:    ErrCodeMalformedRow,
				Message: "row could not be parsed",
			})
			continue
		}
		if isBlank(record) {
			continue
		}

		result.TotalRows++
		row, ok := validateRow(line, record, columns, schema, result.Errors)
		if ok {
			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

func validateRow(line int, record []string, columns map[string]int, schema Schema, errs *ErrorList) (Row, bool) {
	row := Row{Number: line, values: make(map[string]any, len(schema.Fields))}
	ok := true

	for _, field := range schema.Fields {
		idx, present := columns[field.Column]
		raw := ""
		if present && idx < len(record) {
			raw = strings.TrimSpace(record[idx])
		}

		if raw == "" {
			if field.Required {
				errs.Add(RowError{
					Row:     line,
					Column:  field.Column,
					Code:    ErrCodeRequiredField,
					Message: "value is required",
				})
				ok = false
			}
			continue
		}

		if field.MaxLen > 0 && utf8.RuneCountInString(raw) > field.MaxLen {
			errs.Add(RowError{
				Row:     line,
				Column:  field.Column,
				Code:    ErrCodeInvalidLength,
				Message: fmt.Sprintf("value exceeds %d characters", field.MaxLen),
			})
			ok = false
			continue
		}

		value, err := convert(raw, field.Type)
		if err != nil {
			errs.Add(RowError{
				Row:     line,
				Column:  field.Column,
				Code:    ErrCodeInvalidType,
				Message: err.Error(),
				Value:   raw,
			})
			ok = false
			continue
		}
		row.values[field.Column] = value
	}

	return row, ok
}

func convert(raw string, t FieldType) (any, error) {
	switch t {
	case TypeString, "":
		return raw, nil
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		return n, nil
	case TypeDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("expected a decimal number")
		}
		return d, nil
	case TypeDate:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("expected a date (RFC 3339 or YYYY-MM-DD)")
	case TypeEmail:
		if _, err := mail.ParseAddress(raw); err != nil {
			return nil, fmt.Errorf("expected an email address")
		}
		return strings.ToLower(raw), nil
	default:
		return nil, fmt.Errorf("unknown field type %q", t)
	}
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// stripBOM discards a leading UTF-8 byte order mark
func stripBOM(br *bufio.Reader) error {
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return nil
}

// checkUTF8 validates the leading chunk of the upload
func checkUTF8(br *bufio.Reader) error {
	const checkSize = 4096
	head, err := br.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read file: %w", err)
	}
	if len(head) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(head[:truncValid(head)]) {
		return ErrInvalidEncoding
	}
	return nil
}

// truncValid avoids flagging a multi-byte rune split at the peek boundary
func truncValid(b []byte) int {
	end := len(b)
	for end > 0 && len(b)-end < utf8.UTFMax-1 && !utf8.Valid(b[:end]) {
		end--
	}
	return end
}
