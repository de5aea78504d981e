package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldType discriminates form field definitions and submitted values.
type FieldType string

// Supported form field types.
const (
	FieldText           FieldType = "text"
	FieldTextarea       FieldType = "textarea"
	FieldNumber         FieldType = "number"
	FieldSelect         FieldType = "select"
	FieldBoolean        FieldType = "boolean"
	FieldDate           FieldType = "date"
	FieldFile           FieldType = "file"
	FieldMultipleSelect FieldType = "multiple_select"
)

// Valid reports whether the field type is one of the supported types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldNumber, FieldSelect,
		FieldBoolean, FieldDate, FieldFile, FieldMultipleSelect:
		return true
	}
	return false
}

// FormField describes one field of a program's submission form.
type FormField struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Options  []string  `json:"options,omitempty"` // select / multiple_select
	Required bool      `json:"required"`
}

// FormTemplate is the form a program presents to submitters.
type FormTemplate struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	ProgramID string
	Name      string
	Fields    []FormField
}

// FileReference points at an uploaded file. The core never inspects content.
type FileReference struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// FieldValue is a tagged variant holding one submitted form value. Only the
// member matching Kind is meaningful; the evaluator and renderer switch on
// Kind instead of probing untyped data.
type FieldValue struct {
	Date   time.Time      `json:"date,omitempty"`
	File   *FileReference `json:"file,omitempty"`
	Kind   FieldType      `json:"kind"`
	Text   string         `json:"text,omitempty"`
	Values []string       `json:"values,omitempty"`
	Number float64        `json:"number,omitempty"`
	Bool   bool           `json:"bool,omitempty"`
}

// TextValue builds a text field value.
func TextValue(s string) FieldValue { return FieldValue{Kind: FieldText, Text: s} }

// TextareaValue builds a textarea field value.
func TextareaValue(s string) FieldValue { return FieldValue{Kind: FieldTextarea, Text: s} }

// NumberValue builds a numeric field value.
func NumberValue(n float64) FieldValue { return FieldValue{Kind: FieldNumber, Number: n} }

// SelectValue builds a single-select field value.
func SelectValue(s string) FieldValue { return FieldValue{Kind: FieldSelect, Text: s} }

// BoolValue builds a boolean field value.
func BoolValue(b bool) FieldValue { return FieldValue{Kind: FieldBoolean, Bool: b} }

// DateValue builds a date field value.
func DateValue(t time.Time) FieldValue { return FieldValue{Kind: FieldDate, Date: t} }

// MultiSelectValue builds a multiple-select field value.
func MultiSelectValue(vs ...string) FieldValue {
	return FieldValue{Kind: FieldMultipleSelect, Values: vs}
}

// FileValue builds a file field value.
func FileValue(ref FileReference) FieldValue { return FieldValue{Kind: FieldFile, File: &ref} }

// IsEmpty reports whether the value carries no usable content.
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case FieldText, FieldTextarea, FieldSelect:
		return strings.TrimSpace(v.Text) == ""
	case FieldNumber, FieldBoolean:
		// Zero and false are real answers, not absence.
		return false
	case FieldDate:
		return v.Date.IsZero()
	case FieldMultipleSelect:
		return len(v.Values) == 0
	case FieldFile:
		return v.File == nil || v.File.Name == ""
	}
	return true
}

// AsNumber attempts to interpret the value as a float. Text-like kinds are
// parsed; kinds with no numeric reading report false.
func (v FieldValue) AsNumber() (float64, bool) {
	switch v.Kind {
	case FieldNumber:
		return v.Number, true
	case FieldText, FieldTextarea, FieldSelect:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// AsString renders the value for string comparison and display.
func (v FieldValue) AsString() string {
	switch v.Kind {
	case FieldText, FieldTextarea, FieldSelect:
		return v.Text
	case FieldNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case FieldBoolean:
		return strconv.FormatBool(v.Bool)
	case FieldDate:
		if v.Date.IsZero() {
			return ""
		}
		return v.Date.Format("2006-01-02")
	case FieldMultipleSelect:
		return strings.Join(v.Values, ", ")
	case FieldFile:
		if v.File == nil {
			return ""
		}
		return v.File.Name
	}
	return ""
}

// UnmarshalJSON validates the kind tag while decoding.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	type alias FieldValue
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Kind != "" && !a.Kind.Valid() {
		return fmt.Errorf("unknown field value kind %q", a.Kind)
	}
	*v = FieldValue(a)
	return nil
}
