package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedValue is returned when JSON cannot be represented as a RequirementValue
var ErrUnsupportedValue = errors.New("domain: unsupported requirement value")

// ValueKind tags the variant held by a RequirementValue
type ValueKind string

const (
	ValueKindNull       ValueKind = "null"
	ValueKindString     ValueKind = "string"
	ValueKindNumber     ValueKind = "number"
	ValueKindBool       ValueKind = "bool"
	ValueKindStringList ValueKind = "string_list"
)

// RequirementValue is an answer to a requirement: a string, a number, a boolean or a list of strings.
// The zero value is null (no answer).
type RequirementValue struct {
	kind ValueKind
	str  string
	num  decimal.Decimal
	bln  bool
	list []string
}

func NullValue() RequirementValue {
	return RequirementValue{kind: ValueKindNull}
}

func StringValue(s string) RequirementValue {
	return RequirementValue{kind: ValueKindString, str: s}
}

func NumberValue(n decimal.Decimal) RequirementValue {
	return RequirementValue{kind: ValueKindNumber, num: n}
}

func BoolValue(b bool) RequirementValue {
	return RequirementValue{kind: ValueKindBool, bln: b}
}

func StringListValue(items []string) RequirementValue {
	list := make([]string, len(items))
	copy(list, items)
	return RequirementValue{kind: ValueKindStringList, list: list}
}

// Kind returns the variant tag
func (v RequirementValue) Kind() ValueKind {
	if v.kind == "" {
		return ValueKindNull
	}
	return v.kind
}

func (v RequirementValue) IsNull() bool {
	return v.Kind() == ValueKindNull
}

func (v RequirementValue) AsString() (string, bool) {
	return v.str, v.kind == ValueKindString
}

func (v RequirementValue) AsNumber() (decimal.Decimal, bool) {
	return v.num, v.kind == ValueKindNumber
}

func (v RequirementValue) AsBool() (bool, bool) {
	return v.bln, v.kind == ValueKindBool
}

func (v RequirementValue) AsStringList() ([]string, bool) {
	if v.kind != ValueKindStringList {
		return nil, false
	}
	list := make([]string, len(v.list))
	copy(list, v.list)
	return list, true
}

// IsEmpty reports whether the value counts as "not filled" for a requirement of type t.
// false is a filled answer for checkbox and toggle.
func (v RequirementValue) IsEmpty(t RequirementType) bool {
	switch v.Kind() {
	case ValueKindNull:
		return true
	case ValueKindString:
		if t.IsTextual() {
			return strings.TrimSpace(v.str) == ""
		}
		return v.str == ""
	case ValueKindStringList:
		return len(v.list) == 0
	default:
		return false
	}
}

// MatchesType reports whether the variant is the one declared type t expects
func (v RequirementValue) MatchesType(t RequirementType) bool {
	switch v.Kind() {
	case ValueKindNull:
		return true
	case ValueKindString:
		return t.IsTextual() || t == RequirementTypeDate || t == RequirementTypeSelect || t == RequirementTypeRadio
	case ValueKindNumber:
		return t == RequirementTypeNumber
	case ValueKindBool:
		return t.IsBoolean()
	case ValueKindStringList:
		return t == RequirementTypeMultiselect
	default:
		return false
	}
}

// MarshalJSON encodes the value as its natural JSON form
func (v RequirementValue) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case ValueKindString:
		return json.Marshal(v.str)
	case ValueKindNumber:
		return []byte(v.num.String()), nil
	case ValueKindBool:
		return json.Marshal(v.bln)
	case ValueKindStringList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON infers the variant from the JSON token
func (v *RequirementValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = NullValue()
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		*v = BoolValue(b)
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("%w: array items must be strings", ErrUnsupportedValue)
		}
		*v = StringListValue(list)
	case '{':
		return fmt.Errorf("%w: objects are not allowed", ErrUnsupportedValue)
	default:
		n, err := decimal.NewFromString(string(trimmed))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		*v = NumberValue(n)
	}
	return nil
}

// Scan implements sql.Scanner for the jsonb value column
func (v *RequirementValue) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*v = NullValue()
		return nil
	case []byte:
		return v.UnmarshalJSON(s)
	case string:
		return v.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrUnsupportedValue, src)
	}
}

// Value implements driver.Valuer
func (v RequirementValue) Value() (driver.Value, error) {
	return v.MarshalJSON()
}
