package formdesk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	ValueKindString     ValueKind = "string"
	ValueKindNumber     ValueKind = "number"
	ValueKindBool       ValueKind = "bool"
	ValueKindStringList ValueKind = "string_list"
)

// Value is a field value in a submission record or a field default.
// The zero Value is an empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []string
}

func StringValue(s string) Value { return Value{kind: ValueKindString, str: s} }

func NumberValue(n float64) Value { return Value{kind: ValueKindNumber, num: n} }

func BoolValue(b bool) Value { return Value{kind: ValueKindBool, b: b} }

func StringListValue(items []string) Value {
	return Value{kind: ValueKindStringList, list: slices.Clone(items)}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueKindString
	}
	return v.kind
}

// AsString returns the string payload; ok is false for other kinds.
func (v Value) AsString() (string, bool) {
	return v.str, v.Kind() == ValueKindString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == ValueKindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == ValueKindBool
}

func (v Value) AsStringList() ([]string, bool) {
	return slices.Clone(v.list), v.kind == ValueKindStringList
}

// IsEmptyString reports whether v is the empty string.
func (v Value) IsEmptyString() bool {
	return v.Kind() == ValueKindString && v.str == ""
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case ValueKindNumber:
		return v.num == other.num
	case ValueKindBool:
		return v.b == other.b
	case ValueKindStringList:
		return slices.Equal(v.list, other.list)
	default:
		return v.str == other.str
	}
}

// Interface returns the plain Go representation used for JSON and schema checks.
func (v Value) Interface() any {
	switch v.Kind() {
	case ValueKindNumber:
		return v.num
	case ValueKindBool:
		return v.b
	case ValueKindStringList:
		return slices.Clone(v.list)
	default:
		return v.str
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind() {
	case ValueKindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueKindBool:
		return strconv.FormatBool(v.b)
	case ValueKindStringList:
		return strings.Join(v.list, ", ")
	default:
		return v.str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == ValueKindStringList && v.list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("list values must contain strings only: %w", err)
		}
		if items == nil {
			items = []string{}
		}
		*v = StringListValue(items)
	case 'n':
		return fmt.Errorf("null is not a valid field value")
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("unsupported field value %s: %w", string(trimmed), err)
		}
		*v = NumberValue(n)
	}
	return nil
}

// ValueFromInterface converts decoded JSON/YAML scalars into a Value.
func ValueFromInterface(raw any) (Value, error) {
	switch x := raw.(type) {
	case Value:
		return x, nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case float64:
		return NumberValue(x), nil
	case float32:
		return NumberValue(float64(x)), nil
	case int:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return Value{}, err
		}
		return NumberValue(n), nil
	case []string:
		return StringListValue(x), nil
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list item %v is not a string", item)
			}
			items = append(items, s)
		}
		return StringListValue(items), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
