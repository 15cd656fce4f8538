// internal/models/value.go
package models

import (
	"encoding/json"
	"fmt"
)

// ValueKind discriminates the JSON scalar held by a FieldValue.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

// FieldValue holds one individually serialized applicant response. Each value
// round-trips through JSON on its own, so one import can mix strings, numbers,
// booleans and nulls across fields without a schema.
type FieldValue struct {
	Kind   ValueKind
	Str    string
	Num    float64
	Bool   bool
}

func StringValue(s string) FieldValue  { return FieldValue{Kind: KindString, Str: s} }
func NumberValue(n float64) FieldValue { return FieldValue{Kind: KindNumber, Num: n} }
func BoolValue(b bool) FieldValue      { return FieldValue{Kind: KindBool, Bool: b} }
func NullValue() FieldValue            { return FieldValue{Kind: KindNull} }

// FromAny converts a decoded JSON scalar into a FieldValue.
func FromAny(v interface{}) (FieldValue, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return StringValue(t), nil
	case float64:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return NumberValue(f), nil
	default:
		return FieldValue{}, fmt.Errorf("unsupported response value type %T", v)
	}
}

// Display renders the value for a reader-facing field list.
func (v FieldValue) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		// %v gives the shortest representation, matching how the value
		// appeared in the source JSON.
		return fmt.Sprintf("%v", v.Num)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// MarshalJSON encodes the tagged value as its native JSON scalar.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON scalar into the tagged representation.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fv, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = fv
	return nil
}
