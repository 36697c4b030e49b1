package property

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TriBool is a boolean that may be unknown. The zero value is Unknown.
type TriBool int8

const (
	Unknown TriBool = iota
	True
	False
)

// CoerceTriBool maps the boolean encodings seen in provider payloads onto a TriBool.
//
// nil is Unknown; native booleans pass through; numbers are true when non-zero;
// numeric strings follow the number rule; other strings match "true"/"false"
// case-insensitively. Anything else is False.
func CoerceTriBool(v any) TriBool {
	switch t := v.(type) {
	case nil:
		return Unknown
	case bool:
		return fromBool(t)
	case *bool:
		if t == nil {
			return Unknown
		}
		return fromBool(*t)
	case float64:
		return fromBool(t != 0)
	case float32:
		return fromBool(t != 0)
	case int:
		return fromBool(t != 0)
	case int64:
		return fromBool(t != 0)
	case int32:
		return fromBool(t != 0)
	case json.Number:
		return coerceString(string(t))
	case string:
		return coerceString(t)
	default:
		return False
	}
}

func coerceString(s string) TriBool {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromBool(f != 0)
	}
	switch strings.ToLower(s) {
	case "true":
		return True
	case "false":
		return False
	}
	return False
}

func fromBool(b bool) TriBool {
	if b {
		return True
	}
	return False
}

// Known reports whether the value is True or False.
func (t TriBool) Known() bool { return t == True || t == False }

// Ptr returns nil for Unknown, otherwise a pointer to the boolean value.
func (t TriBool) Ptr() *bool {
	if !t.Known() {
		return nil
	}
	b := t == True
	return &b
}

// TriBoolFromPtr is the inverse of Ptr.
func TriBoolFromPtr(b *bool) TriBool {
	if b == nil {
		return Unknown
	}
	return fromBool(*b)
}

func (t TriBool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

func (t TriBool) MarshalJSON() ([]byte, error) {
	if !t.Known() {
		return []byte("null"), nil
	}
	return []byte(t.String()), nil
}

func (t *TriBool) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*t = CoerceTriBool(v)
	return nil
}
