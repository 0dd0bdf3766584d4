package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AttrKind discriminates the value kinds an attribute can hold.
type AttrKind int

const (
	KindAbsent AttrKind = iota
	KindNumber
	KindText
	KindTextList
)

// AttrValue is a tagged union over the attribute value kinds the scorer
// understands: number, text, list-of-text, or absent. The zero value is
// absent.
type AttrValue struct {
	kind AttrKind
	num  float64
	text string
	list []string
}

func Number(v float64) AttrValue {
	return AttrValue{kind: KindNumber, num: v}
}

func Text(s string) AttrValue {
	return AttrValue{kind: KindText, text: s}
}

func TextList(items ...string) AttrValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AttrValue{kind: KindTextList, list: cp}
}

func (v AttrValue) Kind() AttrKind { return v.kind }

func (v AttrValue) Number() float64 { return v.num }

func (v AttrValue) Text() string { return v.text }

func (v AttrValue) List() []string {
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// LowerSet returns the list items lower-cased and de-duplicated.
func (v AttrValue) LowerSet() map[string]bool {
	set := make(map[string]bool, len(v.list))
	for _, it := range v.list {
		set[strings.ToLower(it)] = true
	}
	return set
}

// Equal is the strict-equality fallback used when two values are of
// mismatched or otherwise incomparable kinds.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	case KindTextList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON renders the native JSON shape: number, string, string array,
// or null for absent.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	case KindTextList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *AttrValue) UnmarshalJSON(b []byte) error {
	parsed, err := FromJSONValue(decodeJSONValue(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeJSONValue(b []byte) any {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	return raw
}

// FromJSONValue converts a decoded JSON value (float64, string, []any of
// strings, or nil) into an AttrValue. Unsupported shapes are an error so the
// boundary can reject them before the engine runs.
func FromJSONValue(raw any) (AttrValue, error) {
	switch t := raw.(type) {
	case nil:
		return AttrValue{}, nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case string:
		return Text(t), nil
	case []string:
		return TextList(t...), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, it := range t {
			s, ok := it.(string)
			if !ok {
				return AttrValue{}, fmt.Errorf("attribute list items must be strings, got %T", it)
			}
			items = append(items, s)
		}
		return TextList(items...), nil
	case bool:
		// Booleans survive as text so the equality fallback still works.
		if t {
			return Text("true"), nil
		}
		return Text("false"), nil
	default:
		return AttrValue{}, fmt.Errorf("unsupported attribute value type %T", raw)
	}
}
