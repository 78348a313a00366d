package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// jsonObject is a request body decoded one field at a time, so a field of
// the wrong type does not discard its siblings.
type jsonObject map[string]json.RawMessage

// bindObject decodes the body as a JSON object. Malformed or non-object
// bodies yield an empty object and are left to field validation.
func bindObject(c *gin.Context) jsonObject {
	var obj jsonObject
	if err := c.ShouldBindJSON(&obj); err != nil || obj == nil {
		return jsonObject{}
	}
	return obj
}

// object returns the nested object under key, or an empty one.
func (o jsonObject) object(key string) jsonObject {
	var nested jsonObject
	if err := json.Unmarshal(o[key], &nested); err != nil || nested == nil {
		return jsonObject{}
	}
	return nested
}

// text renders a field as a string. Strings are taken as-is, numbers and
// booleans by their literal, null and absent fields become "". Arrays and
// objects keep their compact JSON text.
func (o jsonObject) text(key string) string {
	v, ok := decodeValue(o[key])
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, o[key]); err != nil {
			return ""
		}
		return buf.String()
	}
}

// given reports whether a field carries a value a client would consider set:
// anything except absent, null, false, 0, "", [] and {}.
func (o jsonObject) given(key string) bool {
	v, ok := decodeValue(o[key])
	if !ok {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}

// givenText is text, but fields that are not given read as "".
func (o jsonObject) givenText(key string) string {
	if !o.given(key) {
		return ""
	}
	return o.text(key)
}

// flightID reads flightId. An empty value gives (nil, false). A value that is
// set but not an integer gives (nil, true): it can never match a flight.
func (o jsonObject) flightID(key string) (*int64, bool) {
	if !o.given(key) {
		return nil, false
	}
	v, _ := decodeValue(o[key])
	n, ok := v.(json.Number)
	if !ok {
		return nil, true
	}
	if id, err := n.Int64(); err == nil {
		return &id, false
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return nil, true
	}
	id := int64(f)
	return &id, false
}

func decodeValue(raw json.RawMessage) (interface{}, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}
