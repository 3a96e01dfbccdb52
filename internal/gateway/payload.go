package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// payloadMessage extracts a human readable message from an error body:
// "message", then "detail", then "error", then the first field error of a
// {"field": ["msg"]} body. Unrecognized bodies yield "".
func payloadMessage(body []byte) string {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	for _, key := range []string{"message", "detail", "error"} {
		if raw, ok := doc[key]; ok {
			if s := stringValue(raw); s != "" {
				return s
			}
		}
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := stringValue(doc[k]); s != "" {
			if k == "non_field_errors" {
				return s
			}
			return fmt.Sprintf("%s: %s", k, s)
		}
	}
	return ""
}

// stringValue returns a JSON string, or the first string of a JSON array.
func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if s := stringValue(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// listElements returns the elements of a bare array or of a
// {"results": [...]} envelope. Any other shape is an empty list.
func listElements(body []byte) []json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	var items []json.RawMessage
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &items); err != nil {
			return nil
		}
	case '{':
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil
		}
		if err := json.Unmarshal(envelope.Results, &items); err != nil {
			return nil
		}
	}
	return items
}
