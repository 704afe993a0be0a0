// Package upstream is the client side of the dealership CRM backend's REST
// contract: a bearer-authenticated JSON client plus tolerant envelope parsing.
// The backend has wrapped list payloads inconsistently across its lifetime
// (data.<field>, data.data.<field>, bare arrays), so extraction lives here
// once instead of being re-derived per caller.
package upstream

import (
	"bytes"
	"encoding/json"
)

// Records extracts the list of raw records named by field from an arbitrarily
// wrapped payload. Resolution order, first array wins:
//
//  1. data.<field>
//  2. data.data.<field>
//  3. <field>
//  4. the payload itself
//  5. data
//
// Never fails: any malformed or empty payload yields an empty slice.
func Records(raw json.RawMessage, field string) []json.RawMessage {
	paths := [][]string{
		{"data", field},
		{"data", "data", field},
		{field},
		nil,
		{"data"},
	}
	for _, path := range paths {
		node, ok := Lookup(raw, path...)
		if !ok {
			continue
		}
		if arr, isArray := asArray(node); isArray {
			return arr
		}
	}
	return nil
}

// Object extracts a single record named by field, tolerating the same wrapper
// drift as Records: data.<field>, then <field>, then data, then the payload
// itself when it is a bare object.
func Object(raw json.RawMessage, field string) json.RawMessage {
	paths := [][]string{
		{"data", field},
		{field},
		{"data"},
		nil,
	}
	for _, path := range paths {
		node, ok := Lookup(raw, path...)
		if !ok {
			continue
		}
		if isObject(node) {
			return node
		}
	}
	return nil
}

// Lookup walks object members along path. It reports false as soon as a step
// is not an object or the key is absent.
func Lookup(raw json.RawMessage, path ...string) (json.RawMessage, bool) {
	node := raw
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(node, &obj); err != nil {
			return nil, false
		}
		child, ok := obj[key]
		if !ok {
			return nil, false
		}
		node = child
	}
	if len(bytes.TrimSpace(node)) == 0 {
		return nil, false
	}
	return node, true
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err != nil {
		return nil, false
	}
	if arr == nil {
		arr = []json.RawMessage{}
	}
	return arr, true
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
