//go:build jsonv2

package jsoncompat

import json "encoding/json/v2"

// Marshal encodes with encoding/json/v2 when the jsonv2 build tag is present.
func Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes with encoding/json/v2 when the jsonv2 build tag is
// present. Numbers in interface values decode as float64.
func Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
