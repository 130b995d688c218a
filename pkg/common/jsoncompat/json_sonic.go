//go:build !jsonv2

package jsoncompat

import "github.com/bytedance/sonic"

// api keeps integers as int64 when decoding into interface values so
// record fields hold the same kind they were written with.
var api = sonic.Config{
	EscapeHTML:       true,
	CompactMarshaler: true,
	UseInt64:         true,
}.Froze()

// Marshal encodes with sonic when the jsonv2 build tag is absent.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal decodes with sonic when the jsonv2 build tag is absent.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }
