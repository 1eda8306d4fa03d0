package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the github.com/goccy/go-json codec. Record strings are written
// without HTML escaping.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.MarshalNoEscape(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

func (GoJSON) Name() string { return "go-json" }
