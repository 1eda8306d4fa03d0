package codec

import "encoding/json"

// JSON is the encoding/json codec. A non-empty Indent produces indented
// output, which keeps manifests readable.
type JSON struct {
	Indent string
}

func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return "json" }
