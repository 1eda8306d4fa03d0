// Package codec holds the text codecs used for exploded dataset records and
// persisted manifests.
//
// Both built-in codecs write plain JSON, so bytes written by one decode with
// the other. Coordinate arrays use Coords, which keeps NaN part separators.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by the name its Name method reports.
func ByName(name string) (Codec, bool) {
	switch name {
	case JSON{}.Name():
		return JSON{}, true
	case GoJSON{}.Name():
		return GoJSON{}, true
	default:
		return nil, false
	}
}
