// Package attribute provides the typed scalar values carried next to a
// geometry column, such as a per-row z or a category label.
//
// Values can be:
//
//   - Null: attribute.Null()
//   - Int: attribute.Int(2024)
//   - Float: attribute.Float(3.14)
//   - String: attribute.String("tech")
//   - Bool: attribute.Bool(true)
//   - Array: attribute.Array([]attribute.Value{...})
//
// Example:
//
//	doc := attribute.Document{
//	    "z":     attribute.Int(0),
//	    "label": attribute.String("river"),
//	}
//
// Untyped input (for example rows decoded from JSON) goes through FromAny and
// DocumentFromAny. A Schema can restrict the kind of selected fields.
//
// Columns of values have a compact binary form (MarshalColumn) used by the
// persistence layer.
package attribute
