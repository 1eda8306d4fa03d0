// Package bitmap provides roaring-backed row sets and the group index used to
// split a dataset by attribute value.
package bitmap
