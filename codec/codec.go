// Package codec abstracts the encoding used for user keys and values
// stored in a tree, so callers can swap in a format of their choosing
// without touching the tree or serializer packages.
package codec

// Codec marshals and unmarshals arbitrary Go values to and from bytes.
// Implementations must round-trip: Unmarshal(Marshal(v), &out) produces a
// value equal to v.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}
