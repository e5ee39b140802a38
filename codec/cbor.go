package codec

import "github.com/fxamacker/cbor/v2"

// CBOR is the default Codec, backed by a canonical CBOR encoding. It is
// deterministic: encoding the same value twice always produces the same
// bytes, which matters because values feed directly into content hashing.
type CBOR struct {
	encMode cbor.EncMode
}

// NewCBOR builds a CBOR codec configured for canonical, deterministic
// output (sorted map keys, shortest-form integers).
func NewCBOR() *CBOR {
	opts := cbor.CanonicalEncOptions()
	encMode, err := opts.EncMode()
	if err != nil {
		// CanonicalEncOptions is a fixed, known-good configuration; EncMode
		// only fails for invalid option combinations.
		panic(err)
	}
	return &CBOR{encMode: encMode}
}

func (c *CBOR) Marshal(v any) ([]byte, error) {
	return c.encMode.Marshal(v)
}

func (c *CBOR) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

var _ Codec = (*CBOR)(nil)
