package tree

import (
	"fmt"

	"github.com/prokopschield/udp-storage-server-2023/hasher"
	"github.com/prokopschield/udp-storage-server-2023/serializer"
)

// leafPair is the canonical wire tuple a Leaf's hash resolves to: the
// serialized key handle and the serialized value handle.
type leafPair struct {
	KeyRef string
	ValRef string
}

// Leaf is a key/value pair stored by handle rather than by value. KeyU32
// and ValU32 are checksums of the handles themselves, not of the
// underlying key/value bytes, so two leaves never need to touch the
// lake to compare surrogate order.
type Leaf struct {
	KeyRef string
	ValRef string
	KeyU32 uint32
	ValU32 uint32

	ser *serializer.Serializer

	keyBytes    []byte
	keyResolved bool
	valBytes    []byte
	valResolved bool
}

// NewLeaf serializes key and value through ser and builds the resulting
// Leaf.
func NewLeaf(ser *serializer.Serializer, key, value any) (*Leaf, error) {
	keyRef, err := ser.Serialize(key)
	if err != nil {
		return nil, fmt.Errorf("tree: serialize key: %w", err)
	}

	valRef, err := ser.Serialize(value)
	if err != nil {
		return nil, fmt.Errorf("tree: serialize value: %w", err)
	}

	return &Leaf{
		KeyRef: keyRef,
		ValRef: valRef,
		KeyU32: refSurrogate(keyRef),
		ValU32: refSurrogate(valRef),
		ser:    ser,
	}, nil
}

// refSurrogate is the u32 surrogate key derived from a handle string: the
// lake's rolling checksum over the handle's own bytes.
func refSurrogate(ref string) uint32 {
	sum := hasher.Checksum32([]byte(ref), uint32(len(ref)))
	return uint32(sum[0]) | uint32(sum[1])<<8 | uint32(sum[2])<<16 | uint32(sum[3])<<24
}

// LeafFromIdentifier resolves handle to a (key_ref, val_ref) pair and
// rebuilds the Leaf it describes.
func LeafFromIdentifier(handle string, ser *serializer.Serializer) (*Leaf, error) {
	var pair leafPair
	if err := ser.Deserialize(handle, &pair); err != nil {
		return nil, fmt.Errorf("tree: load leaf %q: %w", handle, err)
	}

	return &Leaf{
		KeyRef: pair.KeyRef,
		ValRef: pair.ValRef,
		KeyU32: refSurrogate(pair.KeyRef),
		ValU32: refSurrogate(pair.ValRef),
		ser:    ser,
	}, nil
}

// Hash returns the handle under which (key_ref, val_ref) is or would be
// stored.
func (l *Leaf) Hash() (string, error) {
	handle, err := l.ser.Serialize(leafPair{KeyRef: l.KeyRef, ValRef: l.ValRef})
	if err != nil {
		return "", fmt.Errorf("tree: hash leaf: %w", err)
	}
	return handle, nil
}

// KeyBytes resolves and caches the leaf's raw encoded key.
func (l *Leaf) KeyBytes() ([]byte, error) {
	if l.keyResolved {
		return l.keyBytes, nil
	}
	data, err := l.ser.Resolve(l.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("tree: resolve key: %w", err)
	}
	l.keyBytes = data
	l.keyResolved = true
	return data, nil
}

// ValueBytes resolves and caches the leaf's raw encoded value.
func (l *Leaf) ValueBytes() ([]byte, error) {
	if l.valResolved {
		return l.valBytes, nil
	}
	data, err := l.ser.Resolve(l.ValRef)
	if err != nil {
		return nil, fmt.Errorf("tree: resolve value: %w", err)
	}
	l.valBytes = data
	l.valResolved = true
	return data, nil
}

// Key decodes the leaf's key into out.
func (l *Leaf) Key(out any) error {
	data, err := l.KeyBytes()
	if err != nil {
		return err
	}
	return l.ser.Codec().Unmarshal(data, out)
}

// Value decodes the leaf's value into out.
func (l *Leaf) Value(out any) error {
	data, err := l.ValueBytes()
	if err != nil {
		return err
	}
	return l.ser.Codec().Unmarshal(data, out)
}
