package song

import "encoding/json"

// Key is either an explicit key name or unset.
// The zero value is unset.
type Key struct {
	name string
	set  bool
}

// Unset is the key of a song whose source did not name one.
var Unset = Key{}

// Explicit returns a key fixed to name. An empty name yields Unset.
func Explicit(name string) Key {
	if name == "" {
		return Unset
	}
	return Key{name: name, set: true}
}

// Value returns the key name and whether it is set.
func (k Key) Value() (string, bool) {
	return k.name, k.set
}

// IsSet reports whether the key is explicit.
func (k Key) IsSet() bool { return k.set }

// String returns the key name, or "" when unset.
func (k Key) String() string { return k.name }

// MarshalJSON encodes an explicit key as a string and an unset key as null.
func (k Key) MarshalJSON() ([]byte, error) {
	if !k.set {
		return []byte("null"), nil
	}
	return json.Marshal(k.name)
}

// UnmarshalJSON accepts a string or null.
func (k *Key) UnmarshalJSON(data []byte) error {
	var name *string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == nil {
		*k = Unset
		return nil
	}
	*k = Explicit(*name)
	return nil
}
