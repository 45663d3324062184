// ABOUTME: Gateway entry value object shared by the codec, list store and coordinator
// ABOUTME: Carries the opaque flag bits and reserved bytes of its source record

package codec

import "bytes"

// Entry is one gateway row of a game's list.
type Entry struct {
	Name    string
	Address string
	Default bool

	// Flags holds the flag byte bits other than the default bit.
	Flags byte
	// Reserved holds the record's trailing reserved bytes. Empty means zeros.
	Reserved []byte

	// NamePad and AddrPad hold whatever followed the terminating NUL of the
	// name and address fields, when that was not all zeros. They are written
	// back only while the value still leaves exactly that much room.
	NamePad []byte
	AddrPad []byte
}

// NewEntry builds an entry with no preserved record bytes.
func NewEntry(name, address string, isDefault bool) Entry {
	return Entry{Name: name, Address: address, Default: isDefault}
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	if e.Reserved != nil {
		e.Reserved = bytes.Clone(e.Reserved)
	}
	if e.NamePad != nil {
		e.NamePad = bytes.Clone(e.NamePad)
	}
	if e.AddrPad != nil {
		e.AddrPad = bytes.Clone(e.AddrPad)
	}
	return e
}

// Equal compares two entries field by field, treating nil and empty
// byte runs as equal.
func (e Entry) Equal(o Entry) bool {
	return e.Name == o.Name &&
		e.Address == o.Address &&
		e.Default == o.Default &&
		e.Flags == o.Flags &&
		bytes.Equal(e.Reserved, o.Reserved) &&
		bytes.Equal(e.NamePad, o.NamePad) &&
		bytes.Equal(e.AddrPad, o.AddrPad)
}
