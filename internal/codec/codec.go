// ABOUTME: Generic decode/encode of gateway containers driven by a per-game Layout
// ABOUTME: Header and reserved record bytes are carried through unchanged

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Decode splits a raw container into its preserved header and its entries.
func Decode(raw []byte, game GameID) ([]byte, []Entry, error) {
	l, err := LayoutFor(game)
	if err != nil {
		return nil, nil, err
	}

	prefix := l.HeaderLen + l.CountWidth
	if len(raw) < prefix {
		return nil, nil, fmt.Errorf("%w: %s container is %d bytes, need at least %d",
			ErrMalformedRecord, game, len(raw), prefix)
	}

	count := readCount(raw[l.HeaderLen:prefix], l.CountWidth)
	want := int64(prefix) + int64(count)*int64(l.Stride)
	if int64(len(raw)) != want {
		return nil, nil, fmt.Errorf("%w: %s container declares %d records (%d bytes), buffer has %d bytes",
			ErrMalformedRecord, game, count, want, len(raw))
	}

	header := bytes.Clone(raw[:l.HeaderLen])
	entries := make([]Entry, 0, count)
	for i := 0; i < int(count); i++ {
		off := prefix + i*l.Stride
		entries = append(entries, decodeRecord(raw[off:off+l.Stride], l))
	}

	return header, entries, nil
}

// Encode lays out header and entries in the game's container format.
func Encode(header []byte, entries []Entry, game GameID) ([]byte, error) {
	l, err := LayoutFor(game)
	if err != nil {
		return nil, err
	}
	if len(header) != l.HeaderLen {
		return nil, fmt.Errorf("%w: %s wants %d bytes, got %d", ErrHeaderSize, game, l.HeaderLen, len(header))
	}
	if uint64(len(entries)) > maxCount(l.CountWidth) {
		return nil, fmt.Errorf("%w: %d records do not fit a %d-byte count", ErrFieldOverflow, len(entries), l.CountWidth)
	}

	prefix := l.HeaderLen + l.CountWidth
	buf := make([]byte, prefix+len(entries)*l.Stride)
	copy(buf, header)
	writeCount(buf[l.HeaderLen:prefix], l.CountWidth, uint32(len(entries)))

	for i, e := range entries {
		off := prefix + i*l.Stride
		if err := encodeRecord(buf[off:off+l.Stride], e, l); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return buf, nil
}

func decodeRecord(rec []byte, l Layout) Entry {
	flags := rec[l.flagOffset()]
	name, namePad := cString(rec[:l.NameWidth])
	addr, addrPad := cString(rec[l.NameWidth:l.flagOffset()])
	return Entry{
		Name:     name,
		Address:  addr,
		Default:  flags&l.DefaultMask != 0,
		Flags:    flags &^ l.DefaultMask,
		Reserved: bytes.Clone(rec[l.flagOffset()+1:]),
		NamePad:  namePad,
		AddrPad:  addrPad,
	}
}

func encodeRecord(rec []byte, e Entry, l Layout) error {
	if err := putField(rec[:l.NameWidth], "name", e.Name, e.NamePad); err != nil {
		return err
	}
	if err := putField(rec[l.NameWidth:l.flagOffset()], "address", e.Address, e.AddrPad); err != nil {
		return err
	}

	flags := e.Flags &^ l.DefaultMask
	if e.Default {
		flags |= l.DefaultMask
	}
	rec[l.flagOffset()] = flags

	if len(e.Reserved) != 0 {
		if len(e.Reserved) != l.ReservedLen() {
			return fmt.Errorf("%w: want %d bytes, got %d", ErrReservedSize, l.ReservedLen(), len(e.Reserved))
		}
		copy(rec[l.flagOffset()+1:], e.Reserved)
	}
	return nil
}

// putField writes s NUL-padded into dst; s may fill dst exactly. pad is
// restored after the terminator when it fits the remaining room exactly.
func putField(dst []byte, field, s string, pad []byte) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: %s %q", ErrInvalidField, field, s)
	}
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %s is %d bytes, max %d", ErrFieldOverflow, field, len(s), len(dst))
	}
	copy(dst, s)
	if len(pad) > 0 && len(s)+1+len(pad) == len(dst) {
		copy(dst[len(s)+1:], pad)
	}
	return nil
}

// cString splits a NUL-terminated field into its value and the bytes after
// the terminator. The tail is nil when it holds only zeros.
func cString(b []byte) (string, []byte) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return string(b), nil
	}
	tail := b[i+1:]
	if bytes.Count(tail, []byte{0}) == len(tail) {
		return string(b[:i]), nil
	}
	return string(b[:i]), bytes.Clone(tail)
}

func readCount(b []byte, width int) uint32 {
	if width == 2 {
		return uint32(binary.BigEndian.Uint16(b))
	}
	return binary.BigEndian.Uint32(b)
}

func writeCount(b []byte, width int, n uint32) {
	if width == 2 {
		binary.BigEndian.PutUint16(b, uint16(n))
		return
	}
	binary.BigEndian.PutUint32(b, n)
}

func maxCount(width int) uint64 {
	if width == 2 {
		return 0xFFFF
	}
	return 0xFFFFFFFF
}
