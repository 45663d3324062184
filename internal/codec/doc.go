// Package codec decodes and encodes the gateway records stored in the
// Battle.net preference containers of Starcraft, Diablo II and Warcraft III.
//
// # Container Layout
//
// Every container has the same outer shape:
//
//	+----------------+-------------+---------------------------+
//	| header (opaque)| record count| count * fixed-size record |
//	+----------------+-------------+---------------------------+
//
// The header length, the width of the count field and the record stride
// differ per game and are described by a Layout. Integers are big-endian.
//
// A record holds a NUL-padded name, a NUL-padded address, a flag byte whose
// low bit marks the default gateway, and a run of reserved bytes:
//
//	| name[NameWidth] | addr[AddrWidth] | flags | reserved... |
//
// # Preservation
//
// The header and the reserved bytes are never interpreted. Decode captures
// them and Encode writes them back unchanged, as it does for the flag bits
// other than the default bit. Leftover bytes after a name or address
// terminator are kept too, and restored while the value keeps its length.
//
// # Errors
//
//   - ErrUnknownGame: the game id has no layout
//   - ErrMalformedRecord: the buffer length disagrees with the count field
//   - ErrHeaderSize, ErrFieldOverflow, ErrReservedSize, ErrInvalidField:
//     Encode input does not fit the layout
package codec
