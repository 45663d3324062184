package codec

import "errors"

var (
	ErrUnknownGame     = errors.New("codec: unknown game")
	ErrMalformedRecord = errors.New("codec: malformed gateway record")
	ErrHeaderSize      = errors.New("codec: header size does not match layout")
	ErrFieldOverflow   = errors.New("codec: field exceeds layout width")
	ErrReservedSize    = errors.New("codec: reserved bytes do not match layout")
	ErrInvalidField    = errors.New("codec: field contains a NUL byte")
)
