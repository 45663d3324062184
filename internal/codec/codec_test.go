// ABOUTME: Tests for the gateway container codec
// ABOUTME: Covers per-game layouts, round-trips, preservation and malformed input

package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildContainer assembles a raw container by hand so tests do not depend on Encode.
func buildContainer(t *testing.T, game GameID, header []byte, records ...[]byte) []byte {
	t.Helper()
	l, err := LayoutFor(game)
	require.NoError(t, err)
	require.Len(t, header, l.HeaderLen)

	buf := bytes.NewBuffer(nil)
	buf.Write(header)
	count := make([]byte, l.CountWidth)
	writeCount(count, l.CountWidth, uint32(len(records)))
	buf.Write(count)
	for _, r := range records {
		require.Len(t, r, l.Stride)
		buf.Write(r)
	}
	return buf.Bytes()
}

func record(t *testing.T, game GameID, name, addr string, flags byte, reserved []byte) []byte {
	t.Helper()
	l, err := LayoutFor(game)
	require.NoError(t, err)
	rec := make([]byte, l.Stride)
	copy(rec, name)
	copy(rec[l.NameWidth:], addr)
	rec[l.flagOffset()] = flags
	copy(rec[l.flagOffset()+1:], reserved)
	return rec
}

func TestLayouts_StrideCoversFields(t *testing.T) {
	for _, g := range Games {
		l, err := LayoutFor(g)
		require.NoError(t, err)
		assert.Greater(t, l.ReservedLen(), 0, "game %s", g)
		assert.Contains(t, []int{2, 4}, l.CountWidth, "game %s", g)
	}
}

func TestDecode_Starcraft(t *testing.T) {
	header := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	raw := buildContainer(t, Starcraft, header,
		record(t, Starcraft, "U.S. East", "useast.battle.net", 0x01, []byte{1, 2, 3}),
		record(t, Starcraft, "Europe", "europe.battle.net", 0x00, nil),
	)

	gotHeader, entries, err := Decode(raw, Starcraft)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	require.Len(t, entries, 2)

	assert.Equal(t, "U.S. East", entries[0].Name)
	assert.Equal(t, "useast.battle.net", entries[0].Address)
	assert.True(t, entries[0].Default)
	assert.Equal(t, []byte{1, 2, 3}, entries[0].Reserved)

	assert.Equal(t, "Europe", entries[1].Name)
	assert.False(t, entries[1].Default)
	assert.Equal(t, []byte{0, 0, 0}, entries[1].Reserved)
}

func TestDecode_Warcraft3WideCount(t *testing.T) {
	header := bytes.Repeat([]byte{0x7F}, 16)
	raw := buildContainer(t, Warcraft3, header,
		record(t, Warcraft3, "Northrend", "northrend.battle.net", 0x00, nil),
	)

	l, _ := LayoutFor(Warcraft3)
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(raw[l.HeaderLen:]))

	gotHeader, entries, err := Decode(raw, Warcraft3)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	require.Len(t, entries, 1)
	assert.Equal(t, "northrend.battle.net", entries[0].Address)
}

func TestDecode_EmptyList(t *testing.T) {
	raw := buildContainer(t, Diablo2, make([]byte, 8))

	header, entries, err := Decode(raw, Diablo2)
	require.NoError(t, err)
	assert.Len(t, header, 8)
	assert.Empty(t, entries)
}

func TestDecode_PreservesUnknownFlagBits(t *testing.T) {
	raw := buildContainer(t, Diablo2, make([]byte, 8),
		record(t, Diablo2, "Asia", "asia.battle.net", 0xA1, nil),
	)

	_, entries, err := Decode(raw, Diablo2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Default)
	assert.Equal(t, byte(0xA0), entries[0].Flags)

	out, err := Encode(make([]byte, 8), entries, Diablo2)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestDecode_FullWidthName(t *testing.T) {
	name := string(bytes.Repeat([]byte{'n'}, 32))
	raw := buildContainer(t, Starcraft, make([]byte, 4),
		record(t, Starcraft, name, "host", 0, nil),
	)

	_, entries, err := Decode(raw, Starcraft)
	require.NoError(t, err)
	assert.Equal(t, name, entries[0].Name)
}

func TestDecode_CountExceedsBuffer(t *testing.T) {
	raw := buildContainer(t, Starcraft, make([]byte, 4),
		record(t, Starcraft, "one", "one.example", 0, nil),
	)
	// Claim three records while only one is present.
	binary.BigEndian.PutUint16(raw[4:], 3)

	_, _, err := Decode(raw, Starcraft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestDecode_TrailingBytes(t *testing.T) {
	raw := buildContainer(t, Starcraft, make([]byte, 4))
	raw = append(raw, 0x00)

	_, _, err := Decode(raw, Starcraft)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestDecode_TooShortForHeader(t *testing.T) {
	_, _, err := Decode([]byte{1, 2, 3}, Warcraft3)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, _, err = Decode(nil, Starcraft)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestDecode_UnknownGame(t *testing.T) {
	_, _, err := Decode(make([]byte, 64), GameID("brood-war"))
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestRoundTrip_AllGames(t *testing.T) {
	for _, g := range Games {
		t.Run(string(g), func(t *testing.T) {
			l, err := LayoutFor(g)
			require.NoError(t, err)

			header := make([]byte, l.HeaderLen)
			for i := range header {
				header[i] = byte(i*7 + 3)
			}
			reserved := bytes.Repeat([]byte{0x5A}, l.ReservedLen())

			raw := buildContainer(t, g, header,
				record(t, g, "Lordaeron", "uswest.battle.net", 0x00, reserved),
				record(t, g, "Azeroth", "useast.battle.net", 0x41, nil),
				record(t, g, "Kalimdor", "asia.battle.net", 0x00, reserved),
			)

			h, entries, err := Decode(raw, g)
			require.NoError(t, err)

			encoded, err := Encode(h, entries, g)
			require.NoError(t, err)
			assert.Equal(t, raw, encoded)

			h2, entries2, err := Decode(encoded, g)
			require.NoError(t, err)
			assert.Equal(t, h, h2)
			assert.Equal(t, entries, entries2)
		})
	}
}

func TestRoundTrip_KeepsFieldPadding(t *testing.T) {
	rec := record(t, Starcraft, "East", "useast.battle.net", 0x01, []byte{1, 2, 3})
	copy(rec[5:], "stale")        // garbage after the name's NUL
	copy(rec[32+18:], "old.host") // and after the address's NUL
	raw := buildContainer(t, Starcraft, []byte{1, 2, 3, 4}, rec)

	h, entries, err := Decode(raw, Starcraft)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "East", entries[0].Name)
	assert.Equal(t, "useast.battle.net", entries[0].Address)
	assert.Len(t, entries[0].NamePad, 27)
	assert.Len(t, entries[0].AddrPad, 14)

	encoded, err := Encode(h, entries, Starcraft)
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestEncode_EditedFieldDropsPadding(t *testing.T) {
	rec := record(t, Starcraft, "East", "host", 0x00, nil)
	copy(rec[5:], "stale")
	raw := buildContainer(t, Starcraft, make([]byte, 4), rec)

	h, entries, err := Decode(raw, Starcraft)
	require.NoError(t, err)
	require.NotNil(t, entries[0].NamePad)

	entries[0].Name = "West Coast"
	encoded, err := Encode(h, entries, Starcraft)
	require.NoError(t, err)

	_, again, err := Decode(encoded, Starcraft)
	require.NoError(t, err)
	assert.Equal(t, "West Coast", again[0].Name)
	assert.Nil(t, again[0].NamePad)
	assert.Equal(t, make([]byte, 22), encoded[6+10:6+32])
}

func TestEncode_NewEntryZeroesReserved(t *testing.T) {
	out, err := Encode(make([]byte, 4), []Entry{NewEntry("East", "1.2.3.4", true)}, Starcraft)
	require.NoError(t, err)

	_, entries, err := Decode(out, Starcraft)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "East", entries[0].Name)
	assert.Equal(t, "1.2.3.4", entries[0].Address)
	assert.True(t, entries[0].Default)
	assert.Equal(t, []byte{0, 0, 0}, entries[0].Reserved)
}

func TestEncode_HeaderSizeMismatch(t *testing.T) {
	_, err := Encode(make([]byte, 5), nil, Starcraft)
	assert.ErrorIs(t, err, ErrHeaderSize)
}

func TestEncode_FieldOverflow(t *testing.T) {
	long := string(bytes.Repeat([]byte{'x'}, 33))
	_, err := Encode(make([]byte, 4), []Entry{NewEntry(long, "host", false)}, Starcraft)
	assert.ErrorIs(t, err, ErrFieldOverflow)

	_, err = Encode(make([]byte, 4), []Entry{NewEntry("name", long, false)}, Starcraft)
	assert.ErrorIs(t, err, ErrFieldOverflow)
}

func TestEncode_NulInField(t *testing.T) {
	_, err := Encode(make([]byte, 4), []Entry{NewEntry("a\x00b", "host", false)}, Starcraft)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestEncode_ReservedSizeMismatch(t *testing.T) {
	e := NewEntry("name", "host", false)
	e.Reserved = []byte{1}
	_, err := Encode(make([]byte, 4), []Entry{e}, Starcraft)
	assert.ErrorIs(t, err, ErrReservedSize)
}

func TestParseGameID(t *testing.T) {
	tests := []struct {
		in   string
		want GameID
	}{
		{"sc", Starcraft},
		{"StarCraft", Starcraft},
		{"d2", Diablo2},
		{"diablo2", Diablo2},
		{"w3", Warcraft3},
		{" war3 ", Warcraft3},
	}
	for _, tt := range tests {
		got, err := ParseGameID(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseGameID("wow")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestEmptyHeader(t *testing.T) {
	h, err := EmptyHeader(Warcraft3)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), h)

	_, err = EmptyHeader("nope")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestEntry_CloneIsDeep(t *testing.T) {
	e := Entry{Name: "a", Reserved: []byte{1, 2}}
	c := e.Clone()
	c.Reserved[0] = 9
	assert.Equal(t, byte(1), e.Reserved[0])
	assert.True(t, e.Equal(Entry{Name: "a", Reserved: []byte{1, 2}}))
	assert.False(t, e.Equal(c))

	p := Entry{Name: "a", NamePad: []byte{'x'}, AddrPad: []byte{'y'}}
	pc := p.Clone()
	pc.NamePad[0] = 'z'
	assert.Equal(t, byte('x'), p.NamePad[0])
	assert.False(t, p.Equal(pc))
}
