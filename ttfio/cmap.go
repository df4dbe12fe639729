// fontmerge - merge supplementary glyphs into TrueType fonts
// Copyright (C) 2026  The fontmerge authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ttfio

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/tdewolff/parse/v2"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/consolig/fontmerge/font"
)

// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
func decodeCMap(data []byte, order *font.GlyphOrder) (*font.CMapTable, error) {
	table, err := cmap.Decode(data)
	if err != nil {
		return nil, &MalformedFileError{Table: "cmap", Err: err}
	}

	r := parse.NewBinaryReaderBytes(data)
	if r.Len() < 4 {
		return nil, malformed("cmap", "table too short")
	}
	r.ReadUint16() // version
	numTables := int64(r.ReadUint16())
	if r.Len() < 8*numTables {
		return nil, malformed("cmap", "table too short")
	}

	res := &font.CMapTable{}
	for range numTables {
		platformID := r.ReadUint16()
		encodingID := r.ReadUint16()
		offset := int64(r.ReadUint32())
		if offset+2 > int64(len(data)) {
			return nil, malformed("cmap", "invalid subtable offset %d", offset)
		}
		body := data[offset:]
		format := binary.BigEndian.Uint16(body)

		var sub *font.CMapSubtable
		switch format {
		case 0:
			sub, err = decodeFormat0(body, order)
		case 4:
			if platformID == font.PlatformMacintosh {
				break
			}
			key := cmap.Key{PlatformID: platformID, EncodingID: encodingID}
			sub, err = decodeFormat4(table, key, body, order)
		case 6:
			sub, err = decodeFormat6(body, order)
		case 12:
			sub, err = decodeFormat12(body, order)
		}
		if err != nil {
			return nil, err
		}

		if sub == nil {
			raw := font.RawSubtable{
				PlatformID: platformID,
				EncodingID: encodingID,
				Data:       subtableBytes(body, format),
			}
			res.Unparsed = append(res.Unparsed, raw)
			continue
		}
		sub.Key.Format = format
		sub.Key.PlatformID = platformID
		sub.Key.EncodingID = encodingID
		res.Subtables = append(res.Subtables, sub)
	}

	if err := res.CheckKeys(); err != nil {
		return nil, err
	}
	return res, nil
}

// subtableBytes returns the bytes of a subtable in a format not decoded by
// this package.  The length field is located at a format-specific position.
func subtableBytes(body []byte, format uint16) []byte {
	n := len(body)
	switch format {
	case 2, 4, 6:
		if len(body) >= 4 {
			n = int(binary.BigEndian.Uint16(body[2:]))
		}
	case 8, 10, 12, 13:
		if len(body) >= 8 {
			n = int(binary.BigEndian.Uint32(body[4:]))
		}
	case 14:
		if len(body) >= 6 {
			n = int(binary.BigEndian.Uint32(body[2:]))
		}
	}
	if n > len(body) {
		n = len(body)
	}
	return append([]byte(nil), body[:n]...)
}

func newSubtable(language uint32) *font.CMapSubtable {
	return &font.CMapSubtable{
		Key: font.SubtableKey{Language: language},
		Map: make(map[uint32]string),
	}
}

func setCode(sub *font.CMapSubtable, code uint32, gid glyph.ID, order *font.GlyphOrder) error {
	if gid == 0 {
		return nil
	}
	name := order.Name(gid)
	if name == "" {
		return malformed("cmap", "code 0x%04x maps to invalid glyph %d", code, gid)
	}
	sub.Map[code] = name
	return nil
}

func decodeFormat0(body []byte, order *font.GlyphOrder) (*font.CMapSubtable, error) {
	if len(body) < 6+256 {
		return nil, malformed("cmap", "format 0 subtable too short")
	}
	sub := newSubtable(uint32(binary.BigEndian.Uint16(body[4:])))
	for code, gid := range body[6 : 6+256] {
		err := setCode(sub, uint32(code), glyph.ID(gid), order)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func decodeFormat4(table cmap.Table, key cmap.Key, body []byte, order *font.GlyphOrder) (*font.CMapSubtable, error) {
	if len(body) < 6 {
		return nil, malformed("cmap", "format 4 subtable too short")
	}
	decoded, err := table.Get(key)
	if err != nil {
		return nil, &MalformedFileError{Table: "cmap", Err: err}
	}

	sub := newSubtable(uint32(binary.BigEndian.Uint16(body[4:])))
	if f4, ok := decoded.(cmap.Format4); ok {
		for code, gid := range f4 {
			err := setCode(sub, uint32(code), gid, order)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil
	}

	low, high := decoded.CodeRange()
	for code := low; code <= high && code <= 0xFFFF; code++ {
		err := setCode(sub, uint32(code), decoded.Lookup(code), order)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func decodeFormat6(body []byte, order *font.GlyphOrder) (*font.CMapSubtable, error) {
	r := parse.NewBinaryReaderBytes(body)
	if r.Len() < 10 {
		return nil, malformed("cmap", "format 6 subtable too short")
	}
	r.ReadUint16() // format
	r.ReadUint16() // length
	sub := newSubtable(uint32(r.ReadUint16()))
	firstCode := uint32(r.ReadUint16())
	entryCount := int64(r.ReadUint16())
	if r.Len() < 2*entryCount || firstCode+uint32(entryCount) > 0x10000 {
		return nil, malformed("cmap", "invalid format 6 subtable")
	}
	for i := range uint32(entryCount) {
		err := setCode(sub, firstCode+i, glyph.ID(r.ReadUint16()), order)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func decodeFormat12(body []byte, order *font.GlyphOrder) (*font.CMapSubtable, error) {
	r := parse.NewBinaryReaderBytes(body)
	if r.Len() < 16 {
		return nil, malformed("cmap", "format 12 subtable too short")
	}
	r.ReadUint16() // format
	r.ReadUint16() // reserved
	r.ReadUint32() // length
	sub := newSubtable(r.ReadUint32())
	numGroups := int64(r.ReadUint32())
	if r.Len() < 12*numGroups {
		return nil, malformed("cmap", "format 12 subtable too short")
	}

	prevEnd := int64(-1)
	for range numGroups {
		startCode := r.ReadUint32()
		endCode := r.ReadUint32()
		startGID := r.ReadUint32()
		if int64(startCode) <= prevEnd || endCode < startCode || endCode > 0x10FFFF ||
			int(startGID)+int(endCode-startCode) > font.MaxGlyphs {
			return nil, malformed("cmap", "invalid format 12 group")
		}
		prevEnd = int64(endCode)
		for code := startCode; code <= endCode; code++ {
			gid := glyph.ID(startGID + code - startCode)
			if err := setCode(sub, code, gid, order); err != nil {
				return nil, err
			}
		}
	}
	return sub, nil
}

// encodeCMap encodes the "cmap" table.  Glyph names are converted to glyph
// IDs using the given glyph order.
func encodeCMap(t *font.CMapTable, order *font.GlyphOrder) ([]byte, error) {
	if err := t.CheckKeys(); err != nil {
		return nil, err
	}

	type record struct {
		PlatformID uint16
		EncodingID uint16
		Language   uint32
		Data       []byte
	}
	var records []record
	for _, sub := range t.Subtables {
		data, err := encodeSubtable(sub, order)
		if err != nil {
			return nil, err
		}
		records = append(records, record{
			PlatformID: sub.Key.PlatformID,
			EncodingID: sub.Key.EncodingID,
			Language:   sub.Key.Language,
			Data:       data,
		})
	}
	for _, raw := range t.Unparsed {
		records = append(records, record{
			PlatformID: raw.PlatformID,
			EncodingID: raw.EncodingID,
			Data:       raw.Data,
		})
	}
	slices.SortStableFunc(records, func(a, b record) int {
		if c := cmp.Compare(a.PlatformID, b.PlatformID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.EncodingID, b.EncodingID); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})

	w := parse.NewBinaryWriter(nil)
	w.WriteUint16(0) // version
	w.WriteUint16(uint16(len(records)))

	// Identical subtables are stored only once.
	offset := uint32(4 + 8*len(records))
	var body [][]byte
	offsets := make([]uint32, len(records))
	for i, rec := range records {
		found := false
		pos := uint32(4 + 8*len(records))
		for _, prev := range body {
			if bytes.Equal(prev, rec.Data) {
				offsets[i] = pos
				found = true
				break
			}
			pos += uint32(len(prev))
		}
		if !found {
			offsets[i] = offset
			body = append(body, rec.Data)
			offset += uint32(len(rec.Data))
		}
	}
	for i, rec := range records {
		w.WriteUint16(rec.PlatformID)
		w.WriteUint16(rec.EncodingID)
		w.WriteUint32(offsets[i])
	}
	for _, data := range body {
		w.WriteBytes(data)
	}
	return w.Bytes(), nil
}

func encodeSubtable(sub *font.CMapSubtable, order *font.GlyphOrder) ([]byte, error) {
	gids := make(map[uint32]glyph.ID, len(sub.Map))
	for code, name := range sub.Map {
		gid, ok := order.ID(name)
		if !ok {
			return nil, &font.MissingTableError{
				Table: font.TagGlyphOrder,
				Field: "glyph \"" + name + "\" used in cmap",
			}
		}
		gids[code] = gid
	}
	codes := sub.Codes()

	key := sub.Key
	switch key.Format {
	case 0, 4, 6:
		if key.Language > 0xFFFF {
			return nil, malformed("cmap", "invalid language %d for %s", key.Language, key)
		}
	}

	switch key.Format {
	case 0:
		f0 := &cmap.Format0{}
		for _, code := range codes {
			if code > 0xFF || gids[code] > 0xFF {
				return nil, malformed("cmap", "code 0x%04x does not fit into %s", code, key)
			}
			f0.Data[code] = byte(gids[code])
		}
		return f0.Encode(uint16(key.Language)), nil

	case 4:
		f4 := cmap.Format4{}
		for _, code := range codes {
			if code > 0xFFFF {
				return nil, malformed("cmap", "code 0x%04x does not fit into %s", code, key)
			}
			f4[uint16(code)] = gids[code]
		}
		return f4.Encode(uint16(key.Language)), nil

	case 6:
		return encodeFormat6(codes, gids, key)

	case 12:
		return encodeFormat12(codes, gids, key), nil

	default:
		return nil, malformed("cmap", "cannot encode %s", key)
	}
}

func encodeFormat6(codes []uint32, gids map[uint32]glyph.ID, key font.SubtableKey) ([]byte, error) {
	var first, count uint32
	if len(codes) > 0 {
		first = codes[0]
		last := codes[len(codes)-1]
		if last > 0xFFFF {
			return nil, malformed("cmap", "code 0x%04x does not fit into %s", last, key)
		}
		count = last - first + 1
	}

	w := parse.NewBinaryWriter(make([]byte, 0, 10+2*count))
	w.WriteUint16(6)
	w.WriteUint16(uint16(10 + 2*count))
	w.WriteUint16(uint16(key.Language))
	w.WriteUint16(uint16(first))
	w.WriteUint16(uint16(count))
	for code := first; code < first+count; code++ {
		w.WriteUint16(uint16(gids[code]))
	}
	return w.Bytes(), nil
}

func encodeFormat12(codes []uint32, gids map[uint32]glyph.ID, key font.SubtableKey) []byte {
	type group struct {
		start, end uint32
		gid        glyph.ID
	}
	var groups []group
	for _, code := range codes {
		gid := gids[code]
		if n := len(groups); n > 0 {
			g := &groups[n-1]
			if code == g.end+1 && gid == g.gid+glyph.ID(code-g.start) {
				g.end = code
				continue
			}
		}
		groups = append(groups, group{start: code, end: code, gid: gid})
	}

	length := 16 + 12*len(groups)
	w := parse.NewBinaryWriter(make([]byte, 0, length))
	w.WriteUint16(12)
	w.WriteUint16(0)
	w.WriteUint32(uint32(length))
	w.WriteUint32(key.Language)
	w.WriteUint32(uint32(len(groups)))
	for _, g := range groups {
		w.WriteUint32(g.start)
		w.WriteUint32(g.end)
		w.WriteUint32(uint32(g.gid))
	}
	return w.Bytes()
}
