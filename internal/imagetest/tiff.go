// Package imagetest builds synthetic PNG, JPEG and EXIF fixtures for tests.
// The builders emit just enough structure for header scanning and tag
// decoding; pixel data is filler.
package imagetest

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// TIFF field types used by the fixture builder.
const (
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeUndefined = 7
)

// Sub-IFD pointer tags linked from IFD0.
const (
	exifPointerTag = 0x8769
	gpsPointerTag  = 0x8825
)

// Rat is a numerator/denominator pair for RATIONAL entries.
type Rat struct {
	Num uint32
	Den uint32
}

// Entry is a single IFD entry in a synthetic EXIF block.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte // little-endian encoded value bytes
}

// ASCII builds a NUL-terminated string entry.
func ASCII(tag uint16, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Tag: tag, Type: typeASCII, Count: uint32(len(data)), Data: data}
}

// Short builds a SHORT entry from one or more 16-bit values.
func Short(tag uint16, vals ...uint16) Entry {
	buf := &bytes.Buffer{}
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return Entry{Tag: tag, Type: typeShort, Count: uint32(len(vals)), Data: buf.Bytes()}
}

// Long builds a LONG entry from one or more 32-bit values.
func Long(tag uint16, vals ...uint32) Entry {
	buf := &bytes.Buffer{}
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return Entry{Tag: tag, Type: typeLong, Count: uint32(len(vals)), Data: buf.Bytes()}
}

// Rational builds a RATIONAL entry from one or more num/den pairs.
func Rational(tag uint16, vals ...Rat) Entry {
	buf := &bytes.Buffer{}
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v.Num)
		binary.Write(buf, binary.LittleEndian, v.Den)
	}
	return Entry{Tag: tag, Type: typeRational, Count: uint32(len(vals)), Data: buf.Bytes()}
}

// Undefined builds an UNDEFINED entry carrying raw bytes.
func Undefined(tag uint16, data []byte) Entry {
	return Entry{Tag: tag, Type: typeUndefined, Count: uint32(len(data)), Data: data}
}

// GPSIFD builds a GPS sub-IFD with latitude/longitude rational sequences and
// their hemisphere references.
func GPSIFD(lat []Rat, latRef string, lon []Rat, lonRef string) []Entry {
	return []Entry{
		ASCII(0x0001, latRef),
		Rational(0x0002, lat...),
		ASCII(0x0003, lonRef),
		Rational(0x0004, lon...),
	}
}

// BuildEXIF encodes a little-endian TIFF block with the given IFDs. Non-empty
// exifIFD and gpsIFD sub-tables are linked from IFD0 through their standard
// pointer tags. Values longer than four bytes are placed in a trailing data
// area with offsets fixed up accordingly.
func BuildEXIF(ifd0, exifIFD, gpsIFD []Entry) []byte {
	ifd0 = append([]Entry{}, ifd0...)

	ifdSize := func(n int) uint32 { return uint32(2 + 12*n + 4) }

	ifd0Count := len(ifd0)
	if len(exifIFD) > 0 {
		ifd0Count++
	}
	if len(gpsIFD) > 0 {
		ifd0Count++
	}

	ifd0Off := uint32(8)
	exifOff := ifd0Off + ifdSize(ifd0Count)
	gpsOff := exifOff
	if len(exifIFD) > 0 {
		gpsOff += ifdSize(len(exifIFD))
	}
	dataOff := gpsOff
	if len(gpsIFD) > 0 {
		dataOff += ifdSize(len(gpsIFD))
	}

	if len(exifIFD) > 0 {
		ifd0 = append(ifd0, Long(exifPointerTag, exifOff))
	}
	if len(gpsIFD) > 0 {
		ifd0 = append(ifd0, Long(gpsPointerTag, gpsOff))
	}
	sortEntries(ifd0)
	sortEntries(exifIFD)
	sortEntries(gpsIFD)

	var external bytes.Buffer
	encodeIFD := func(entries []Entry) []byte {
		buf := &bytes.Buffer{}
		binary.Write(buf, binary.LittleEndian, uint16(len(entries)))
		for _, e := range entries {
			binary.Write(buf, binary.LittleEndian, e.Tag)
			binary.Write(buf, binary.LittleEndian, e.Type)
			binary.Write(buf, binary.LittleEndian, e.Count)
			if len(e.Data) <= 4 {
				value := make([]byte, 4)
				copy(value, e.Data)
				buf.Write(value)
			} else {
				binary.Write(buf, binary.LittleEndian, dataOff+uint32(external.Len()))
				external.Write(e.Data)
				if external.Len()%2 == 1 {
					external.WriteByte(0)
				}
			}
		}
		binary.Write(buf, binary.LittleEndian, uint32(0)) // no next IFD
		return buf.Bytes()
	}

	ifd0Bytes := encodeIFD(ifd0)
	var exifBytes, gpsBytes []byte
	if len(exifIFD) > 0 {
		exifBytes = encodeIFD(exifIFD)
	}
	if len(gpsIFD) > 0 {
		gpsBytes = encodeIFD(gpsIFD)
	}

	out := &bytes.Buffer{}
	out.WriteString("II")
	binary.Write(out, binary.LittleEndian, uint16(42))
	binary.Write(out, binary.LittleEndian, ifd0Off)
	out.Write(ifd0Bytes)
	out.Write(exifBytes)
	out.Write(gpsBytes)
	out.Write(external.Bytes())
	return out.Bytes()
}

// sortEntries orders entries by tag ID as TIFF requires.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Tag < entries[j].Tag })
}
