/*
 * This file is part of the SayDos Disk Image Tool ("sdit")
 * Copyright (C) 2025 Andreas Signer <asigner@gmail.com>
 *
 * sdit is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * sdit is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with sdit.  If not, see <https://www.gnu.org/licenses/>.
 */

package rootdir

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/asig/sdit/internal/util"
)

const (
	EntrySize = 0x10

	nameLength = 8
	extLength  = 4

	ofsName  = 0
	ofsExt   = 8
	ofsStart = 12
	ofsEnd   = 14

	padByte = ' '
	// Trailing bytes dropped from name fields on decode.
	padChars = " \x00"
)

var ErrInvalidEntry = errors.New("invalid root directory entry")

/*
	Root directory record (16 bytes):
		name:  ARRAY 8 OF CHAR	// Offset: 0, space padded
		ext:   ARRAY 4 OF CHAR	// Offset: 8, space padded, usually ".XXX"
		start: UINT16			// Offset: 12, first sector
		end:   UINT16			// Offset: 14, last sector (inclusive)

	A slot whose 16 bytes are all equal is unused; the fill byte varies
	across the directory and has to be reproduced as is. Name bytes are
	mapped 1:1 to runes (ISO 8859-1), some disks pad them with NULs.
*/

// Entry is a decoded root directory record.
type Entry struct {
	IsEmpty  bool
	FillByte byte

	FileName    string
	FileExt     string
	StartSector uint16
	EndSector   uint16
}

// EmptyEntry returns an unused slot filled with fill.
func EmptyEntry(fill byte) Entry {
	return Entry{IsEmpty: true, FillByte: fill}
}

// SizeInSectors is the number of sectors covered by [StartSector, EndSector].
func (e Entry) SizeInSectors() int {
	if e.IsEmpty {
		return 0
	}
	return int(e.EndSector) - int(e.StartSector) + 1
}

// File returns the host file name of the entry. The extension field usually
// carries its own dot; one is inserted when it does not.
func (e Entry) File() string {
	switch {
	case e.FileExt == "":
		return e.FileName
	case strings.HasPrefix(e.FileExt, "."):
		return e.FileName + e.FileExt
	default:
		return e.FileName + "." + e.FileExt
	}
}

func (e Entry) String() string {
	if e.IsEmpty {
		return fmt.Sprintf("<empty 0x%02X>", e.FillByte)
	}
	return fmt.Sprintf("%s [0x%04X..0x%04X]", e.File(), e.StartSector, e.EndSector)
}

// latin1 maps every byte to the rune of the same value, so any name field
// survives the trip through JSON.
var latin1 = charmap.ISO8859_1

func decodeField(b []byte) string {
	s, _ := latin1.NewDecoder().String(util.StringFromBytes(b, padChars))
	return s
}

func encodeField(s string) (string, error) {
	return latin1.NewEncoder().String(s)
}

func checkField(what, s string, width int) error {
	enc, err := encodeField(s)
	if err != nil {
		return fmt.Errorf("%s %q is not representable on disk: %w", what, s, ErrInvalidEntry)
	}
	if len(enc) > width {
		return fmt.Errorf("%s too long: %q (%d > %d): %w", what, s, utf8.RuneCountInString(s), width, ErrInvalidEntry)
	}
	if strings.ContainsAny(s, "/\\\x00") {
		return fmt.Errorf("%s %q contains a path separator or NUL: %w", what, s, ErrInvalidEntry)
	}
	return nil
}

// Validate checks that e is either completely empty or completely populated
// and that File() can be used as a host file name.
func (e Entry) Validate() error {
	if e.IsEmpty {
		if e.FileName != "" || e.FileExt != "" || e.StartSector != 0 || e.EndSector != 0 {
			return fmt.Errorf("empty entry carries file data (%q, %q, 0x%04X, 0x%04X): %w", e.FileName, e.FileExt, e.StartSector, e.EndSector, ErrInvalidEntry)
		}
		return nil
	}
	if err := checkField("file name", e.FileName, nameLength); err != nil {
		return err
	}
	if err := checkField("file extension", e.FileExt, extLength); err != nil {
		return err
	}
	switch e.File() {
	case "", ".", "..":
		return fmt.Errorf("unusable file name %q: %w", e.File(), ErrInvalidEntry)
	}
	if e.EndSector < e.StartSector {
		return fmt.Errorf("%s: end sector before start sector: %w", e, ErrInvalidEntry)
	}
	return nil
}

// Decode parses a 16-byte root directory record.
func Decode(rec []byte) (Entry, error) {
	if len(rec) != EntrySize {
		return Entry{}, fmt.Errorf("decode: record has %d bytes, want %d: %w", len(rec), EntrySize, ErrInvalidEntry)
	}
	if util.AllEqual(rec) {
		return EmptyEntry(rec[0]), nil
	}

	e := Entry{
		FileName:    decodeField(rec[ofsName : ofsName+nameLength]),
		FileExt:     decodeField(rec[ofsExt : ofsExt+extLength]),
		StartSector: util.ReadLEUint16(rec, ofsStart),
		EndSector:   util.ReadLEUint16(rec, ofsEnd),
	}
	if err := e.Validate(); err != nil {
		return Entry{}, fmt.Errorf("decode: %w", err)
	}
	return e, nil
}

// Encode serializes e into a 16-byte root directory record.
func Encode(e Entry) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if e.IsEmpty {
		return util.Repeat(e.FillByte, EntrySize), nil
	}

	name, _ := encodeField(e.FileName)
	ext, _ := encodeField(e.FileExt)
	rec := make([]byte, EntrySize)
	util.WriteFixedLengthString(rec, ofsName, nameLength, name, padByte)
	util.WriteFixedLengthString(rec, ofsExt, extLength, ext, padByte)
	util.WriteLEUint16(rec, ofsStart, e.StartSector)
	util.WriteLEUint16(rec, ofsEnd, e.EndSector)
	return rec, nil
}
