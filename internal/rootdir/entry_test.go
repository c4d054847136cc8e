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
	"bytes"
	"errors"
	"testing"
)

func record(name, ext string, start, end uint16) []byte {
	rec := make([]byte, 0, EntrySize)
	rec = append(rec, name...)
	rec = append(rec, ext...)
	return append(rec, byte(start), byte(start>>8), byte(end), byte(end>>8))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		rec     []byte
		want    Entry
		wantErr error
	}{
		{
			name: "filler 0xFF",
			rec:  bytes.Repeat([]byte{0xFF}, EntrySize),
			want: Entry{IsEmpty: true, FillByte: 0xFF},
		},
		{
			name: "filler 0x00",
			rec:  make([]byte, EntrySize),
			want: Entry{IsEmpty: true, FillByte: 0x00},
		},
		{
			name: "extension without dot",
			rec:  record("BATTLE  ", "COM ", 0x0064, 0x0065),
			want: Entry{FileName: "BATTLE", FileExt: "COM", StartSector: 0x64, EndSector: 0x65},
		},
		{
			name: "extension with dot",
			rec:  record("SAYDOS  ", ".EXE", 0x0100, 0x0123),
			want: Entry{FileName: "SAYDOS", FileExt: ".EXE", StartSector: 0x100, EndSector: 0x123},
		},
		{
			name: "full width name",
			rec:  record("ABCDEFGH", ".DAT", 0x044B, 0x044B),
			want: Entry{FileName: "ABCDEFGH", FileExt: ".DAT", StartSector: 0x44B, EndSector: 0x44B},
		},
		{
			name:    "short record",
			rec:     make([]byte, 15),
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "end before start",
			rec:     record("BROKEN  ", ".BIN", 0x0200, 0x0100),
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "blank name and extension",
			rec:     record("        ", "    ", 0x0064, 0x0064),
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "path separator",
			rec:     record("A/B     ", ".BIN", 0x0064, 0x0064),
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "dot dot",
			rec:     record("..      ", "    ", 0x0064, 0x0064),
			wantErr: ErrInvalidEntry,
		},
		{
			name: "NUL padded name",
			rec:  record("SAYDOS\x00\x00", ".EXE", 0x0064, 0x0064),
			want: Entry{FileName: "SAYDOS", FileExt: ".EXE", StartSector: 0x64, EndSector: 0x64},
		},
		{
			name: "NUL padded extension",
			rec:  record("MAP     ", ".D\x00\x00", 0x0065, 0x0066),
			want: Entry{FileName: "MAP", FileExt: ".D", StartSector: 0x65, EndSector: 0x66},
		},
		{
			name: "mixed padding",
			rec:  record("AB \x00 \x00  ", "COM\x00", 0x0070, 0x0070),
			want: Entry{FileName: "AB", FileExt: "COM", StartSector: 0x70, EndSector: 0x70},
		},
		{
			name: "high byte in name",
			rec:  record("\xE5AYDOS  ", ".EXE", 0x0064, 0x0064),
			want: Entry{FileName: "\u00e5AYDOS", FileExt: ".EXE", StartSector: 0x64, EndSector: 0x64},
		},
		{
			name: "control character in name",
			rec:  record("AB\x01     ", ".BIN", 0x0064, 0x0064),
			want: Entry{FileName: "AB\x01", FileExt: ".BIN", StartSector: 0x64, EndSector: 0x64},
		},
		{
			name: "extension only",
			rec:  record("        ", ".CFG", 0x0064, 0x0064),
			want: Entry{FileExt: ".CFG", StartSector: 0x64, EndSector: 0x64},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.rec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeInvertsDecode(t *testing.T) {
	recs := [][]byte{
		bytes.Repeat([]byte{0xFF}, EntrySize),
		bytes.Repeat([]byte{0xE5}, EntrySize),
		make([]byte, EntrySize),
		record("BATTLE  ", "COM ", 0x0064, 0x0065),
		record("SAYDOS  ", ".EXE", 0x0100, 0x0123),
		record("A       ", "    ", 0x0064, 0x0064),
		record("ABCDEFGH", ".DAT", 0xFFFE, 0xFFFF),
		record("\xE5\xFFSAVE  ", ".\x80\x81\x82", 0x0064, 0x0064),
		record("        ", ".CFG", 0x0064, 0x0064),
	}
	for _, rec := range recs {
		e, err := Decode(rec)
		if err != nil {
			t.Fatalf("Decode(% x) error: %v", rec, err)
		}
		got, err := Encode(e)
		if err != nil {
			t.Fatalf("Encode(%s) error: %v", e, err)
		}
		if !bytes.Equal(got, rec) {
			t.Errorf("Encode(Decode(% x)) = % x", rec, got)
		}
	}
}

func TestIsEmptyIffUniform(t *testing.T) {
	for i := -1; i < EntrySize; i++ {
		rec := bytes.Repeat([]byte{'A'}, EntrySize)
		if i >= 0 {
			rec[i] = 'B'
		}
		e, err := Decode(rec)
		if i < 0 {
			if err != nil || !e.IsEmpty || e.FillByte != 'A' {
				t.Fatalf("uniform record not decoded as empty: %+v, %v", e, err)
			}
			continue
		}
		if err == nil && e.IsEmpty {
			t.Fatalf("record with differing byte %d decoded as empty", i)
		}
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{name: "name too long", entry: Entry{FileName: "VERYLONGNAME", FileExt: ".COM", StartSector: 1, EndSector: 1}},
		{name: "extension too long", entry: Entry{FileName: "A", FileExt: ".TOOL", StartSector: 1, EndSector: 1}},
		{name: "path separator", entry: Entry{FileName: "../X", FileExt: ".COM", StartSector: 1, EndSector: 1}},
		{name: "partial empty", entry: Entry{IsEmpty: true, FillByte: 0xFF, FileName: "GHOST"}},
		{name: "no name", entry: Entry{StartSector: 1, EndSector: 1}},
		{name: "NUL in name", entry: Entry{FileName: "A\x00B", StartSector: 1, EndSector: 1}},
		{name: "not latin-1", entry: Entry{FileName: "\u20acURO", StartSector: 1, EndSector: 1}},
		{name: "too long on disk", entry: Entry{FileName: "\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5", StartSector: 1, EndSector: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.entry); !errors.Is(err, ErrInvalidEntry) {
				t.Fatalf("Encode() error = %v, want ErrInvalidEntry", err)
			}
		})
	}
}

func TestEntryDerivedFields(t *testing.T) {
	tests := []struct {
		entry    Entry
		wantFile string
		wantSize int
	}{
		{entry: Entry{FileName: "BATTLE", FileExt: "COM", StartSector: 0x64, EndSector: 0x65}, wantFile: "BATTLE.COM", wantSize: 2},
		{entry: Entry{FileName: "BATTLE", FileExt: ".COM", StartSector: 0x64, EndSector: 0x64}, wantFile: "BATTLE.COM", wantSize: 1},
		{entry: Entry{FileName: "README", StartSector: 0x100, EndSector: 0x1FF}, wantFile: "README", wantSize: 0x100},
		{entry: EmptyEntry(0xFF), wantFile: "", wantSize: 0},
	}
	for _, tt := range tests {
		t.Run(tt.wantFile, func(t *testing.T) {
			if got := tt.entry.File(); got != tt.wantFile {
				t.Errorf("File() = %q, want %q", got, tt.wantFile)
			}
			if got := tt.entry.SizeInSectors(); got != tt.wantSize {
				t.Errorf("SizeInSectors() = %d, want %d", got, tt.wantSize)
			}
		})
	}
}

func TestEncodeLatin1(t *testing.T) {
	e := Entry{FileName: "\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5\u00c5", FileExt: ".\u00e9", StartSector: 0x64, EndSector: 0x64}
	got, err := Encode(e)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if want := record("\xC5\xC5\xC5\xC5\xC5\xC5\xC5\xC5", ".\xE9  ", 0x0064, 0x0064); !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}

func TestNULPaddingReencodedWithSpaces(t *testing.T) {
	e, err := Decode(record("SAYDOS\x00\x00", ".EXE", 0x0064, 0x0064))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Encode(e)
	if err != nil {
		t.Fatal(err)
	}
	if want := record("SAYDOS  ", ".EXE", 0x0064, 0x0064); !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}
