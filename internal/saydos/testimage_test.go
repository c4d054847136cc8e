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

package saydos

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/rootdir"
	"github.com/asig/sdit/internal/util"
)

type testFile struct {
	name    string
	ext     string
	sectors int
}

// testFiles fill the file area exactly up to the battle data, which is how
// the shipped game disk is laid out.
var testFiles = []testFile{
	{name: "SAYDOS", ext: ".EXE", sectors: 400},
	{name: "BATTLE", ext: ".COM", sectors: 100},
	{name: "MAP", ext: ".DAT", sectors: 500},
}

// fileSector returns the synthetic contents of sector k of file f.
func fileSector(f, k int) []byte {
	b := make([]byte, disk.SectorSize)
	for i := range b {
		b[i] = byte(f*31 + k + i)
	}
	return b
}

func battleSector(s int) []byte {
	return bytes.Repeat([]byte{byte(0xB0 + s%16)}, disk.SectorSize)
}

// newTestImage builds a complete image holding files.
func newTestImage(t *testing.T, files []testFile) []byte {
	t.Helper()

	img := util.Repeat(PadByte, disk.ImageSize)
	for s := 0; s < SystemSectors; s++ {
		copy(img[s*disk.SectorSize:(s+1)*disk.SectorSize], bytes.Repeat([]byte{byte(0x10 + s)}, disk.SectorSize))
	}
	// The first directory sector is padded with 0xFF, the others with 0x00.
	for s := rootdir.FirstSector + 1; s < rootdir.EndSector; s++ {
		copy(img[s*disk.SectorSize:(s+1)*disk.SectorSize], make([]byte, disk.SectorSize))
	}

	cursor := FileAreaStart
	battleStart := -1
	for i, f := range files {
		rec, err := rootdir.Encode(rootdir.Entry{
			FileName:    f.name,
			FileExt:     f.ext,
			StartSector: uint16(cursor),
			EndSector:   uint16(cursor + f.sectors - 1),
		})
		if err != nil {
			t.Fatal(err)
		}
		copy(img[rootdir.FirstSector*disk.SectorSize+i*rootdir.EntrySize:], rec)
		for k := 0; k < f.sectors; k++ {
			copy(img[(cursor+k)*disk.SectorSize:], fileSector(i, k))
		}
		if f.name+f.ext == BattleFile {
			battleStart = cursor
		}
		cursor += f.sectors
	}

	for s := BattleFirstSector; s <= BattleLastSector; s++ {
		copy(img[s*disk.SectorSize:], battleSector(s))
	}
	if battleStart >= 0 {
		util.WriteLEUint16(img, battleStart*disk.SectorSize+BattlePointerOffset, uint16(cursor))
	}
	return img
}

// unpackTestImage writes img to /disk.img and unpacks it to /work.
func unpackTestImage(t *testing.T, img []byte) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/disk.img", img, 0644); err != nil {
		t.Fatal(err)
	}
	if err := fs.MkdirAll("/work", 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(fs, "/disk.img", "/work"); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	return fs
}
