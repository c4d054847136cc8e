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
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/rootdir"
	"github.com/asig/sdit/internal/util"
)

// Volume is a read-only view of the files in an image.
type Volume struct {
	disk  *disk.Disk
	table rootdir.Table
}

func OpenVolume(fs afero.Fs, imagePath string) (*Volume, error) {
	ok, err := afero.Exists(fs, imagePath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("file doesn't exist: %s: %w", imagePath, ErrMissingPath)
	}
	d, err := disk.Open(fs, imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return NewVolume(d)
}

func NewVolume(d *disk.Disk) (*Volume, error) {
	table, err := rootdir.ReadDirectory(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return &Volume{disk: d, table: table}, nil
}

func (v *Volume) Table() rootdir.Table {
	return v.table
}

// Files returns the populated root directory entries.
func (v *Volume) Files() []rootdir.Entry {
	return v.table.Files()
}

func (v *Volume) Lookup(name string) (rootdir.Entry, bool) {
	i, ok := v.table.Find(name)
	if !ok {
		return rootdir.Entry{}, false
	}
	return v.table[i], true
}

// ReadFile returns all sectors of the named file.
func (v *Volume) ReadFile(name string) ([]byte, error) {
	e, ok := v.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("ReadFile %s: %w", name, os.ErrNotExist)
	}
	data, err := v.disk.Range(int(e.StartSector), e.SizeInSectors())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return data, nil
}

// BattlePointer returns the sector stored in BATTLE.COM at which the battle
// data continues.
func (v *Volume) BattlePointer() (uint16, error) {
	e, ok := v.Lookup(BattleFile)
	if !ok {
		return 0, fmt.Errorf("no %s in root directory: %w", BattleFile, ErrMissingArtifact)
	}
	ptr := int(e.StartSector)*disk.SectorSize + BattlePointerOffset
	img := v.disk.Bytes()
	if ptr+2 > len(img) {
		return 0, fmt.Errorf("battle pointer at 0x%X lies beyond the image: %w", ptr, ErrSizeMismatch)
	}
	return util.ReadLEUint16(img, ptr), nil
}
