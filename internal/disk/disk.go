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

package disk

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

const (
	SectorSize = 0x200

	// ImageSize is the size of every SayDos disk image.
	ImageSize = 0xB4000
	// ImageSectors is the number of sectors in a full image.
	ImageSectors = ImageSize / SectorSize
)

var (
	ErrMalformedInput = errors.New("malformed disk image")
	ErrOutOfRange     = errors.New("sector out of range")
)

type Sector [SectorSize]byte

// Split partitions buf into consecutive sectors. The length of buf must be a
// multiple of SectorSize.
func Split(buf []byte) ([]Sector, error) {
	if len(buf)%SectorSize != 0 {
		return nil, fmt.Errorf("split: %d bytes is not a multiple of the sector size 0x%X: %w", len(buf), SectorSize, ErrMalformedInput)
	}
	sectors := make([]Sector, len(buf)/SectorSize)
	for i := range sectors {
		copy(sectors[i][:], buf[i*SectorSize:])
	}
	return sectors, nil
}

// Join concatenates sectors in order.
func Join(sectors []Sector) []byte {
	buf := make([]byte, 0, len(sectors)*SectorSize)
	for i := range sectors {
		buf = append(buf, sectors[i][:]...)
	}
	return buf
}

// Disk is an in-memory disk image. Sector numbers are 0-based.
type Disk struct {
	sectors []Sector
}

func New(buf []byte) (*Disk, error) {
	sectors, err := Split(buf)
	if err != nil {
		return nil, err
	}
	return &Disk{sectors: sectors}, nil
}

// Open reads the image at imagePath into memory.
func Open(fs afero.Fs, imagePath string) (*Disk, error) {
	buf, err := afero.ReadFile(fs, imagePath)
	if err != nil {
		return nil, err
	}
	d, err := New(buf)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", imagePath, err)
	}
	return d, nil
}

// NumSectors returns the number of sectors of the disk.
func (d *Disk) NumSectors() int {
	return len(d.sectors)
}

// Sectors returns all sectors in order. The slice is shared with d.
func (d *Disk) Sectors() []Sector {
	return d.sectors
}

func (d *Disk) GetSector(n int) (Sector, error) {
	if n < 0 || n >= len(d.sectors) {
		return Sector{}, fmt.Errorf("GetSector: invalid sector number %d (not in 0..%d): %w", n, len(d.sectors)-1, ErrOutOfRange)
	}
	return d.sectors[n], nil
}

func (d *Disk) MustGetSector(n int) Sector {
	sec, err := d.GetSector(n)
	if err != nil {
		panic(fmt.Sprintf("MustGetSector: failed to read sector %d: %v", n, err))
	}
	return sec
}

// Range returns the contents of count sectors starting at start.
func (d *Disk) Range(start, count int) ([]byte, error) {
	if start < 0 || count < 0 || start+count > len(d.sectors) {
		return nil, fmt.Errorf("Range: sectors %d..%d exceed disk of %d sectors: %w", start, start+count-1, len(d.sectors), ErrOutOfRange)
	}
	return Join(d.sectors[start : start+count]), nil
}

// Bytes returns the whole image.
func (d *Disk) Bytes() []byte {
	return Join(d.sectors)
}
