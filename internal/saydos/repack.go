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
	"math"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/rootdir"
	"github.com/asig/sdit/internal/util"
)

// RepackResult describes a rebuilt image.
type RepackResult struct {
	// Table is the root directory with reallocated sector ranges.
	Table rootdir.Table
	// BattleSector is the first sector of BATTLE.COM.
	BattleSector uint16
	// NextSector is the sector after the last file sector. It is the value
	// patched into BATTLE.COM.
	NextSector uint16
	// Used is the number of bytes before the padding.
	Used int
}

// Repack rebuilds the image from folder and writes it to imagePath.
func Repack(fs afero.Fs, folder, imagePath string) (*RepackResult, error) {
	in := NewFolder(fs, folder)
	if err := in.checkExists(); err != nil {
		return nil, err
	}

	log.Info().Msgf("Writing %s from %s", imagePath, folder)
	img, res, err := Build(in)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fs, imagePath, img, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", imagePath, err)
	}
	log.Info().Msgf("Wrote %s: 0x%X of 0x%X bytes used", imagePath, res.Used, len(img))
	return res, nil
}

// Build assembles an image from the artifacts in folder. Files are laid out
// back to back from FileAreaStart in root directory order, so start and end
// sectors of every entry are recomputed.
func Build(in *Folder) ([]byte, *RepackResult, error) {
	table, err := in.LoadTable()
	if err != nil {
		return nil, nil, err
	}
	if len(table) != rootdir.NumEntries {
		return nil, nil, fmt.Errorf("root directory has %d entries, want %d: %w", len(table), rootdir.NumEntries, ErrMalformedInput)
	}

	work := make([]byte, 0, disk.ImageSize)
	for s := 0; s < SystemSectors; s++ {
		sec, err := in.ReadSector(s)
		if err != nil {
			return nil, nil, err
		}
		work = append(work, sec[:]...)
	}

	var fileData []byte
	cursor := FileAreaStart
	battleSector := -1
	for i := range table {
		e := &table[i]
		if e.IsEmpty {
			continue
		}

		data, err := in.ReadFile(e.File())
		if err != nil {
			return nil, nil, err
		}
		if len(data) == 0 || len(data)%disk.SectorSize != 0 {
			return nil, nil, fmt.Errorf("file doesn't fit exactly within 0x%X byte sectors. File: %s; Size: 0x%X: %w", disk.SectorSize, e.File(), len(data), ErrSizeMismatch)
		}

		start := cursor
		cursor += len(data)/disk.SectorSize - 1
		if cursor > math.MaxUint16 {
			return nil, nil, fmt.Errorf("%s ends at sector 0x%X, beyond the addressable range: %w", e.File(), cursor, ErrSizeMismatch)
		}
		e.StartSector = uint16(start)
		e.EndSector = uint16(cursor)
		cursor++

		if e.File() == BattleFile {
			battleSector = start
		}
		fileData = append(fileData, data...)
		log.Debug().Msgf("Allocated %s (%d sectors)", e, e.SizeInSectors())
	}
	if battleSector < 0 {
		return nil, nil, fmt.Errorf("no %s in root directory: %w", BattleFile, ErrMissingArtifact)
	}

	dir, err := table.Encode()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	work = append(work, dir...)
	work = append(work, fileData...)

	for s := BattleFirstSector; s <= BattleLastSector; s++ {
		sec, err := in.ReadSector(s)
		if err != nil {
			return nil, nil, err
		}
		work = append(work, sec[:]...)
	}

	ptr := battleSector*disk.SectorSize + BattlePointerOffset
	if ptr+2 > len(work) {
		return nil, nil, fmt.Errorf("battle pointer at 0x%X lies beyond the image data (0x%X bytes): %w", ptr, len(work), ErrSizeMismatch)
	}
	util.WriteLEUint16(work, ptr, uint16(cursor))
	log.Debug().Msgf("Patched battle pointer at 0x%X: %s starts at 0x%04X, battle data at 0x%04X", ptr, BattleFile, battleSector, cursor)

	if len(work) > disk.ImageSize {
		return nil, nil, fmt.Errorf("image data needs 0x%X bytes, image holds 0x%X: %w", len(work), disk.ImageSize, ErrSizeMismatch)
	}
	img := util.Repeat(PadByte, disk.ImageSize)
	copy(img, work)

	return img, &RepackResult{
		Table:        table,
		BattleSector: uint16(battleSector),
		NextSector:   uint16(cursor),
		Used:         len(work),
	}, nil
}
