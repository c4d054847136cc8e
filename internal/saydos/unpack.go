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

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/rootdir"
	"github.com/asig/sdit/internal/util"
)

// Unpack explodes the image at imagePath into folder, which must exist:
// every sector goes to sectors/, every file of the root directory to files/
// and the root directory itself to "root directory.json".
func Unpack(fs afero.Fs, imagePath, folder string) (rootdir.Table, error) {
	out := NewFolder(fs, folder)
	if err := out.checkExists(); err != nil {
		return nil, err
	}
	ok, err := afero.Exists(fs, imagePath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("file doesn't exist: %s: %w", imagePath, ErrMissingPath)
	}

	log.Info().Msgf("Dumping %s to %s", imagePath, folder)
	d, err := disk.Open(fs, imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return UnpackDisk(d, out)
}

// UnpackDisk writes the artifacts of d to out.
func UnpackDisk(d *disk.Disk, out *Folder) (rootdir.Table, error) {
	if err := out.prepare(); err != nil {
		return nil, err
	}

	for i, sec := range d.Sectors() {
		if err := out.WriteSector(i, sec); err != nil {
			return nil, fmt.Errorf("dump sector %d: %w", i, err)
		}
	}
	log.Info().Msgf("Dumped %d sectors", d.NumSectors())

	table, err := rootdir.ReadDirectory(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	used := util.NewBitSet(d.NumSectors())
	files := 0
	for _, e := range table {
		if e.IsEmpty {
			continue
		}
		data, err := d.Range(int(e.StartSector), e.SizeInSectors())
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", e, ErrMalformedInput, err)
		}
		if err := out.WriteFile(e.File(), data); err != nil {
			return nil, fmt.Errorf("dump file %s: %w", e.File(), err)
		}
		log.Debug().Msgf("Dumped %s (%d sectors)", e, e.SizeInSectors())
		used.SetRange(int(e.StartSector), int(e.EndSector))
		files++
	}
	log.Info().Msgf("%d files allocating %d sectors found", files, used.Count())

	if err := out.SaveTable(table); err != nil {
		return nil, fmt.Errorf("save root directory: %w", err)
	}
	return table, nil
}
