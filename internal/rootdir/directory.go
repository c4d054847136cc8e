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
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/util"
)

const (
	// FirstSector is the first sector of the root directory.
	FirstSector = 10
	// EndSector is the first sector after the root directory, which is also
	// where file data starts.
	EndSector = 100

	EntriesPerSector = disk.SectorSize / EntrySize
	NumEntries       = (EndSector - FirstSector) * EntriesPerSector
	Size             = NumEntries * EntrySize
)

// ReadDirectory decodes all root directory slots of d in order.
func ReadDirectory(d *disk.Disk) (Table, error) {
	if d.NumSectors() < EndSector {
		return nil, fmt.Errorf("ReadDirectory: disk has %d sectors, root directory ends at %d: %w", d.NumSectors(), EndSector, disk.ErrOutOfRange)
	}

	table := make(Table, 0, NumEntries)
	for s := FirstSector; s < EndSector; s++ {
		sec := d.MustGetSector(s)
		for i := 0; i < EntriesPerSector; i++ {
			rec := sec[i*EntrySize : (i+1)*EntrySize]
			e, err := Decode(rec)
			if err != nil {
				log.Debug().Msgf("Root directory sector %04d, slot %02d:\n%s", s, i, util.HexDump(rec, 0, EntrySize))
				return nil, fmt.Errorf("ReadDirectory: sector %d, slot %d: %w", s, i, err)
			}
			if !e.IsEmpty {
				log.Debug().Msgf("Root directory sector %04d, slot %02d: %s", s, i, e)
			}
			table = append(table, e)
		}
	}
	return table, nil
}
