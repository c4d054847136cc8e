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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is the root directory in slot order.
type Table []Entry

type entryJSON struct {
	FileName      string `json:"fileName,omitempty"`
	FileExt       string `json:"fileExt,omitempty"`
	StartSector   string `json:"startSector,omitempty"`
	EndSector     string `json:"endSector,omitempty"`
	SizeInSectors string `json:"sizeInSectors,omitempty"`
	IsEmpty       bool   `json:"isEmpty"`
	ByteFill      string `json:"byteFill,omitempty"`
}

func formatHex(v uint64, digits int) string {
	return fmt.Sprintf("0x%0*X", digits, v)
}

func parseHex(s string, bitSize int) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return strconv.ParseUint(s, 16, bitSize)
}

// MarshalJSON writes numbers as hex strings. sizeInSectors is informational
// only and ignored by UnmarshalJSON.
func (e Entry) MarshalJSON() ([]byte, error) {
	j := entryJSON{IsEmpty: e.IsEmpty}
	if e.IsEmpty {
		j.ByteFill = formatHex(uint64(e.FillByte), 2)
	} else {
		j.FileName = e.FileName
		j.FileExt = e.FileExt
		j.StartSector = formatHex(uint64(e.StartSector), 4)
		j.EndSector = formatHex(uint64(e.EndSector), 4)
		j.SizeInSectors = formatHex(uint64(e.SizeInSectors()), 2)
	}
	return json.Marshal(j)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var j entryJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	var res Entry
	if j.IsEmpty {
		if j.ByteFill == "" {
			return fmt.Errorf("empty entry without byteFill: %w", ErrInvalidEntry)
		}
		fill, err := parseHex(j.ByteFill, 8)
		if err != nil {
			return fmt.Errorf("byteFill %q: %w", j.ByteFill, err)
		}
		res = EmptyEntry(byte(fill))
		res.FileName = j.FileName
		res.FileExt = j.FileExt
	} else {
		if j.StartSector == "" || j.EndSector == "" {
			return fmt.Errorf("entry %q without startSector/endSector: %w", j.FileName, ErrInvalidEntry)
		}
		start, err := parseHex(j.StartSector, 16)
		if err != nil {
			return fmt.Errorf("%s startSector %q: %w", j.FileName, j.StartSector, err)
		}
		end, err := parseHex(j.EndSector, 16)
		if err != nil {
			return fmt.Errorf("%s endSector %q: %w", j.FileName, j.EndSector, err)
		}
		res = Entry{
			FileName:    j.FileName,
			FileExt:     j.FileExt,
			StartSector: uint16(start),
			EndSector:   uint16(end),
		}
	}
	if err := res.Validate(); err != nil {
		return err
	}
	*e = res
	return nil
}

// Load reads a table written by Save.
func Load(r io.Reader) (Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("load root directory: %w", err)
	}
	return t, nil
}

// Save writes t as indented JSON.
func (t Table) Save(w io.Writer) error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// Encode serializes all entries in slot order.
func (t Table) Encode() ([]byte, error) {
	buf := make([]byte, 0, len(t)*EntrySize)
	for i, e := range t {
		rec, err := Encode(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		buf = append(buf, rec...)
	}
	return buf, nil
}

// Files returns the populated entries in slot order.
func (t Table) Files() []Entry {
	var files []Entry
	for _, e := range t {
		if !e.IsEmpty {
			files = append(files, e)
		}
	}
	return files
}

// Find returns the index of the first populated entry whose File() is name.
func (t Table) Find(name string) (int, bool) {
	for i, e := range t {
		if !e.IsEmpty && e.File() == name {
			return i, true
		}
	}
	return -1, false
}
