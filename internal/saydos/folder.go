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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/rootdir"
)

const (
	// SystemSectors is the number of boot/header sectors preceding the root
	// directory.
	SystemSectors = rootdir.FirstSector
	// FileAreaStart is the first sector allocated to files.
	FileAreaStart = rootdir.EndSector

	// The battle system reads sectors 0x44C..0x540 through an address
	// hardcoded in BATTLE.COM instead of through the root directory. The
	// address is stored at offset 0xF6C of BATTLE.COM.
	BattleFile          = "BATTLE.COM"
	BattleFirstSector   = 0x44C
	BattleLastSector    = 0x540
	BattlePointerOffset = 0xF6C

	// PadByte fills the unused tail of a repacked image.
	PadByte = 0xFF

	SectorsDir        = "sectors"
	FilesDir          = "files"
	RootDirectoryFile = "root directory.json"
)

// Folder is the unpacked representation of an image. All paths are relative
// to the folder's base directory.
type Folder struct {
	fs   afero.Fs
	base string
}

func NewFolder(fs afero.Fs, base string) *Folder {
	return &Folder{fs: fs, base: base}
}

func (f *Folder) Base() string {
	return f.base
}

func (f *Folder) SectorPath(n int) string {
	return filepath.Join(f.base, SectorsDir, fmt.Sprintf("%04d.bin", n))
}

func (f *Folder) FilePath(name string) string {
	return filepath.Join(f.base, FilesDir, name)
}

func (f *Folder) RootDirectoryPath() string {
	return filepath.Join(f.base, RootDirectoryFile)
}

// checkExists fails with ErrMissingPath unless the base directory exists.
func (f *Folder) checkExists() error {
	ok, err := afero.DirExists(f.fs, f.base)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("folder doesn't exist: %s: %w", f.base, ErrMissingPath)
	}
	return nil
}

func (f *Folder) prepare() error {
	for _, dir := range []string{SectorsDir, FilesDir} {
		if err := f.fs.MkdirAll(filepath.Join(f.base, dir), 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (f *Folder) readArtifact(path string) ([]byte, error) {
	b, err := afero.ReadFile(f.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file doesn't exist: %s: %w", path, ErrMissingArtifact)
	}
	return b, err
}

func (f *Folder) WriteSector(n int, sec disk.Sector) error {
	return afero.WriteFile(f.fs, f.SectorPath(n), sec[:], 0644)
}

// ReadSector loads sector n, which must be exactly one sector long.
func (f *Folder) ReadSector(n int) (disk.Sector, error) {
	var sec disk.Sector
	b, err := f.readArtifact(f.SectorPath(n))
	if err != nil {
		return sec, err
	}
	if len(b) != disk.SectorSize {
		return sec, fmt.Errorf("sector %s has 0x%X bytes, want 0x%X: %w", f.SectorPath(n), len(b), disk.SectorSize, ErrMalformedInput)
	}
	copy(sec[:], b)
	return sec, nil
}

func (f *Folder) WriteFile(name string, data []byte) error {
	return afero.WriteFile(f.fs, f.FilePath(name), data, 0644)
}

func (f *Folder) ReadFile(name string) ([]byte, error) {
	return f.readArtifact(f.FilePath(name))
}

func (f *Folder) SaveTable(t rootdir.Table) error {
	out, err := f.fs.Create(f.RootDirectoryPath())
	if err != nil {
		return err
	}
	if err := t.Save(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (f *Folder) LoadTable() (rootdir.Table, error) {
	in, err := f.fs.Open(f.RootDirectoryPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file doesn't exist: %s: %w", f.RootDirectoryPath(), ErrMissingArtifact)
	}
	if err != nil {
		return nil, err
	}
	defer in.Close()

	t, err := rootdir.Load(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return t, nil
}
