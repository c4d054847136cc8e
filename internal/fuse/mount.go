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

package fuse

import (
	fuse "bazil.org/fuse"
	fuse_fs "bazil.org/fuse/fs"
	"github.com/rs/zerolog/log"
)

// Mount serves cat read-only at mountpoint until it is unmounted.
func Mount(cat Catalog, mountpoint, fsName string) error {
	c, err := fuse.Mount(mountpoint,
		fuse.FSName(fsName),
		fuse.Subtype("sdit"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	log.Info().Msgf("Serving %d files at %s", len(cat.Files()), mountpoint)
	if err := fuse_fs.Serve(c, NewFS(cat)); err != nil {
		return err
	}
	log.Info().Msgf("%s unmounted", mountpoint)
	return nil
}

func Unmount(mountpoint string) error {
	return fuse.Unmount(mountpoint)
}
