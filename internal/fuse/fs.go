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
	"context"
	"os"
	"syscall"

	fuse "bazil.org/fuse"
	fuse_fs "bazil.org/fuse/fs"
	"github.com/rs/zerolog/log"

	"github.com/asig/sdit/internal/disk"
	"github.com/asig/sdit/internal/rootdir"
)

// Catalog provides the files shown by the file system.
// Generated mock using mockgen:
//
//	mockgen -source=fs.go -destination=catalog_mock.go -package fuse
type Catalog interface {
	Files() []rootdir.Entry
	ReadFile(name string) ([]byte, error)
}

const rootInode = 1

type FS struct {
	cat Catalog
	uid uint32
	gid uint32
}

type dirNode struct {
	cat Catalog
	uid uint32
	gid uint32
}

type fileNode struct {
	cat   Catalog
	entry rootdir.Entry
	inode uint64
	uid   uint32
	gid   uint32
}

type fileHandle struct {
	name string
	data []byte
}

func NewFS(cat Catalog) fuse_fs.FS {
	return FS{
		cat: cat,
		uid: uint32(os.Getuid()),
		gid: uint32(os.Getgid()),
	}
}

func (f FS) Root() (fuse_fs.Node, error) {
	return &dirNode{cat: f.cat, uid: f.uid, gid: f.gid}, nil
}

// Files are numbered in root directory order, after the root directory itself.
func fileInode(idx int) uint64 {
	return uint64(rootInode + 1 + idx)
}

func (d dirNode) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = rootInode
	a.Mode = os.ModeDir | 0555
	a.Uid = d.uid
	a.Gid = d.gid
	return nil
}

func (d dirNode) Lookup(ctx context.Context, name string) (fuse_fs.Node, error) {
	log.Debug().Msgf("FUSE Lookup for %s", name)
	for i, e := range d.cat.Files() {
		if e.File() == name {
			return &fileNode{cat: d.cat, entry: e, inode: fileInode(i), uid: d.uid, gid: d.gid}, nil
		}
	}
	return nil, syscall.ENOENT
}

func (d dirNode) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	log.Debug().Msgf("FUSE ReadDirAll")
	var res []fuse.Dirent
	for i, e := range d.cat.Files() {
		res = append(res, fuse.Dirent{
			Inode: fileInode(i),
			Name:  e.File(),
			Type:  fuse.DT_File,
		})
	}
	return res, nil
}

func (f fileNode) Attr(ctx context.Context, a *fuse.Attr) error {
	log.Debug().Msgf("FUSE Attr for file %s", f.entry.File())
	a.Inode = f.inode
	a.Mode = 0444
	a.Size = uint64(f.entry.SizeInSectors()) * disk.SectorSize
	a.Uid = f.uid
	a.Gid = f.gid
	return nil
}

func (f fileNode) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fuse_fs.Handle, error) {
	log.Debug().Msgf("FUSE Open for file %s: req = %+v", f.entry.File(), req)
	if !req.Flags.IsReadOnly() {
		return nil, syscall.EROFS
	}
	data, err := f.cat.ReadFile(f.entry.File())
	if err != nil {
		log.Error().Err(err).Msgf("FUSE Open for file %s failed", f.entry.File())
		return nil, syscall.EIO
	}
	resp.Flags |= fuse.OpenKeepCache
	return &fileHandle{name: f.entry.File(), data: data}, nil
}

func (h *fileHandle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	log.Debug().Msgf("FUSE Read for file %s: offset = %d, size = %d", h.name, req.Offset, req.Size)
	size := int64(len(h.data))
	if req.Offset >= size {
		log.Debug().Msgf("FUSE Read for file %s: offset beyond EOF, returning empty data", h.name)
		resp.Data = []byte{}
		return nil
	}
	end := req.Offset + int64(req.Size)
	if end > size {
		end = size
	}
	resp.Data = h.data[req.Offset:end]
	return nil
}

func (h *fileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	h.data = nil
	return nil
}
