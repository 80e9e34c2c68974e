package vfs

import (
	"fmt"

	"treedict/pkg/dict"
	"treedict/pkg/util"
)

// NodeID identifies a node in the filesystem index. The root's parent is 0.
type NodeID = util.Uint64

// Node is an entry in the virtual filesystem: a directory or an attached
// file. Nodes are addressed through the id dictionary and never own each
// other.
type Node interface {
	ID() NodeID
	Parent() NodeID
	Name() string
	IsDir() bool

	rename(name string)
	reparent(parent NodeID)
}

// Dir is a directory node. Its contents map child names to node ids in key
// order.
type Dir struct {
	id       NodeID
	parent   NodeID
	name     string
	contents *dict.Dict[util.String, NodeID]
}

func newDir(id, parent NodeID, name string, contents *dict.Dict[util.String, NodeID]) *Dir {
	return &Dir{id: id, parent: parent, name: name, contents: contents}
}

func (d *Dir) ID() NodeID     { return d.id }
func (d *Dir) Parent() NodeID { return d.parent }
func (d *Dir) Name() string   { return d.name }
func (d *Dir) IsDir() bool    { return true }

func (d *Dir) Contents() *dict.Dict[util.String, NodeID] {
	return d.contents
}

func (d *Dir) HasChild(name string) bool {
	return d.contents.Contains(util.String(name))
}

func (d *Dir) Child(name string) (NodeID, error) {
	id, err := d.contents.Get(util.String(name))
	if err != nil {
		return 0, fmt.Errorf("%s has no entry %q: %w", d.name, name, err)
	}
	return id, nil
}

func (d *Dir) rename(name string)     { d.name = name }
func (d *Dir) reparent(parent NodeID) { d.parent = parent }

// File is a regular-file node attached to a physical path on the host
// filesystem.
type File struct {
	id       NodeID
	parent   NodeID
	name     string
	ext      string
	diskPath string
}

func newFile(id, parent NodeID, name, ext, diskPath string) *File {
	return &File{id: id, parent: parent, name: name, ext: ext, diskPath: diskPath}
}

func (f *File) ID() NodeID     { return f.id }
func (f *File) Parent() NodeID { return f.parent }
func (f *File) Name() string   { return f.name }
func (f *File) IsDir() bool    { return false }

func (f *File) Ext() string      { return f.ext }
func (f *File) DiskPath() string { return f.diskPath }

func (f *File) rename(name string)     { f.name = name }
func (f *File) reparent(parent NodeID) { f.parent = parent }
