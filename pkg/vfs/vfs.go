// Package vfs implements a virtual filesystem whose entire namespace lives
// in two ordered dictionaries: id to node, and per-directory name to id.
// Files are thin handles onto physical files of the host filesystem.
package vfs

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"treedict/pkg/bptree"
	"treedict/pkg/btree"
	"treedict/pkg/cache"
	"treedict/pkg/dict"
	"treedict/pkg/errs"
	"treedict/pkg/util"
)

// Engine selects the dictionary engine backing the filesystem index.
type Engine int

const (
	BTreeEngine Engine = iota
	BPlusTreeEngine
)

var (
	ErrCyclicMove           = errors.New("cannot move a directory into itself")
	ErrRelativePhysicalPath = errors.New("physical path must be absolute")
	ErrRootOperation        = errors.New("operation not allowed on the root directory")
)

// Options configures a VFS instance.
type Options struct {
	Engine    Engine
	Degree    int    // tree degree for both dictionaries; 0 means the engine default
	TempDir   string // where touch places backing files; default ".temp"
	CacheSize int    // resolve cache capacity; 0 disables caching
}

// VFS owns the filesystem index and the notion of a current directory. Not
// safe for concurrent use.
type VFS struct {
	data     *dict.Dict[NodeID, Node]
	newNames func() *dict.Dict[util.String, NodeID]

	root *Dir
	cur  *Dir

	lastID    NodeID
	resolved  *cache.Cache[string, Node]
	tempDir   string
	tempCount int
}

func New(opts *Options) (*VFS, error) {
	if opts == nil {
		opts = &Options{}
	}

	var data *dict.Dict[NodeID, Node]
	var newNames func() *dict.Dict[util.String, NodeID]
	switch opts.Engine {
	case BTreeEngine:
		data = dict.NewBTree[NodeID, Node](&btree.Options{Degree: opts.Degree})
		newNames = func() *dict.Dict[util.String, NodeID] {
			return dict.NewBTree[util.String, NodeID](&btree.Options{Degree: opts.Degree})
		}
	case BPlusTreeEngine:
		data = dict.NewBPlusTree[NodeID, Node](&bptree.Options{Degree: opts.Degree})
		newNames = func() *dict.Dict[util.String, NodeID] {
			return dict.NewBPlusTree[util.String, NodeID](&bptree.Options{Degree: opts.Degree})
		}
	default:
		return nil, fmt.Errorf("%w: unknown engine %d", errs.ErrInvalidInput, opts.Engine)
	}

	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = ".temp"
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	v := &VFS{
		data:     data,
		newNames: newNames,
		tempDir:  tempDir,
	}
	if opts.CacheSize > 0 {
		v.resolved = cache.New[string, Node](opts.CacheSize, nil)
	}

	v.lastID++
	root := newDir(v.lastID, 0, "/", v.newNames())
	if err := v.data.Add(root.ID(), root); err != nil {
		return nil, err
	}
	v.root = root
	v.cur = root
	return v, nil
}

// Cwd returns the name of the current directory.
func (v *VFS) Cwd() string {
	return v.cur.Name()
}

// Cd changes the current directory.
func (v *VFS) Cd(path string) error {
	node, err := v.findByPath(NewPath(path))
	if err != nil {
		return err
	}
	dir, ok := node.(*Dir)
	if !ok {
		return fmt.Errorf("cd: %s is not a directory", NewPath(path))
	}
	v.cur = dir
	return nil
}

// Mkdir creates a directory at path. It is named after the last path
// component with any extension stripped (Path.Name).
func (v *VFS) Mkdir(path string) error {
	vpath := NewPath(path)
	name := vpath.Name()
	if name == "" {
		return fmt.Errorf("%w: empty directory name", errs.ErrInvalidInput)
	}

	parent, err := v.dirByPath(vpath.Location())
	if err != nil {
		return err
	}
	if parent.HasChild(name) {
		return fmt.Errorf("%s already exists", vpath)
	}

	v.lastID++
	d := newDir(v.lastID, parent.ID(), name, v.newNames())
	if err := parent.Contents().Add(util.String(name), d.ID()); err != nil {
		return err
	}
	if err := v.data.Add(d.ID(), d); err != nil {
		return err
	}
	v.invalidate()
	return nil
}

// Touch creates an empty backing file in the temp dir and attaches it at
// path.
func (v *VFS) Touch(path string) error {
	vpath := NewPath(path)
	if v.exists(vpath) {
		return fmt.Errorf("%s already exists", vpath)
	}

	phys, err := filepath.Abs(v.newTempPath())
	if err != nil {
		return err
	}
	f, err := os.Create(phys)
	if err != nil {
		return fmt.Errorf("creating backing file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return v.Attach(path, phys)
}

// Attach mounts the physical file at physPath under the virtual path. The
// physical path must be absolute and name an existing regular file.
func (v *VFS) Attach(virtPath, physPath string) error {
	if !filepath.IsAbs(physPath) {
		return fmt.Errorf("%w: %s", ErrRelativePhysicalPath, physPath)
	}
	info, err := os.Stat(physPath)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("attach: %s is not a regular file", physPath)
	}

	vpath := NewPath(virtPath)
	name, ext := vpath.Name(), vpath.Extension()
	if name == "" || ext == "" {
		return fmt.Errorf("%w: attach target needs a name and extension", errs.ErrInvalidInput)
	}

	parent, err := v.dirByPath(vpath.Location())
	if err != nil {
		return err
	}
	if parent.HasChild(name + ext) {
		return fmt.Errorf("%s already exists", vpath)
	}

	v.lastID++
	f := newFile(v.lastID, parent.ID(), name+ext, ext, physPath)
	if err := parent.Contents().Add(util.String(f.Name()), f.ID()); err != nil {
		return err
	}
	if err := v.data.Add(f.ID(), f); err != nil {
		return err
	}
	v.invalidate()
	return nil
}

// Rmdir removes the directory at path together with everything below it.
// The root cannot be removed.
func (v *VFS) Rmdir(path string) error {
	node, err := v.findByPath(NewPath(path))
	if err != nil {
		return err
	}
	dir, ok := node.(*Dir)
	if !ok {
		return fmt.Errorf("%s is not a directory", NewPath(path))
	}
	if dir.Parent() == 0 {
		return fmt.Errorf("%w: rmdir %s", ErrRootOperation, NewPath(path))
	}

	parent, err := v.dirByID(dir.Parent())
	if err != nil {
		return err
	}
	if v.cur == dir || v.isDescendant(v.cur, dir) {
		v.cur = parent
	}
	v.unregister(dir)
	parent.Contents().Remove(util.String(dir.Name()))
	v.invalidate()
	return nil
}

// Remove deletes the file at path. Directories need Rmdir.
func (v *VFS) Remove(path string) error {
	node, err := v.findByPath(NewPath(path))
	if err != nil {
		return err
	}
	if node.IsDir() {
		return fmt.Errorf("%s is a directory, use rmdir", NewPath(path))
	}

	parent, err := v.dirByID(node.Parent())
	if err != nil {
		return err
	}
	parent.Contents().Remove(util.String(node.Name()))
	v.data.Remove(node.ID())
	v.invalidate()
	return nil
}

// Move relocates or renames a node. Moving the root, moving a directory
// into itself or any of its descendants, and overwriting an existing name
// are all rejected. When the destination is an existing directory the node
// is placed inside it; otherwise the destination's last component becomes
// the node's new name.
func (v *VFS) Move(from, to string) error {
	node, err := v.findByPath(NewPath(from))
	if err != nil {
		return err
	}
	if node.Parent() == 0 {
		return fmt.Errorf("%w: move %s", ErrRootOperation, NewPath(from))
	}

	destPath := NewPath(to)
	if v.exists(destPath) {
		dest, err := v.findByPath(destPath)
		if err != nil {
			return err
		}
		destDir, ok := dest.(*Dir)
		if !ok {
			return fmt.Errorf("cannot move to %s: it is not a directory", destPath)
		}
		return v.moveInto(node, destDir, node.Name())
	}

	destDir, err := v.dirByPath(destPath.Location())
	if err != nil {
		return err
	}
	return v.moveInto(node, destDir, destPath.Base())
}

func (v *VFS) moveInto(node Node, destDir *Dir, newName string) error {
	if node.ID() == destDir.ID() || v.isDescendant(destDir, node) {
		return fmt.Errorf("%w: %s", ErrCyclicMove, node.Name())
	}
	if destDir.HasChild(newName) {
		return fmt.Errorf("%s already exists in %s", newName, destDir.Name())
	}

	src, err := v.dirByID(node.Parent())
	if err != nil {
		return err
	}
	src.Contents().Remove(util.String(node.Name()))
	if err := destDir.Contents().Add(util.String(newName), node.ID()); err != nil {
		return err
	}
	node.rename(newName)
	node.reparent(destDir.ID())
	v.invalidate()
	return nil
}

// Open enters a directory or hands a file to the platform opener.
func (v *VFS) Open(path string) error {
	node, err := v.findByPath(NewPath(path))
	if err != nil {
		return err
	}
	if node.IsDir() {
		v.cur = node.(*Dir)
		return nil
	}

	file := node.(*File)
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-W", file.DiskPath())
	default:
		cmd = exec.Command("xdg-open", file.DiskPath())
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening %s: %w", file.Name(), err)
	}
	return nil
}

// List returns the current directory's entries in name order, directories
// marked with a trailing slash.
func (v *VFS) List() []string {
	names := make([]string, 0, v.cur.Contents().Size())
	for it := v.cur.Contents().Iterator(); it.Next(); {
		name := string(it.Key())
		if node, err := v.data.Get(it.Value()); err == nil && node.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names
}

// Size returns the number of nodes in the filesystem index.
func (v *VFS) Size() int {
	return v.data.Size()
}

// Lookup resolves a path without changing any state.
func (v *VFS) Lookup(path string) (Node, error) {
	return v.findByPath(NewPath(path))
}

func (v *VFS) exists(p Path) bool {
	_, err := v.findByPath(p)
	return err == nil
}

func (v *VFS) findByPath(p Path) (Node, error) {
	start := v.cur
	if p.IsAbsolute() {
		start = v.root
	}

	var cacheKey string
	if v.resolved != nil {
		cacheKey = fmt.Sprintf("%d:%s", start.ID(), p)
		if node, ok := v.resolved.Get(cacheKey); ok {
			return node, nil
		}
	}

	node, err := v.resolve(start, p)
	if err != nil {
		return nil, err
	}
	if v.resolved != nil {
		v.resolved.Add(cacheKey, node)
	}
	return node, nil
}

func (v *VFS) resolve(start *Dir, p Path) (Node, error) {
	var res Node = start
	for i := 0; i < p.Size(); i++ {
		token := p.At(i)
		switch {
		case token == "/":
		case token == "..":
			if res.Parent() != 0 {
				parent, err := v.data.Get(res.Parent())
				if err != nil {
					return nil, err
				}
				res = parent
			}
		default:
			dir, ok := res.(*Dir)
			if !ok {
				return nil, fmt.Errorf("resolve: %s is not a directory", res.Name())
			}
			id, err := dir.Contents().Get(util.String(token))
			if err != nil {
				return nil, fmt.Errorf("no such file or directory: %s", p)
			}
			res, err = v.data.Get(id)
			if err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

func (v *VFS) dirByPath(p Path) (*Dir, error) {
	node, err := v.findByPath(p)
	if err != nil {
		return nil, err
	}
	dir, ok := node.(*Dir)
	if !ok {
		return nil, fmt.Errorf("%s is not a directory", node.Name())
	}
	return dir, nil
}

func (v *VFS) dirByID(id NodeID) (*Dir, error) {
	node, err := v.data.Get(id)
	if err != nil {
		return nil, err
	}
	dir, ok := node.(*Dir)
	if !ok {
		return nil, fmt.Errorf("node %d is not a directory", uint64(id))
	}
	return dir, nil
}

// unregister drops dir and all of its descendants from the id dictionary.
func (v *VFS) unregister(dir *Dir) {
	for it := dir.Contents().Iterator(); it.Next(); {
		if child, err := v.data.Get(it.Value()); err == nil {
			if sub, ok := child.(*Dir); ok {
				v.unregister(sub)
			}
		}
		v.data.Remove(it.Value())
	}
	v.data.Remove(dir.ID())
}

// isDescendant reports whether candidate lies strictly below ancestor; a
// node is not its own descendant.
func (v *VFS) isDescendant(candidate Node, ancestor Node) bool {
	for id := candidate.Parent(); id != 0; {
		if id == ancestor.ID() {
			return true
		}
		node, err := v.data.Get(id)
		if err != nil {
			return false
		}
		id = node.Parent()
	}
	return false
}

func (v *VFS) invalidate() {
	if v.resolved != nil {
		v.resolved.Clear()
	}
}

func (v *VFS) newTempPath() string {
	v.tempCount++
	return filepath.Join(v.tempDir, fmt.Sprintf("temp(%d)", v.tempCount-1))
}
