package hdf5

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
	"github.com/robert-malhotra/go-h5vtk/internal/object"
)

// node is one object of the in-memory tree. A node is a group when it has
// no layout; every other object header is treated as a dataset.
type node struct {
	name   string
	parent *node
	group  bool
	addr   uint64 // header address in the file it was read from

	attrs []*message.Attribute

	// Groups. Until loaded is set, links holds the hard links read from
	// the header and children is empty.
	children []*node
	links    []*message.Link
	loaded   bool

	// Datasets. data is authoritative once inMem is set; otherwise the
	// contents are read through layout.
	space  *message.Dataspace
	dtype  *message.Datatype
	layout *message.DataLayout
	data   []byte
	inMem  bool
}

func newGroupNode(name string, parent *node) *node {
	return &node{name: name, parent: parent, group: true, loaded: true}
}

// readNode parses the object header at addr.
func (f *File) readNode(name string, parent *node, addr uint64) (*node, error) {
	h, err := object.Read(f.file, f.cfg, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "reading object %q", name)
	}
	n := &node{name: name, parent: parent, addr: addr, attrs: h.Attributes()}

	if layout := h.DataLayout(); layout != nil {
		n.layout = layout
		n.space = h.Dataspace()
		n.dtype = h.Datatype()
		if n.space == nil || n.dtype == nil {
			return nil, errors.Wrapf(ErrUnsupported, "dataset %q has no dataspace or datatype", name)
		}
		if h.GetMessage(message.TypeFilterPipeline) != nil {
			return nil, errors.Wrapf(ErrUnsupported, "dataset %q uses filters", name)
		}
		return n, nil
	}

	n.group = true
	if h.GetMessage(message.TypeSymbolTable) != nil {
		return nil, errors.Wrapf(ErrUnsupported, "group %q uses symbol table storage", name)
	}
	if li := h.LinkInfo(); li != nil && li.Dense(f.cfg) {
		return nil, errors.Wrapf(ErrUnsupported, "group %q uses dense link storage", name)
	}
	for _, l := range h.Links() {
		if !l.IsHard() {
			glog.Warningf("hdf5: skipping non-hard link %q in group %q", l.Name, name)
			continue
		}
		n.links = append(n.links, l)
	}
	return n, nil
}

// childNodes returns the children of a group, reading their headers on
// first use.
func (f *File) childNodes(n *node) ([]*node, error) {
	if n.loaded {
		return n.children, nil
	}
	children := make([]*node, 0, len(n.links))
	for _, l := range n.links {
		if n.hasAncestorAt(l.ObjectAddress) {
			glog.Warningf("hdf5: skipping link %q in group %q: it points back to an enclosing group", l.Name, n.name)
			continue
		}
		c, err := f.readNode(l.Name, n, l.ObjectAddress)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	n.children = children
	n.links = nil
	n.loaded = true
	return children, nil
}

func (n *node) hasAncestorAt(addr uint64) bool {
	for p := n; p != nil; p = p.parent {
		if p.addr == addr {
			return true
		}
	}
	return false
}

// child looks up a direct child by name.
func (f *File) child(n *node, name string) (*node, error) {
	if !n.group {
		return nil, errors.Wrapf(ErrNotGroup, "%q", n.name)
	}
	children, err := f.childNodes(n)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if c.name == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "%q", name)
}

// lookup resolves a relative path from n.
func (f *File) lookup(n *node, relPath string) (*node, error) {
	cur := n
	for _, part := range SplitPath(relPath) {
		if part == ".." {
			if cur.parent != nil {
				cur = cur.parent
			}
			continue
		}
		next, err := f.child(cur, part)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %q", relPath)
		}
		cur = next
	}
	return cur, nil
}

// loadAll reads every header and every dataset's contents under n so the
// file can be rewritten without reading from it.
func (f *File) loadAll(n *node) error {
	if !n.group {
		_, err := f.datasetBytes(n)
		return err
	}
	children, err := f.childNodes(n)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := f.loadAll(c); err != nil {
			return err
		}
	}
	return nil
}

// datasetBytes returns the raw contents of a dataset node.
func (f *File) datasetBytes(n *node) ([]byte, error) {
	if n.inMem {
		return n.data, nil
	}
	size := int(n.space.NumElements()) * int(n.dtype.Size)

	var data []byte
	switch n.layout.Class {
	case message.LayoutCompact:
		data = n.layout.CompactData
	case message.LayoutContiguous:
		if f.cfg.IsUndefined(n.layout.Address) || size == 0 {
			// Storage never allocated reads as zeros.
			data = make([]byte, size)
			break
		}
		raw, err := binary.ReadAt(f.file, int64(n.layout.Address), size)
		if err != nil {
			return nil, errors.Wrapf(err, "reading dataset %q", n.name)
		}
		data = raw
	default:
		return nil, errors.Wrapf(ErrUnsupported, "dataset %q has %s layout", n.name, n.layout.Class)
	}
	if len(data) < size {
		return nil, errors.Errorf("dataset %q holds %d bytes, need %d", n.name, len(data), size)
	}
	n.data = data[:size]
	n.inMem = true
	return n.data, nil
}

// path returns the absolute path of n.
func (n *node) path() string {
	if n.parent == nil {
		return "/"
	}
	return joinPath(n.parent.path(), n.name)
}

func (n *node) attr(name string) *message.Attribute {
	for _, a := range n.attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// setAttr adds or replaces an attribute, keeping its position on replace.
func (n *node) setAttr(a *message.Attribute) {
	for i, old := range n.attrs {
		if old.Name == a.Name {
			n.attrs[i] = a
			return
		}
	}
	n.attrs = append(n.attrs, a)
}
