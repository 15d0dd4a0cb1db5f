package hdf5

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/dtype"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// Group is a container of named groups and datasets.
type Group struct {
	objectBase
}

func newGroup(f *File, n *node) *Group {
	return &Group{objectBase{f: f, n: n}}
}

// start returns the node a path is resolved from.
func (g *Group) start(path string) *node {
	if strings.HasPrefix(path, "/") {
		return g.f.root
	}
	return g.n
}

// Members returns the names of the direct children in link order.
func (g *Group) Members() ([]string, error) {
	if err := g.f.checkOpen(); err != nil {
		return nil, err
	}
	children, err := g.f.childNodes(g.n)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.name
	}
	return names, nil
}

// NumMembers returns the number of direct children.
func (g *Group) NumMembers() (int, error) {
	names, err := g.Members()
	return len(names), err
}

// OpenGroup opens a group by path. Absolute paths resolve from the root.
func (g *Group) OpenGroup(path string) (*Group, error) {
	if err := g.f.checkOpen(); err != nil {
		return nil, err
	}
	n, err := g.f.lookup(g.start(path), path)
	if err != nil {
		return nil, err
	}
	if !n.group {
		return nil, errors.Wrapf(ErrNotGroup, "%s", n.path())
	}
	return newGroup(g.f, n), nil
}

// OpenDataset opens a dataset by path. Absolute paths resolve from the root.
func (g *Group) OpenDataset(path string) (*Dataset, error) {
	if err := g.f.checkOpen(); err != nil {
		return nil, err
	}
	n, err := g.f.lookup(g.start(path), path)
	if err != nil {
		return nil, err
	}
	if n.group {
		return nil, errors.Wrapf(ErrNotDataset, "%s", n.path())
	}
	return newDataset(g.f, n), nil
}

// Has reports whether a path resolves to any object.
func (g *Group) Has(path string) bool {
	if g.f.closed {
		return false
	}
	_, err := g.f.lookup(g.start(path), path)
	return err == nil
}

// HasGroup reports whether a path resolves to a group.
func (g *Group) HasGroup(path string) bool {
	_, err := g.OpenGroup(path)
	return err == nil
}

// HasDataset reports whether a path resolves to a dataset.
func (g *Group) HasDataset(path string) bool {
	_, err := g.OpenDataset(path)
	return err == nil
}

// addChild links a new node under g after checking its name.
func (g *Group) addChild(c *node) error {
	if !validName(c.name) {
		return errors.Wrapf(ErrInvalidPath, "name %q", c.name)
	}
	children, err := g.f.childNodes(g.n)
	if err != nil {
		return err
	}
	for _, existing := range children {
		if existing.name == c.name {
			return errors.Wrapf(ErrExists, "%s", joinPath(g.Path(), c.name))
		}
	}
	g.n.children = append(children, c)
	g.f.dirty = true
	return nil
}

// CreateGroup creates a direct child group.
func (g *Group) CreateGroup(name string) (*Group, error) {
	if err := g.f.checkWritable(); err != nil {
		return nil, err
	}
	c := newGroupNode(name, g.n)
	if err := g.addChild(c); err != nil {
		return nil, err
	}
	return newGroup(g.f, c), nil
}

// CreateGroups opens the group at path, creating it and any missing
// intermediate groups.
func (g *Group) CreateGroups(path string) (*Group, error) {
	if err := g.f.checkWritable(); err != nil {
		return nil, err
	}
	cur := g.start(path)
	for _, part := range SplitPath(path) {
		next, err := g.f.child(cur, part)
		switch {
		case err == nil:
			if !next.group {
				return nil, errors.Wrapf(ErrNotGroup, "%s", next.path())
			}
		case errors.Is(err, ErrNotFound):
			next = newGroupNode(part, cur)
			if err := newGroup(g.f, cur).addChild(next); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
		cur = next
	}
	return newGroup(g.f, cur), nil
}

// CreateDataset creates a dataset holding data, which may be a scalar or a
// slice of any integer or float type, a string, or a []string.
func (g *Group) CreateDataset(name string, data interface{}, opts ...DatasetOption) (*Dataset, error) {
	if err := g.f.checkWritable(); err != nil {
		return nil, err
	}
	o := &datasetOptions{}
	for _, opt := range opts {
		opt(o)
	}

	enc, err := dtype.Encode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %q", name)
	}
	var space *message.Dataspace
	switch {
	case len(o.shape) > 0:
		total := uint64(1)
		for _, d := range o.shape {
			total *= d
		}
		if total != uint64(enc.Count) {
			return nil, errors.Errorf("dataset %q: shape %v holds %d elements, data has %d", name, o.shape, total, enc.Count)
		}
		space = message.NewSimpleDataspace(o.shape...)
	case enc.Scalar:
		space = message.NewScalarDataspace()
	default:
		space = message.NewSimpleDataspace(uint64(enc.Count))
	}

	c := &node{
		name:   name,
		parent: g.n,
		space:  space,
		dtype:  enc.Datatype,
		layout: message.NewContiguousLayout(0, uint64(len(enc.Data))),
		data:   enc.Data,
		inMem:  true,
	}
	for _, def := range o.attributes {
		a, err := newAttribute(def.name, def.value)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset %q attribute %q", name, def.name)
		}
		c.setAttr(a)
	}
	if err := g.addChild(c); err != nil {
		return nil, err
	}
	return newDataset(g.f, c), nil
}

// Unlink removes a direct child and everything below it.
func (g *Group) Unlink(name string) error {
	if err := g.f.checkWritable(); err != nil {
		return err
	}
	children, err := g.f.childNodes(g.n)
	if err != nil {
		return err
	}
	for i, c := range children {
		if c.name == name {
			g.n.children = append(children[:i], children[i+1:]...)
			g.f.dirty = true
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "%s", joinPath(g.Path(), name))
}
