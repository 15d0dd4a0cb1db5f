package hdf5

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/dtype"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// Object is a group or a dataset.
type Object interface {
	Name() string
	Path() string
	Attr(name string) (*Attribute, error)
	Attrs() []string
}

// objectBase carries what groups and datasets share: identity and attributes.
type objectBase struct {
	f *File
	n *node
}

// Name returns the link name of the object, or "/" for the root group.
func (o objectBase) Name() string {
	return o.n.name
}

// Path returns the absolute path of the object.
func (o objectBase) Path() string {
	return o.n.path()
}

// File returns the file containing the object.
func (o objectBase) File() *File {
	return o.f
}

// Attrs returns the attribute names in storage order.
func (o objectBase) Attrs() []string {
	names := make([]string, len(o.n.attrs))
	for i, a := range o.n.attrs {
		names[i] = a.Name
	}
	return names
}

// HasAttr reports whether the object carries the named attribute.
func (o objectBase) HasAttr(name string) bool {
	return o.n.attr(name) != nil
}

// Attr returns the named attribute.
func (o objectBase) Attr(name string) (*Attribute, error) {
	if err := o.f.checkOpen(); err != nil {
		return nil, err
	}
	a := o.n.attr(name)
	if a == nil {
		return nil, errors.Wrapf(ErrNotFound, "attribute %q on %s", name, o.Path())
	}
	return &Attribute{msg: a, owner: o.Path()}, nil
}

// SetAttr creates or replaces an attribute. The value may be a scalar or a
// slice of any integer or float type, a string, or a []string.
func (o objectBase) SetAttr(name string, value interface{}) error {
	if err := o.f.checkWritable(); err != nil {
		return err
	}
	a, err := newAttribute(name, value)
	if err != nil {
		return errors.Wrapf(err, "attribute %q on %s", name, o.Path())
	}
	o.n.setAttr(a)
	o.f.dirty = true
	return nil
}

// DeleteAttr removes an attribute. Removing a missing attribute is not an error.
func (o objectBase) DeleteAttr(name string) error {
	if err := o.f.checkWritable(); err != nil {
		return err
	}
	for i, a := range o.n.attrs {
		if a.Name == name {
			o.n.attrs = append(o.n.attrs[:i], o.n.attrs[i+1:]...)
			o.f.dirty = true
			break
		}
	}
	return nil
}

func newAttribute(name string, value interface{}) (*message.Attribute, error) {
	if name == "" {
		return nil, errors.New("empty attribute name")
	}
	enc, err := dtype.Encode(value)
	if err != nil {
		return nil, err
	}
	space := message.NewSimpleDataspace(uint64(enc.Count))
	if enc.Scalar {
		space = message.NewScalarDataspace()
	}
	return message.NewAttribute(name, enc.Datatype, space, enc.Data), nil
}
