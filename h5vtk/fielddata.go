package h5vtk

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// WriteFieldData stores fd under parent/FIELD_DATA with a Name attribute
// naming the block. Nothing is written for an empty collection.
func WriteFieldData(parent *hdf5.Group, fd *vtk.Attributes) error {
	if fd == nil || fd.Len() == 0 {
		return nil
	}
	g, err := parent.CreateGroup(FieldDataGroup)
	if err != nil {
		return containerErr(err, "creating %s", FieldDataGroup)
	}
	name := fd.Name
	if name == "" {
		name = DefaultFieldDataName
	}
	if err := g.SetAttr(AttrName, name); err != nil {
		return containerErr(err, "naming %s", g.Path())
	}
	return writeArrays(g, fd.Arrays())
}

// ReadFieldData loads parent/FIELD_DATA into fd. Field arrays have no
// expected tuple count. A block whose name differs from the one selected
// with WithFieldDataName is skipped unless WithReadAllFields is given.
func ReadFieldData(parent *hdf5.Group, fd *vtk.Attributes, opts ...ReadOption) error {
	o := &readOptions{}
	for _, opt := range opts {
		opt(o)
	}

	g, err := parent.OpenGroup(FieldDataGroup)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "%s in %s", FieldDataGroup, parent.Path())
		}
		return containerErr(err, "opening %s", FieldDataGroup)
	}

	name := DefaultFieldDataName
	if attr, err := g.Attr(AttrName); err == nil {
		if s, err := attr.ReadScalarString(); err == nil {
			name = s
		}
	}
	if o.fieldDataName != "" && name != o.fieldDataName && !o.readAllFields {
		glog.V(1).Infof("h5vtk: skipping field data %q in %s, want %q", name, parent.Path(), o.fieldDataName)
		return nil
	}
	fd.Name = name

	arrays, err := readArrays(g)
	if err != nil {
		return err
	}
	for _, a := range arrays {
		if a.Name == nullArray {
			continue
		}
		fd.Add(a)
	}
	return nil
}
