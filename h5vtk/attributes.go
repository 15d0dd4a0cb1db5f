package h5vtk

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// WriteAttributes stores the arrays of c in a new child group of parent
// called groupName, in insertion order. Each role whose designated array
// has at least one tuple is recorded as a string attribute on that group.
// An empty collection still produces an empty group. numTuples is the
// expected tuple count and is only logged against.
func WriteAttributes(parent *hdf5.Group, groupName string, c *vtk.Attributes, numTuples int) error {
	g, err := parent.CreateGroup(groupName)
	if err != nil {
		return containerErr(err, "creating %s", groupName)
	}
	if err := writeArrays(g, c.Arrays()); err != nil {
		return err
	}
	for _, a := range c.Arrays() {
		if a.NumTuples != numTuples {
			glog.Warningf("h5vtk: %s/%s has %d tuples, expected %d; readers will drop it", g.Path(), a.Name, a.NumTuples, numTuples)
		}
	}

	for _, role := range vtk.Roles() {
		a := c.Active(role)
		if a == nil || a.NumTuples < 1 {
			continue
		}
		if err := g.SetAttr(role.AttributeKey(), storedName(a)); err != nil {
			return containerErr(err, "writing %s on %s", role.AttributeKey(), g.Path())
		}
	}
	return nil
}

// writeArrays writes each array under its escaped name, stopping at the
// first failure.
func writeArrays(g *hdf5.Group, arrays []*vtk.Array) error {
	for _, a := range arrays {
		if err := WriteArray(g, escapeName(storedName(a)), a); err != nil {
			return errors.Wrapf(err, "collection %s", g.Path())
		}
	}
	return nil
}

// storedName is the name a reader sees for a: its own, or "unknown".
func storedName(a *vtk.Array) string {
	if a.Name == "" {
		return unnamedArray
	}
	return a.Name
}

// ReadAttributes loads the collection stored under parent/groupName into
// c. Arrays that cannot be read or whose tuple count differs from
// numTuples are logged and skipped. Roles are then restored from the
// collection group's attributes; a role naming an array that was not
// loaded stays unset.
func ReadAttributes(parent *hdf5.Group, groupName string, numTuples int, c *vtk.Attributes) error {
	g, err := parent.OpenGroup(groupName)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "collection %s", groupName)
		}
		return containerErr(err, "opening %s", groupName)
	}

	arrays, err := readArrays(g)
	if err != nil {
		return err
	}
	for _, a := range arrays {
		if err := CheckTuples(a, numTuples); err != nil {
			glog.Warningf("h5vtk: dropping %s/%s: %v", g.Path(), a.Name, err)
			continue
		}
		c.Add(a)
	}

	for _, role := range vtk.Roles() {
		name := roleDesignee(parent, groupName, role)
		if name == "" {
			continue
		}
		if err := c.SetActive(role, name); err != nil {
			glog.Warningf("h5vtk: %s of %s names %q, which was not loaded", role.AttributeKey(), g.Path(), name)
			c.ClearActive(role)
		}
	}
	return nil
}

// readArrays reads every dataset child of g, logging and skipping the
// ones that fail. Names are unescaped.
func readArrays(g *hdf5.Group) ([]*vtk.Array, error) {
	members, err := g.Members()
	if err != nil {
		return nil, containerErr(err, "listing %s", g.Path())
	}
	var arrays []*vtk.Array
	for _, name := range members {
		if !g.HasDataset(name) {
			continue
		}
		a, err := ReadArray(g, name)
		if err != nil {
			glog.Warningf("h5vtk: skipping %s/%s: %v", g.Path(), name, err)
			continue
		}
		a.Name = unescapeName(name)
		arrays = append(arrays, a)
	}
	return arrays, nil
}

// roleDesignee reads a role attribute of collection groupName, addressing
// the collection through its parent group. It returns "" when absent.
func roleDesignee(parent *hdf5.Group, groupName string, role vtk.Role) string {
	g, err := parent.OpenGroup(groupName)
	if err != nil {
		return ""
	}
	attr, err := g.Attr(role.AttributeKey())
	if err != nil {
		return ""
	}
	name, err := attr.ReadScalarString()
	if err != nil {
		glog.Warningf("h5vtk: unreadable %s on %s: %v", role.AttributeKey(), g.Path(), err)
		return ""
	}
	return name
}
