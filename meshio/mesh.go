// Package meshio reads and writes a YAML description of vtk datasets. It
// is the text form used by the h5vtk command to import and export meshes.
//
// A document looks like:
//
//	kind: PolyData
//	points:
//	  type: float32
//	  values: [0, 0, 0, 1, 0, 0, 0, 1, 0]
//	polys:
//	  - [0, 1, 2]
//	point_data:
//	  arrays:
//	    - name: temperature
//	      type: float32
//	      values: [10, 20, 30]
//	  active:
//	    Scalars: temperature
package meshio

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// ErrFormat is returned for documents that do not describe a valid dataset.
var ErrFormat = errors.New("invalid mesh document")

// Mesh is the document root.
type Mesh struct {
	Kind   string    `yaml:"kind"`
	Points *ArrayDoc `yaml:"points,omitempty"`
	Verts  [][]int64 `yaml:"verts,omitempty,flow"`
	Lines  [][]int64 `yaml:"lines,omitempty,flow"`
	Polys  [][]int64 `yaml:"polys,omitempty,flow"`
	Strips [][]int64 `yaml:"strips,omitempty,flow"`
	Cells  []CellDoc `yaml:"cells,omitempty"`

	PointData *AttributesDoc `yaml:"point_data,omitempty"`
	CellData  *AttributesDoc `yaml:"cell_data,omitempty"`
	FieldData *AttributesDoc `yaml:"field_data,omitempty"`
}

// CellDoc is one unstructured grid cell.
type CellDoc struct {
	Type   string  `yaml:"type"`
	Points []int64 `yaml:"points,flow"`
}

// AttributesDoc is an attribute collection.
type AttributesDoc struct {
	// Name is only meaningful for field data.
	Name   string            `yaml:"name,omitempty"`
	Arrays []ArrayDoc        `yaml:"arrays"`
	Active map[string]string `yaml:"active,omitempty"`
}

// ArrayDoc is a typed array. Values is a flat sequence whose element form
// depends on Type: numbers, booleans for bit arrays, or strings.
type ArrayDoc struct {
	Name       string    `yaml:"name,omitempty"`
	Type       string    `yaml:"type"`
	Components int       `yaml:"components,omitempty"`
	Values     yaml.Node `yaml:"values"`
}

// Decode parses a document from r.
func Decode(r io.Reader) (vtk.DataSet, error) {
	var m Mesh
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decoding mesh")
	}
	return m.DataSet()
}

// ReadFile parses the document at path.
func ReadFile(path string) (vtk.DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Decode(f)
	return ds, errors.Wrapf(err, "%s", path)
}

// Encode writes ds as a document to w.
func Encode(w io.Writer, ds vtk.DataSet) error {
	m, err := FromDataSet(ds)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "encoding mesh")
	}
	return enc.Close()
}

// WriteFile writes ds as a document at path.
func WriteFile(path string, ds vtk.DataSet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Encode(f, ds)
}

// DataSet builds the described dataset and validates it.
func (m *Mesh) DataSet() (vtk.DataSet, error) {
	kind, err := vtk.ParseKind(m.Kind)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "%v", err)
	}

	var points *vtk.Array
	if m.Points != nil {
		if m.Points.Components == 0 {
			m.Points.Components = 3
		}
		points, err = m.Points.Array("Points")
		if err != nil {
			return nil, err
		}
	}

	var ds vtk.DataSet
	switch kind {
	case vtk.KindPolyData:
		if len(m.Cells) > 0 {
			return nil, errors.Wrap(ErrFormat, "cells belong to UnstructuredGrid; use verts, lines, polys or strips")
		}
		pd := vtk.NewPolyData()
		pd.Points = points
		pd.Verts = vtk.NewCellArrayFromCells(m.Verts)
		pd.Lines = vtk.NewCellArrayFromCells(m.Lines)
		pd.Polys = vtk.NewCellArrayFromCells(m.Polys)
		pd.Strips = vtk.NewCellArrayFromCells(m.Strips)
		ds = pd
	case vtk.KindUnstructuredGrid:
		if len(m.Verts)+len(m.Lines)+len(m.Polys)+len(m.Strips) > 0 {
			return nil, errors.Wrap(ErrFormat, "verts, lines, polys and strips belong to PolyData; use cells")
		}
		ug := vtk.NewUnstructuredGrid()
		ug.Points = points
		for i, c := range m.Cells {
			code, err := vtk.ParseCellType(c.Type)
			if err != nil {
				return nil, errors.Wrapf(ErrFormat, "cell %d: %v", i, err)
			}
			ug.InsertNextCell(code, c.Points...)
		}
		ds = ug
	}

	for _, c := range []struct {
		doc  *AttributesDoc
		dest *vtk.Attributes
		what string
	}{
		{m.PointData, ds.GetPointData(), "point_data"},
		{m.CellData, ds.GetCellData(), "cell_data"},
		{m.FieldData, ds.GetFieldData(), "field_data"},
	} {
		if c.doc == nil {
			continue
		}
		if err := c.doc.fill(c.dest); err != nil {
			return nil, errors.Wrap(err, c.what)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, errors.Wrapf(ErrFormat, "%v", err)
	}
	return ds, nil
}

func (d *AttributesDoc) fill(c *vtk.Attributes) error {
	c.Name = d.Name
	for i := range d.Arrays {
		a, err := d.Arrays[i].Array("")
		if err != nil {
			return err
		}
		c.Add(a)
	}
	roles := make([]string, 0, len(d.Active))
	for r := range d.Active {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	for _, r := range roles {
		role, err := vtk.ParseRole(r)
		if err != nil {
			return errors.Wrapf(ErrFormat, "%v", err)
		}
		if err := c.SetActive(role, d.Active[r]); err != nil {
			return errors.Wrapf(ErrFormat, "%v", err)
		}
	}
	return nil
}

// FromDataSet converts ds to its document form.
func FromDataSet(ds vtk.DataSet) (*Mesh, error) {
	m := &Mesh{Kind: string(ds.Kind())}
	if p := ds.GetPoints(); p != nil {
		doc, err := NewArrayDoc(p)
		if err != nil {
			return nil, errors.Wrap(err, "points")
		}
		doc.Name = ""
		m.Points = doc
	}

	switch d := ds.(type) {
	case *vtk.PolyData:
		var err error
		for _, nc := range []struct {
			dest  *[][]int64
			cells *vtk.CellArray
		}{{&m.Verts, d.Verts}, {&m.Lines, d.Lines}, {&m.Polys, d.Polys}, {&m.Strips, d.Strips}} {
			if *nc.dest, err = nc.cells.Cells(); err != nil {
				return nil, err
			}
		}
	case *vtk.UnstructuredGrid:
		cells, err := d.Cells.Cells()
		if err != nil {
			return nil, err
		}
		if len(cells) != len(d.CellTypes) {
			return nil, errors.Wrapf(ErrFormat, "%d cell types for %d cells", len(d.CellTypes), len(cells))
		}
		for i, ids := range cells {
			name := vtk.CellTypeName(d.CellTypes[i])
			if name == "" {
				return nil, errors.Wrapf(ErrFormat, "cell %d has unknown type %d", i, d.CellTypes[i])
			}
			m.Cells = append(m.Cells, CellDoc{Type: name, Points: ids})
		}
	}

	var err error
	if m.PointData, err = newAttributesDoc(ds.GetPointData()); err != nil {
		return nil, errors.Wrap(err, "point data")
	}
	if m.CellData, err = newAttributesDoc(ds.GetCellData()); err != nil {
		return nil, errors.Wrap(err, "cell data")
	}
	if m.FieldData, err = newAttributesDoc(ds.GetFieldData()); err != nil {
		return nil, errors.Wrap(err, "field data")
	}
	return m, nil
}

// newAttributesDoc returns nil for a missing or empty collection.
func newAttributesDoc(c *vtk.Attributes) (*AttributesDoc, error) {
	if c == nil || c.Len() == 0 {
		return nil, nil
	}
	d := &AttributesDoc{Name: c.Name}
	for _, a := range c.Arrays() {
		doc, err := NewArrayDoc(a)
		if err != nil {
			return nil, err
		}
		d.Arrays = append(d.Arrays, *doc)
	}
	for _, role := range vtk.Roles() {
		if name := c.ActiveName(role); name != "" {
			if d.Active == nil {
				d.Active = make(map[string]string)
			}
			d.Active[role.String()] = name
		}
	}
	return d, nil
}
