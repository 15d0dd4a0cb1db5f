package vtk

import "github.com/pkg/errors"

// Kind names a dataset type as stamped on disk.
type Kind string

const (
	KindPolyData         Kind = "PolyData"
	KindUnstructuredGrid Kind = "UnstructuredGrid"
)

// ParseKind validates a stored kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindPolyData, KindUnstructuredGrid:
		return k, nil
	}
	return "", errors.Errorf("unknown dataset kind %q", s)
}

// DataSet is implemented by *PolyData and *UnstructuredGrid.
type DataSet interface {
	Kind() Kind
	GetPoints() *Array
	NumPoints() int
	NumCells() int
	GetPointData() *Attributes
	GetCellData() *Attributes
	GetFieldData() *Attributes
	Validate() error
}

// NewPoints returns a 3-component point array named "Points" over xyz.
func NewPoints[T float32 | float64](xyz []T) *Array {
	return NewArray("Points", 3, xyz)
}

// pointCount returns the tuple count of points, zero when absent.
func pointCount(points *Array) int {
	if points == nil {
		return 0
	}
	return points.NumTuples
}

// ValidatePoints checks that points, when present, are 3-component floats.
func ValidatePoints(points *Array) error {
	if points == nil {
		return nil
	}
	if err := points.Validate(); err != nil {
		return err
	}
	if points.NumComponents != 3 {
		return errors.Wrapf(ErrInvalid, "points have %d components, want 3", points.NumComponents)
	}
	if points.Type != Float32 && points.Type != Float64 {
		return errors.Wrapf(ErrInvalid, "points are %s, want float32 or float64", points.Type)
	}
	return nil
}

func validateCollections(pd, cd, fd *Attributes) error {
	for _, c := range []struct {
		name  string
		attrs *Attributes
	}{{"point data", pd}, {"cell data", cd}, {"field data", fd}} {
		if c.attrs == nil {
			continue
		}
		if err := c.attrs.Validate(); err != nil {
			return errors.Wrap(err, c.name)
		}
	}
	return nil
}

// PolyData is a point set with vertex, line, polygon and triangle-strip cells.
type PolyData struct {
	Points *Array

	Verts  *CellArray
	Lines  *CellArray
	Polys  *CellArray
	Strips *CellArray

	PointData *Attributes
	CellData  *Attributes
	FieldData *Attributes
}

// NewPolyData returns an empty PolyData with empty cell arrays and
// collections.
func NewPolyData() *PolyData {
	return &PolyData{
		Verts:     NewCellArray(),
		Lines:     NewCellArray(),
		Polys:     NewCellArray(),
		Strips:    NewCellArray(),
		PointData: NewAttributes(),
		CellData:  NewAttributes(),
		FieldData: NewAttributes(),
	}
}

func (pd *PolyData) Kind() Kind                { return KindPolyData }
func (pd *PolyData) GetPoints() *Array         { return pd.Points }
func (pd *PolyData) NumPoints() int            { return pointCount(pd.Points) }
func (pd *PolyData) GetPointData() *Attributes { return pd.PointData }
func (pd *PolyData) GetCellData() *Attributes  { return pd.CellData }
func (pd *PolyData) GetFieldData() *Attributes { return pd.FieldData }

// NumCells returns the total over all four cell arrays.
func (pd *PolyData) NumCells() int {
	n := 0
	for _, ca := range pd.CellArrays() {
		if ca.Cells != nil {
			n += ca.Cells.NumCells
		}
	}
	return n
}

// NamedCells pairs a cell array with its storage name.
type NamedCells struct {
	Name  string
	Cells *CellArray
}

// CellArrays returns the four cell arrays with their names in storage order.
func (pd *PolyData) CellArrays() []NamedCells {
	return []NamedCells{
		{"Verts", pd.Verts},
		{"Lines", pd.Lines},
		{"Polys", pd.Polys},
		{"Strips", pd.Strips},
	}
}

// Validate checks points, connectivity and attribute arrays.
func (pd *PolyData) Validate() error {
	if err := ValidatePoints(pd.Points); err != nil {
		return err
	}
	for _, ca := range pd.CellArrays() {
		if ca.Cells == nil {
			continue
		}
		if err := ca.Cells.Validate(pd.NumPoints()); err != nil {
			return errors.Wrap(err, ca.Name)
		}
	}
	return validateCollections(pd.PointData, pd.CellData, pd.FieldData)
}

// UnstructuredGrid is a point set with arbitrary cells, each tagged with a
// cell type code.
type UnstructuredGrid struct {
	Points    *Array
	Cells     *CellArray
	CellTypes []int32

	PointData *Attributes
	CellData  *Attributes
	FieldData *Attributes
}

// NewUnstructuredGrid returns an empty grid.
func NewUnstructuredGrid() *UnstructuredGrid {
	return &UnstructuredGrid{
		Cells:     NewCellArray(),
		PointData: NewAttributes(),
		CellData:  NewAttributes(),
		FieldData: NewAttributes(),
	}
}

func (ug *UnstructuredGrid) Kind() Kind                { return KindUnstructuredGrid }
func (ug *UnstructuredGrid) GetPoints() *Array         { return ug.Points }
func (ug *UnstructuredGrid) NumPoints() int            { return pointCount(ug.Points) }
func (ug *UnstructuredGrid) GetPointData() *Attributes { return ug.PointData }
func (ug *UnstructuredGrid) GetCellData() *Attributes  { return ug.CellData }
func (ug *UnstructuredGrid) GetFieldData() *Attributes { return ug.FieldData }

// NumCells returns the number of cells.
func (ug *UnstructuredGrid) NumCells() int {
	if ug.Cells == nil {
		return 0
	}
	return ug.Cells.NumCells
}

// InsertNextCell appends a cell of the given type and returns its index.
func (ug *UnstructuredGrid) InsertNextCell(cellType int32, ids ...int64) int {
	if ug.Cells == nil {
		ug.Cells = NewCellArray()
	}
	ug.CellTypes = append(ug.CellTypes, cellType)
	return ug.Cells.InsertNextCell(ids...)
}

// Validate checks points, connectivity, cell types and attribute arrays.
func (ug *UnstructuredGrid) Validate() error {
	if err := ValidatePoints(ug.Points); err != nil {
		return err
	}
	if ug.Cells != nil {
		if err := ug.Cells.Validate(ug.NumPoints()); err != nil {
			return errors.Wrap(err, "cells")
		}
	}
	if len(ug.CellTypes) != ug.NumCells() {
		return errors.Wrapf(ErrInvalid, "%d cell types for %d cells", len(ug.CellTypes), ug.NumCells())
	}
	return validateCollections(ug.PointData, ug.CellData, ug.FieldData)
}
