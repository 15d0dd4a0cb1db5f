package h5vtk

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// writeCells stores the flat connectivity of ca as int64 with a
// "Number Of Cells" attribute.
func writeCells(g *hdf5.Group, name string, ca *vtk.CellArray) error {
	conn := ca.Connectivity
	if conn == nil {
		conn = []int64{}
	}
	if err := WriteArray(g, name, vtk.NewArray(name, 1, conn)); err != nil {
		return err
	}
	ds, err := g.OpenDataset(name)
	if err != nil {
		return containerErr(err, "reopening %s", name)
	}
	if err := ds.SetAttr(AttrNumCells, int32(ca.NumCells)); err != nil {
		return containerErr(err, "writing %q on %s", AttrNumCells, ds.Path())
	}
	return nil
}

// readCells loads a connectivity dataset of any integer width. The
// "Number Of Cells" attribute is required and must agree with the
// connectivity.
func readCells(g *hdf5.Group, name string) (*vtk.CellArray, error) {
	ds, err := g.OpenDataset(name)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "%s in %s", name, g.Path())
		}
		return nil, containerErr(err, "opening %s", name)
	}
	if ds.Class() != hdf5.ClassInteger {
		return nil, errors.Wrapf(ErrTypeMismatch, "%s holds %s, want integers", ds.Path(), ds.TypeName())
	}
	conn, err := ds.ReadInt64s()
	if err != nil {
		return nil, containerErr(err, "reading %s", ds.Path())
	}

	attr, err := ds.Attr(AttrNumCells)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%q on %s", AttrNumCells, ds.Path())
	}
	n, err := attr.ReadScalarInt64()
	if err != nil {
		return nil, containerErr(err, "reading %q on %s", AttrNumCells, ds.Path())
	}

	if n < 0 || n > int64(len(conn)) {
		return nil, errors.Wrapf(ErrShapeMalformed, "%s: %q is %d for %d ids", ds.Path(), AttrNumCells, n, len(conn))
	}
	ca := &vtk.CellArray{Connectivity: conn, NumCells: int(n)}
	if _, err := ca.Cells(); err != nil {
		return nil, errors.Wrapf(ErrShapeMalformed, "%s: %v", ds.Path(), err)
	}
	return ca, nil
}

// writeCellTypes stores one int32 type code per cell.
func writeCellTypes(g *hdf5.Group, types []int32) error {
	if types == nil {
		types = []int32{}
	}
	return WriteArray(g, CellTypesName, vtk.NewArray(CellTypesName, 1, types))
}

func readCellTypes(g *hdf5.Group) ([]int32, error) {
	ds, err := g.OpenDataset(CellTypesName)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "%s in %s", CellTypesName, g.Path())
		}
		return nil, containerErr(err, "opening %s", CellTypesName)
	}
	if ds.Class() != hdf5.ClassInteger {
		return nil, errors.Wrapf(ErrTypeMismatch, "%s holds %s, want integers", ds.Path(), ds.TypeName())
	}
	wide, err := ds.ReadInt64s()
	if err != nil {
		return nil, containerErr(err, "reading %s", ds.Path())
	}
	types := make([]int32, len(wide))
	for i, v := range wide {
		types[i] = int32(v)
	}
	return types, nil
}
