package h5vtk

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// WritePolyData writes pd at hdfPath in the HDF5 file at path.
func WritePolyData(path, hdfPath string, pd *vtk.PolyData, opts ...WriteOption) error {
	return writeFile(path, hdfPath, pd, opts...)
}

// WriteUnstructuredGrid writes ug at hdfPath in the HDF5 file at path.
func WriteUnstructuredGrid(path, hdfPath string, ug *vtk.UnstructuredGrid, opts ...WriteOption) error {
	return writeFile(path, hdfPath, ug, opts...)
}

// Write writes a dataset of either kind at hdfPath in the HDF5 file at path.
func Write(path, hdfPath string, ds vtk.DataSet, opts ...WriteOption) error {
	return writeFile(path, hdfPath, ds, opts...)
}

func writeFile(path, hdfPath string, ds vtk.DataSet, opts ...WriteOption) (err error) {
	o := defaultWriteOptions()
	for _, opt := range opts {
		opt(o)
	}
	// Reject bad input before touching the file.
	if err := ds.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidInput, "%v", err)
	}

	f, err := openForWrite(path, o.append)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = containerErr(cerr, "closing %s", path)
		}
	}()
	return WriteDataSet(f, hdfPath, ds, opts...)
}

// openForWrite opens path for appending when it exists and append is set,
// otherwise creates a new file.
func openForWrite(path string, appendMode bool) (*hdf5.File, error) {
	if appendMode {
		if _, statErr := os.Stat(path); statErr == nil {
			f, err := hdf5.OpenReadWrite(path)
			if err != nil {
				return nil, containerErr(err, "opening %s for append", path)
			}
			return f, nil
		}
	}
	f, err := hdf5.Create(path)
	if err != nil {
		return nil, containerErr(err, "creating %s", path)
	}
	return f, nil
}

// WriteDataSet writes ds into the group at hdfPath of an open, writable
// file, creating intermediate groups. A failure part way leaves the
// objects written so far in place.
func WriteDataSet(f *hdf5.File, hdfPath string, ds vtk.DataSet, opts ...WriteOption) error {
	o := defaultWriteOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := ds.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidInput, "%v", err)
	}
	hdfPath = hdf5.CleanPath(hdfPath)

	g, err := f.Root().CreateGroups(hdfPath)
	if err != nil {
		return containerErr(err, "creating group %s", hdfPath)
	}
	if g.HasAttr(AttrDataObject) {
		return containerErr(hdf5.ErrExists, "dataset at %s", hdfPath)
	}
	if err := g.SetAttr(AttrDataObject, string(ds.Kind())); err != nil {
		return containerErr(err, "stamping %s", hdfPath)
	}

	if err := WriteFieldData(g, ds.GetFieldData()); err != nil {
		return errors.Wrapf(err, "field data of %s", hdfPath)
	}

	points := ds.GetPoints()
	if points == nil {
		points = vtk.NewPoints([]float32{})
	}
	if err := WriteArray(g, PointsName, points); err != nil {
		return errors.Wrapf(err, "points of %s", hdfPath)
	}

	switch d := ds.(type) {
	case *vtk.PolyData:
		for _, nc := range d.CellArrays() {
			if nc.Cells == nil || nc.Cells.NumCells == 0 {
				continue
			}
			if err := writeCells(g, nc.Name, nc.Cells); err != nil {
				return errors.Wrapf(err, "%s of %s", nc.Name, hdfPath)
			}
		}
	case *vtk.UnstructuredGrid:
		cells := d.Cells
		if cells == nil {
			cells = vtk.NewCellArray()
		}
		if err := writeCells(g, CellsName, cells); err != nil {
			return errors.Wrapf(err, "cells of %s", hdfPath)
		}
		if err := writeCellTypes(g, d.CellTypes); err != nil {
			return errors.Wrapf(err, "cell types of %s", hdfPath)
		}
	default:
		return errors.Wrapf(ErrUnsupportedType, "dataset kind %s", ds.Kind())
	}

	if cd := ds.GetCellData(); cd != nil {
		if err := WriteAttributes(g, CellDataGroup, cd, ds.NumCells()); err != nil {
			return errors.Wrapf(err, "cell data of %s", hdfPath)
		}
	}
	if pd := ds.GetPointData(); pd != nil {
		if err := WriteAttributes(g, PointDataGroup, pd, ds.NumPoints()); err != nil {
			return errors.Wrapf(err, "point data of %s", hdfPath)
		}
	}

	if o.index {
		if err := appendIndexPath(f, hdfPath); err != nil {
			return err
		}
	}
	glog.V(1).Infof("h5vtk: wrote %s at %s (%d points, %d cells)", ds.Kind(), hdfPath, ds.NumPoints(), ds.NumCells())
	return nil
}

// ReadPolyData reads the PolyData stored at hdfPath in the file at path.
func ReadPolyData(path, hdfPath string, opts ...ReadOption) (*vtk.PolyData, error) {
	ds, err := readFile(path, hdfPath, vtk.KindPolyData, opts...)
	if err != nil {
		return nil, err
	}
	return ds.(*vtk.PolyData), nil
}

// ReadUnstructuredGrid reads the UnstructuredGrid stored at hdfPath in the
// file at path.
func ReadUnstructuredGrid(path, hdfPath string, opts ...ReadOption) (*vtk.UnstructuredGrid, error) {
	ds, err := readFile(path, hdfPath, vtk.KindUnstructuredGrid, opts...)
	if err != nil {
		return nil, err
	}
	return ds.(*vtk.UnstructuredGrid), nil
}

// Read reads the dataset at hdfPath in the file at path, whatever its kind.
func Read(path, hdfPath string, opts ...ReadOption) (vtk.DataSet, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, containerErr(err, "opening %s", path)
	}
	defer f.Close()
	kind, err := DetectKind(f, hdfPath)
	if err != nil {
		return nil, err
	}
	return ReadDataSet(f, hdfPath, kind, opts...)
}

func readFile(path, hdfPath string, kind vtk.Kind, opts ...ReadOption) (vtk.DataSet, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, containerErr(err, "opening %s", path)
	}
	defer f.Close()
	return ReadDataSet(f, hdfPath, kind, opts...)
}

// DetectKind returns the kind stamped on the group at hdfPath.
func DetectKind(f *hdf5.File, hdfPath string) (vtk.Kind, error) {
	g, err := f.OpenGroup(hdfPath)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return "", errors.Wrapf(ErrNotFound, "group %s", hdfPath)
		}
		return "", containerErr(err, "opening %s", hdfPath)
	}
	return stampedKind(g)
}

func stampedKind(g *hdf5.Group) (vtk.Kind, error) {
	attr, err := g.Attr(AttrDataObject)
	if err != nil {
		return "", errors.Wrapf(ErrKindMismatch, "%s has no %s attribute", g.Path(), AttrDataObject)
	}
	s, err := attr.ReadScalarString()
	if err != nil {
		return "", errors.Wrapf(ErrKindMismatch, "%s: %v", g.Path(), err)
	}
	kind, err := vtk.ParseKind(s)
	if err != nil {
		return "", errors.Wrapf(ErrKindMismatch, "%s: %v", g.Path(), err)
	}
	return kind, nil
}

// ReadDataSet reads the dataset at hdfPath, which must be stamped with
// kind. Nothing is returned on a kind mismatch.
func ReadDataSet(f *hdf5.File, hdfPath string, kind vtk.Kind, opts ...ReadOption) (vtk.DataSet, error) {
	g, err := f.OpenGroup(hdfPath)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "group %s", hdfPath)
		}
		return nil, containerErr(err, "opening %s", hdfPath)
	}

	stored, err := stampedKind(g)
	if err != nil {
		glog.Errorf("h5vtk: reading %s as %s: %v", hdfPath, kind, err)
		return nil, err
	}
	if stored != kind {
		glog.Errorf("h5vtk: %s holds %s, not %s", hdfPath, stored, kind)
		return nil, errors.Wrapf(ErrKindMismatch, "%s holds %s, not %s", hdfPath, stored, kind)
	}

	points, err := ReadArray(g, PointsName)
	if err != nil {
		return nil, errors.Wrapf(err, "points of %s", hdfPath)
	}
	if err := vtk.ValidatePoints(points); err != nil {
		return nil, errors.Wrapf(ErrShapeMalformed, "points of %s: %v", hdfPath, err)
	}

	var ds vtk.DataSet
	switch kind {
	case vtk.KindPolyData:
		pd := vtk.NewPolyData()
		pd.Points = points
		for _, nc := range pd.CellArrays() {
			if !g.HasDataset(nc.Name) {
				continue
			}
			cells, err := readCells(g, nc.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "%s of %s", nc.Name, hdfPath)
			}
			*nc.Cells = *cells
		}
		ds = pd
	case vtk.KindUnstructuredGrid:
		ug := vtk.NewUnstructuredGrid()
		ug.Points = points
		if g.HasDataset(CellsName) {
			cells, err := readCells(g, CellsName)
			if err != nil {
				return nil, errors.Wrapf(err, "cells of %s", hdfPath)
			}
			types, err := readCellTypes(g)
			if err != nil {
				return nil, errors.Wrapf(err, "cell types of %s", hdfPath)
			}
			if len(types) != cells.NumCells {
				return nil, errors.Wrapf(ErrShapeMalformed, "%s: %d cell types for %d cells", hdfPath, len(types), cells.NumCells)
			}
			ug.Cells, ug.CellTypes = cells, types
		}
		ds = ug
	}

	if g.HasGroup(FieldDataGroup) {
		if err := ReadFieldData(g, ds.GetFieldData(), opts...); err != nil {
			return nil, errors.Wrapf(err, "field data of %s", hdfPath)
		}
	}
	if g.HasGroup(CellDataGroup) {
		if err := ReadAttributes(g, CellDataGroup, ds.NumCells(), ds.GetCellData()); err != nil {
			return nil, errors.Wrapf(err, "cell data of %s", hdfPath)
		}
	}
	if g.HasGroup(PointDataGroup) {
		if err := ReadAttributes(g, PointDataGroup, ds.NumPoints(), ds.GetPointData()); err != nil {
			return nil, errors.Wrapf(err, "point data of %s", hdfPath)
		}
	}
	glog.V(1).Infof("h5vtk: read %s at %s (%d points, %d cells)", kind, hdfPath, ds.NumPoints(), ds.NumCells())
	return ds, nil
}
