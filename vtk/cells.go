package vtk

import "github.com/pkg/errors"

// Cell type codes stored in UnstructuredGrid.CellTypes.
const (
	EmptyCell     int32 = 0
	Vertex        int32 = 1
	PolyVertex    int32 = 2
	Line          int32 = 3
	PolyLine      int32 = 4
	Triangle      int32 = 5
	TriangleStrip int32 = 6
	Polygon       int32 = 7
	Pixel         int32 = 8
	Quad          int32 = 9
	Tetra         int32 = 10
	Voxel         int32 = 11
	Hexahedron    int32 = 12
	Wedge         int32 = 13
	Pyramid       int32 = 14
)

var cellTypeNames = map[int32]string{
	EmptyCell:     "empty",
	Vertex:        "vertex",
	PolyVertex:    "poly_vertex",
	Line:          "line",
	PolyLine:      "poly_line",
	Triangle:      "triangle",
	TriangleStrip: "triangle_strip",
	Polygon:       "polygon",
	Pixel:         "pixel",
	Quad:          "quad",
	Tetra:         "tetra",
	Voxel:         "voxel",
	Hexahedron:    "hexahedron",
	Wedge:         "wedge",
	Pyramid:       "pyramid",
}

// CellTypeName returns the lower-case name of a cell type code, or "" if
// the code is not one of the constants above.
func CellTypeName(code int32) string {
	return cellTypeNames[code]
}

// ParseCellType returns the code for a name produced by CellTypeName.
func ParseCellType(name string) (int32, error) {
	for code, n := range cellTypeNames {
		if n == name {
			return code, nil
		}
	}
	return 0, errors.Errorf("unknown cell type %q", name)
}

// CellArray stores cells in the flat encoding [n, p0 .. pn-1] per cell.
type CellArray struct {
	Connectivity []int64
	NumCells     int
}

// NewCellArray returns an empty cell array.
func NewCellArray() *CellArray {
	return &CellArray{}
}

// NewCellArrayFromCells builds a cell array from per-cell point id lists.
func NewCellArrayFromCells(cells [][]int64) *CellArray {
	ca := NewCellArray()
	for _, ids := range cells {
		ca.InsertNextCell(ids...)
	}
	return ca
}

// InsertNextCell appends a cell and returns its index.
func (ca *CellArray) InsertNextCell(ids ...int64) int {
	ca.Connectivity = append(ca.Connectivity, int64(len(ids)))
	ca.Connectivity = append(ca.Connectivity, ids...)
	ca.NumCells++
	return ca.NumCells - 1
}

// Len returns the length of the flat encoding.
func (ca *CellArray) Len() int {
	if ca == nil {
		return 0
	}
	return len(ca.Connectivity)
}

// Cells decodes the flat encoding into one id slice per cell.
func (ca *CellArray) Cells() ([][]int64, error) {
	if ca == nil {
		return nil, nil
	}
	conn := ca.Connectivity
	cells := make([][]int64, 0, max(0, min(ca.NumCells, len(conn))))
	for i := 0; i < len(conn); {
		n := conn[i]
		if n < 0 || int64(len(conn)-i-1) < n {
			return nil, errors.Wrapf(ErrInvalid, "cell %d at offset %d: size %d overruns %d ids", len(cells), i, n, len(conn))
		}
		cells = append(cells, conn[i+1:i+1+int(n)])
		i += 1 + int(n)
	}
	if len(cells) != ca.NumCells {
		return nil, errors.Wrapf(ErrInvalid, "connectivity holds %d cells, count says %d", len(cells), ca.NumCells)
	}
	return cells, nil
}

// Validate checks the flat encoding against NumCells and, when numPoints
// is not negative, that every id is a valid point index.
func (ca *CellArray) Validate(numPoints int) error {
	cells, err := ca.Cells()
	if err != nil {
		return err
	}
	if numPoints < 0 {
		return nil
	}
	for i, ids := range cells {
		for _, id := range ids {
			if id < 0 || id >= int64(numPoints) {
				return errors.Wrapf(ErrInvalid, "cell %d: point id %d out of range [0, %d)", i, id, numPoints)
			}
		}
	}
	return nil
}
