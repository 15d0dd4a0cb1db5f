package h5vtk

import (
	"strconv"
	"strings"
)

// Group, dataset and attribute names of the layout.
const (
	AttrDataObject    = "VTK_DATA_OBJECT"
	AttrNumComponents = "NumComponents"
	AttrNumCells      = "Number Of Cells"
	AttrNumBits       = "NumBits"
	AttrName          = "Name"

	PointsName    = "Points"
	CellsName     = "CELLS"
	CellTypesName = "CELL_TYPES"

	PointDataGroup = "POINT_DATA"
	CellDataGroup  = "CELL_DATA"
	FieldDataGroup = "FIELD_DATA"

	// IndexPath is the group holding the object index.
	IndexPath = "/VTK_OBJECT_INDEX"

	// DefaultFieldDataName names a field-data block whose collection has no name.
	DefaultFieldDataName = "FieldData"

	unnamedArray = "unknown"
	nullArray    = "NULL_ARRAY"
)

// escapeName percent-encodes bytes that are not printable ASCII, together
// with space, '/' and '%', so any array name is a valid link name. Names
// made only of dots would read as "." or ".." and are escaped whole.
func escapeName(name string) string {
	if name != "" && strings.Trim(name, ".") == "" {
		return strings.Repeat("%2E", len(name))
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= ' ' || c >= 0x7f || c == '%' || c == '/' {
			b.WriteByte('%')
			b.WriteString(strings.ToUpper(strconv.FormatUint(uint64(c)|0x100, 16)[1:]))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// unescapeName reverses escapeName. Malformed escapes are kept literally.
func unescapeName(name string) string {
	if !strings.Contains(name, "%") {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '%' && i+2 < len(name) {
			if v, err := strconv.ParseUint(name[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
