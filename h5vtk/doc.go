// Package h5vtk stores vtk geometry datasets in HDF5 files and reads them
// back.
//
// A dataset written at path P is laid out as:
//
//	P                                  attr VTK_DATA_OBJECT = "PolyData" | "UnstructuredGrid"
//	P/Points                           attr NumComponents = 3
//	P/Verts, Lines, Polys, Strips      PolyData only, each optional; attr "Number Of Cells"
//	P/CELLS, P/CELL_TYPES              UnstructuredGrid only; CELLS has "Number Of Cells"
//	P/FIELD_DATA/<array>...            group attr Name
//	P/CELL_DATA/<array>...             group attrs ActiveScalars, ActiveVectors, ...
//	P/POINT_DATA/<array>...            same role attributes
//	/VTK_OBJECT_INDEX/0, 1, ...        one string dataset per indexed path
//
// Every array dataset carries an integer NumComponents attribute. The type
// of an array is recovered from the stored datatype alone.
package h5vtk
