// Package vtk is a small in-memory model of VTK geometry datasets: typed
// data arrays, attribute collections with active roles, cell connectivity
// and the PolyData and UnstructuredGrid dataset kinds.
//
// The model carries no file format of its own; see package h5vtk for the
// HDF5 mapping.
package vtk
