package h5vtk

import (
	"sort"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
)

// AppendIndexEntries writes paths[i] as a one-element string dataset named
// strconv.Itoa(i) under IndexPath, creating the group when needed. An
// entry already stored under the same name is replaced; entries beyond
// len(paths) are left alone. Use ResetIndex first to rebuild from scratch.
func AppendIndexEntries(f *hdf5.File, paths []string) error {
	g, err := f.Root().CreateGroups(IndexPath)
	if err != nil {
		return containerErr(err, "creating %s", IndexPath)
	}
	for i, p := range paths {
		name := strconv.Itoa(i)
		if g.HasDataset(name) {
			if err := g.Unlink(name); err != nil {
				return containerErr(err, "replacing index entry %s", name)
			}
		}
		_, err := g.CreateDataset(name, []string{p}, hdf5.WithAttribute(AttrNumComponents, int32(1)))
		if err != nil {
			return containerErr(err, "writing index entry %s", name)
		}
	}
	glog.V(1).Infof("h5vtk: wrote %d index entries", len(paths))
	return nil
}

// ResetIndex removes the object index. A file without one is left unchanged.
func ResetIndex(f *hdf5.File) error {
	root := f.Root()
	name := IndexPath[1:]
	if !root.Has(name) {
		return nil
	}
	return containerErr(root.Unlink(name), "removing %s", IndexPath)
}

// ReadIndex returns the indexed paths ordered by entry number. A file
// without an index yields an empty slice. Entries whose names are not
// numbers are skipped.
func ReadIndex(f *hdf5.File) ([]string, error) {
	g, err := f.OpenGroup(IndexPath)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return []string{}, nil
		}
		return nil, containerErr(err, "opening %s", IndexPath)
	}
	members, err := g.Members()
	if err != nil {
		return nil, containerErr(err, "listing %s", IndexPath)
	}

	type entry struct {
		pos  int
		path string
	}
	entries := make([]entry, 0, len(members))
	for _, name := range members {
		pos, err := strconv.Atoi(name)
		if err != nil || pos < 0 {
			glog.Warningf("h5vtk: skipping index entry %q: not a position", name)
			continue
		}
		ds, err := g.OpenDataset(name)
		if err != nil {
			glog.Warningf("h5vtk: skipping index entry %q: %v", name, err)
			continue
		}
		var vals []string
		if err := ds.Read(&vals); err != nil || len(vals) == 0 {
			glog.Warningf("h5vtk: skipping index entry %q: no path string", name)
			continue
		}
		entries = append(entries, entry{pos: pos, path: vals[0]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

// appendIndexPath adds path after the existing entries unless it is
// already indexed.
func appendIndexPath(f *hdf5.File, path string) error {
	paths, err := ReadIndex(f)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if p == path {
			return nil
		}
	}
	return AppendIndexEntries(f, append(paths, path))
}

// WriteObjectIndex opens the existing file at path and appends paths to
// its index.
func WriteObjectIndex(path string, paths []string) (err error) {
	f, err := hdf5.OpenReadWrite(path)
	if err != nil {
		return containerErr(err, "opening %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = containerErr(cerr, "closing %s", path)
		}
	}()
	return AppendIndexEntries(f, paths)
}

// ReadObjectIndex returns the index of the file at path.
func ReadObjectIndex(path string) ([]string, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, containerErr(err, "opening %s", path)
	}
	defer f.Close()
	return ReadIndex(f)
}

// FindDataSets walks f and returns the paths of every group stamped with
// a dataset kind, in walk order.
func FindDataSets(f *hdf5.File) ([]string, error) {
	var paths []string
	err := hdf5.Walk(f.Root(), func(path string, obj hdf5.Object, err error) error {
		if err != nil {
			glog.Warningf("h5vtk: skipping %s: %v", path, err)
			return nil
		}
		g, ok := obj.(*hdf5.Group)
		if !ok {
			return nil
		}
		if _, err := stampedKind(g); err == nil {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, containerErr(err, "walking %s", f.Path())
	}
	return paths, nil
}
