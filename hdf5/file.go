package hdf5

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/alloc"
	"github.com/robert-malhotra/go-h5vtk/internal/binary"
	"github.com/robert-malhotra/go-h5vtk/internal/superblock"
)

// File is an open HDF5 file.
type File struct {
	path string
	file *os.File
	sb   *superblock.Superblock
	cfg  binary.Config
	root *node

	writable bool
	dirty    bool
	closed   bool

	// stats describes the layout of the last write.
	stats alloc.Stats
}

// Open opens an HDF5 file for reading.
func Open(path string) (*File, error) {
	f, err := openFile(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("hdf5: opened %s read-only (superblock v%d)", path, f.sb.Version)
	return f, nil
}

// OpenReadWrite opens an existing HDF5 file for modification. The whole
// object tree is read into memory; changes are written on Flush or Close.
func OpenReadWrite(path string) (*File, error) {
	f, err := openFile(path, os.O_RDWR)
	if err != nil {
		return nil, err
	}
	if err := f.loadAll(f.root); err != nil {
		f.file.Close()
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	f.writable = true
	glog.V(1).Infof("hdf5: opened %s read-write", path)
	return f, nil
}

func openFile(path string, flag int) (*File, error) {
	osf, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	sb, err := superblock.Read(osf)
	if err != nil {
		osf.Close()
		if errors.Is(err, superblock.ErrNotHDF5) {
			return nil, errors.Wrapf(ErrNotHDF5, "%s", path)
		}
		if errors.Is(err, superblock.ErrUnsupportedVersion) {
			return nil, errors.Wrapf(ErrUnsupported, "%s: %v", path, err)
		}
		return nil, errors.Wrapf(err, "reading superblock of %s", path)
	}
	if sb.BaseAddress != 0 || sb.FileOffset != 0 {
		osf.Close()
		return nil, errors.Wrapf(ErrUnsupported, "%s: superblock at offset %d with base address %d", path, sb.FileOffset, sb.BaseAddress)
	}

	f := &File{path: path, file: osf, sb: sb, cfg: sb.Config()}
	root, err := f.readNode("/", nil, sb.RootGroupAddress)
	if err != nil {
		osf.Close()
		return nil, err
	}
	if !root.group {
		osf.Close()
		return nil, errors.Wrapf(ErrNotGroup, "%s: root object", path)
	}
	f.root = root
	return f, nil
}

// Path returns the file system path of the file.
func (f *File) Path() string {
	return f.path
}

// Version returns the superblock version.
func (f *File) Version() int {
	return int(f.sb.Version)
}

// Writable reports whether the file accepts modifications.
func (f *File) Writable() bool {
	return f.writable
}

// Root returns the root group.
func (f *File) Root() *Group {
	return newGroup(f, f.root)
}

// OpenGroup opens a group by absolute path.
func (f *File) OpenGroup(path string) (*Group, error) {
	return f.Root().OpenGroup(path)
}

// OpenDataset opens a dataset by absolute path.
func (f *File) OpenDataset(path string) (*Dataset, error) {
	return f.Root().OpenDataset(path)
}

// AllocStats reports the space used by the last Flush.
func (f *File) AllocStats() alloc.Stats {
	return f.stats
}

// Flush writes pending changes to disk. It is a no-op for read-only files
// and for files without changes.
func (f *File) Flush() error {
	if f.closed {
		return ErrClosed
	}
	if !f.writable || !f.dirty {
		return nil
	}
	if err := f.write(); err != nil {
		return errors.Wrapf(err, "writing %s", f.path)
	}
	f.dirty = false
	return nil
}

// Close flushes pending changes and releases the file.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	flushErr := f.Flush()
	f.closed = true
	closeErr := f.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (f *File) checkOpen() error {
	if f.closed {
		return ErrClosed
	}
	return nil
}

func (f *File) checkWritable() error {
	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return errors.Wrapf(ErrReadOnly, "%s", f.path)
	}
	return nil
}
