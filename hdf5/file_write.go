package hdf5

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/alloc"
	"github.com/robert-malhotra/go-h5vtk/internal/binary"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
	"github.com/robert-malhotra/go-h5vtk/internal/object"
	"github.com/robert-malhotra/go-h5vtk/internal/superblock"
)

// Create creates a new HDF5 file, truncating any existing file at path.
// The file is written when it is flushed or closed.
func Create(path string, opts ...FileOption) (*File, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}
	cfg := binary.Config{OffsetSize: o.offsetSize, LengthSize: o.lengthSize}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	osf, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	sb := superblock.New()
	sb.OffsetSize = uint8(cfg.OffsetSize)
	sb.LengthSize = uint8(cfg.LengthSize)
	sb.ExtensionAddress = cfg.UndefinedAddress()

	f := &File{
		path:     path,
		file:     osf,
		sb:       sb,
		cfg:      cfg,
		root:     newGroupNode("/", nil),
		writable: true,
		dirty:    true,
	}
	glog.V(1).Infof("hdf5: created %s", path)
	return f, nil
}

// write lays out the whole tree after the superblock and rewrites the file.
// Dataset data precedes its header and children precede their group, so
// every header is encoded once with final addresses.
func (f *File) write() error {
	a := alloc.New(uint64(f.sb.Size()))
	buf := &binary.Buffer{}

	rootAddr, err := f.writeNode(f.root, a, buf)
	if err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return errors.Wrap(err, "file layout")
	}

	f.sb.RootGroupAddress = rootAddr
	f.sb.EOFAddress = a.EOFAddr()
	if _, err := buf.WriteAt(f.sb.Encode(), 0); err != nil {
		return err
	}

	image := buf.Bytes()
	if _, err := f.file.WriteAt(image, 0); err != nil {
		return err
	}
	if err := f.file.Truncate(int64(len(image))); err != nil {
		return err
	}
	if err := f.file.Sync(); err != nil {
		return err
	}

	f.stats = a.Stats()
	glog.V(1).Infof("hdf5: wrote %s: %d bytes, %d allocations", f.path, len(image), f.stats.Allocations)
	return nil
}

func (f *File) writeNode(n *node, a *alloc.Allocator, buf *binary.Buffer) (uint64, error) {
	var messages []message.Encodable
	minChunk := 0

	if n.group {
		children, err := f.childNodes(n)
		if err != nil {
			return 0, err
		}
		links := make([]*message.Link, 0, len(children))
		for _, c := range children {
			addr, err := f.writeNode(c, a, buf)
			if err != nil {
				return 0, err
			}
			links = append(links, message.NewHardLink(c.name, addr))
		}
		messages = object.NewGroupHeader(f.cfg, links)
		minChunk = object.MinGroupChunkSize
	} else {
		data, err := f.datasetBytes(n)
		if err != nil {
			return 0, err
		}
		dataAddr := f.cfg.UndefinedAddress()
		if len(data) > 0 {
			dataAddr = a.Alloc(alloc.RawData, uint64(len(data)), n.path())
			if _, err := buf.WriteAt(data, int64(dataAddr)); err != nil {
				return 0, err
			}
		}
		n.layout = message.NewContiguousLayout(dataAddr, uint64(len(data)))
		messages = object.NewDatasetHeader(n.space, n.dtype, n.layout)
	}
	for _, attr := range n.attrs {
		messages = append(messages, attr)
	}

	header, err := object.Encode(f.cfg, messages, minChunk)
	if err != nil {
		return 0, errors.Wrapf(err, "encoding header of %s", n.path())
	}
	addr := a.Alloc(alloc.Metadata, uint64(len(header)), n.path())
	if _, err := buf.WriteAt(header, int64(addr)); err != nil {
		return 0, err
	}
	n.addr = addr
	return addr, nil
}
