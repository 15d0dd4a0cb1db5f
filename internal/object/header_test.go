package object

import (
	"bytes"
	"errors"
	"testing"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

var cfg = binary.DefaultConfig()

func TestHeaderGetMessage(t *testing.T) {
	h := &Header{
		Messages: []message.Message{
			message.NewSimpleDataspace(10, 20),
			message.NewInteger(4, true),
		},
	}

	ds := h.Dataspace()
	if ds == nil || ds.Rank() != 2 {
		t.Fatalf("wrong dataspace returned: %+v", ds)
	}
	if h.DataLayout() != nil {
		t.Error("expected nil for missing layout message")
	}
	if h.GetMessage(message.TypeFilterPipeline) != nil {
		t.Error("expected nil for missing filter pipeline message")
	}
}

func TestHeaderGetMessages(t *testing.T) {
	h := &Header{
		Messages: []message.Message{
			message.NewScalarDataspace(),
			&message.Attribute{Name: "attr1"},
			&message.Attribute{Name: "attr2"},
		},
	}
	if attrs := h.Attributes(); len(attrs) != 2 || attrs[1].Name != "attr2" {
		t.Errorf("unexpected attributes %+v", attrs)
	}
	if got := h.GetMessages(message.TypeDataspace); len(got) != 1 {
		t.Errorf("expected 1 dataspace, got %d", len(got))
	}
	if got := h.GetMessages(message.TypeLink); len(got) != 0 {
		t.Errorf("expected no links, got %d", len(got))
	}
}

func TestEncodeReadGroup(t *testing.T) {
	links := []*message.Link{
		message.NewHardLink("Points", 800),
		message.NewHardLink("PointData", 1600),
	}
	buf, err := Encode(cfg, NewGroupHeader(cfg, links), MinGroupChunkSize)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// signature, version, flags, 1-byte size, 120-byte chunk, checksum
	if len(buf) != 4+1+1+1+MinGroupChunkSize+4 {
		t.Errorf("header is %d bytes", len(buf))
	}

	h, err := Read(bytes.NewReader(buf), cfg, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	got := h.Links()
	if len(got) != 2 || got[0].Name != "Points" || got[1].ObjectAddress != 1600 {
		t.Errorf("unexpected links %+v", got)
	}
	if li := h.LinkInfo(); li == nil || li.Dense(cfg) {
		t.Errorf("expected compact link info, got %+v", li)
	}
}

func TestEncodeReadDataset(t *testing.T) {
	msgs := NewDatasetHeader(
		message.NewSimpleDataspace(4, 3),
		message.NewFloat(4),
		message.NewContiguousLayout(2048, 48),
	)
	msgs = append(msgs, message.NewAttribute("NumComponents", message.NewInteger(4, true),
		message.NewScalarDataspace(), []byte{3, 0, 0, 0}))

	buf, err := Encode(cfg, msgs, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var file binary.Buffer
	if _, err := file.WriteAt(buf, 512); err != nil {
		t.Fatal(err)
	}

	h, err := Read(bytes.NewReader(file.Bytes()), cfg, 512)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if h.Address != 512 {
		t.Errorf("Address = %d", h.Address)
	}
	if l := h.DataLayout(); l == nil || l.Address != 2048 || l.Size != 48 {
		t.Errorf("unexpected layout %+v", l)
	}
	if dt := h.Datatype(); dt == nil || dt.Class != message.ClassFloatPoint {
		t.Errorf("unexpected datatype %+v", dt)
	}
	if attrs := h.Attributes(); len(attrs) != 1 || attrs[0].Name != "NumComponents" {
		t.Errorf("unexpected attributes %+v", attrs)
	}
}

func TestReadContinuation(t *testing.T) {
	const contAt = 256

	// Continuation chunk holding one link.
	block := binary.NewEncoder(cfg)
	block.Write(SignatureContinuation)
	link := message.Encode(message.NewHardLink("late", 4096), cfg)
	block.Uint8(uint8(message.TypeLink))
	block.Uint16(uint16(len(link)))
	block.Uint8(0)
	block.Write(link)
	block.AppendChecksum()

	ref := binary.NewEncoder(cfg)
	ref.Offset(contAt)
	ref.Length(uint64(block.Len()))
	msgs := NewGroupHeader(cfg, []*message.Link{message.NewHardLink("early", 2048)})
	msgs = append(msgs, message.NewUnknown(message.TypeObjectHeaderContinuation, ref.Bytes()))
	head, err := Encode(cfg, msgs, 0)
	if err != nil {
		t.Fatal(err)
	}

	var file binary.Buffer
	file.WriteAt(head, 0)
	file.WriteAt(block.Bytes(), contAt)

	h, err := Read(bytes.NewReader(file.Bytes()), cfg, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	links := h.Links()
	if len(links) != 2 || links[0].Name != "early" || links[1].Name != "late" {
		t.Errorf("unexpected links %+v", links)
	}
	if h.GetMessage(message.TypeObjectHeaderContinuation) != nil {
		t.Error("continuation messages should not be kept")
	}
}

func TestReadErrors(t *testing.T) {
	buf, err := Encode(cfg, NewGroupHeader(cfg, nil), MinGroupChunkSize)
	if err != nil {
		t.Fatal(err)
	}

	corrupt := append([]byte(nil), buf...)
	corrupt[10] ^= 0xFF
	if _, err := Read(bytes.NewReader(corrupt), cfg, 0); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}

	v1 := []byte{1, 0, 1, 0, 0, 0, 0, 0}
	if _, err := Read(bytes.NewReader(v1), cfg, 0); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}

	junk := []byte("garbage!")
	if _, err := Read(bytes.NewReader(junk), cfg, 0); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader, got %v", err)
	}
}
