package meshio

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// Array builds the described array. defaultName is used when the document
// gives no name.
func (d *ArrayDoc) Array(defaultName string) (*vtk.Array, error) {
	name := d.Name
	if name == "" {
		name = defaultName
	}
	tag, err := vtk.ParseTypeTag(d.Type)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "array %q: %v", name, err)
	}
	components := d.Components
	if components == 0 {
		components = 1
	}
	if components < 0 {
		return nil, errors.Wrapf(ErrFormat, "array %q: %d components", name, components)
	}

	var a *vtk.Array
	switch tag {
	case vtk.Int8:
		a, err = numericArray[int8](name, components, &d.Values)
	case vtk.Uint8:
		a, err = numericArray[uint8](name, components, &d.Values)
	case vtk.Int16:
		a, err = numericArray[int16](name, components, &d.Values)
	case vtk.Uint16:
		a, err = numericArray[uint16](name, components, &d.Values)
	case vtk.Int32:
		a, err = numericArray[int32](name, components, &d.Values)
	case vtk.Uint32:
		a, err = numericArray[uint32](name, components, &d.Values)
	case vtk.Int64:
		a, err = numericArray[int64](name, components, &d.Values)
	case vtk.Uint64:
		a, err = numericArray[uint64](name, components, &d.Values)
	case vtk.Float32:
		a, err = numericArray[float32](name, components, &d.Values)
	case vtk.Float64:
		a, err = numericArray[float64](name, components, &d.Values)
	case vtk.IDType:
		var ids []int64
		if err = decodeValues(&d.Values, &ids); err == nil {
			a = vtk.NewIDArray(name, components, ids)
		}
	case vtk.String:
		var vals []string
		if err = decodeValues(&d.Values, &vals); err == nil {
			a = vtk.NewStringArray(name, components, vals)
		}
	case vtk.Bit:
		var bits []bool
		if err = decodeValues(&d.Values, &bits); err == nil {
			if len(bits)%components != 0 {
				return nil, errors.Wrapf(ErrFormat, "array %q: %d bits do not split into %d components", name, len(bits), components)
			}
			a = vtk.NewBitArray(name, components, len(bits)/components, nil)
			for i, b := range bits {
				a.SetBit(i, b)
			}
		}
	default:
		return nil, errors.Wrapf(ErrFormat, "array %q: %s arrays have no text form", name, tag)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "array %q values: %v", name, err)
	}
	if err := a.Validate(); err != nil {
		return nil, errors.Wrapf(ErrFormat, "%v", err)
	}
	return a, nil
}

func numericArray[T vtk.Number](name string, components int, node *yaml.Node) (*vtk.Array, error) {
	var vals []T
	if err := decodeValues(node, &vals); err != nil {
		return nil, err
	}
	return vtk.NewArray(name, components, vals), nil
}

// decodeValues decodes a sequence node; an absent node is an empty list.
func decodeValues[T any](node *yaml.Node, dest *[]T) error {
	if node.Kind == 0 {
		*dest = []T{}
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return errors.Errorf("line %d: values must be a list", node.Line)
	}
	if err := node.Decode(dest); err != nil {
		return err
	}
	if *dest == nil {
		*dest = []T{}
	}
	return nil
}

// NewArrayDoc converts a to its document form.
func NewArrayDoc(a *vtk.Array) (*ArrayDoc, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	d := &ArrayDoc{Name: a.Name, Type: a.Type.String()}
	if a.NumComponents != 1 {
		d.Components = a.NumComponents
	}

	var vals interface{}
	switch a.Type {
	case vtk.Bit:
		bits := make([]bool, a.Len())
		for i := range bits {
			bits[i] = a.Bit(i)
		}
		vals = bits
	case vtk.Variant:
		return nil, errors.Wrapf(ErrFormat, "array %q: variant arrays have no text form", a.Name)
	default:
		vals = a.Data
	}
	if err := d.Values.Encode(vals); err != nil {
		return nil, errors.Wrapf(err, "array %q", a.Name)
	}
	d.Values.Style = yaml.FlowStyle
	return d, nil
}
