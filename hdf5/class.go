package hdf5

import "github.com/robert-malhotra/go-h5vtk/internal/message"

// Class is the broad kind of an element type.
type Class int

const (
	ClassOther Class = iota
	ClassInteger
	ClassFloat
	ClassString
)

func (c Class) String() string {
	switch c {
	case ClassInteger:
		return "integer"
	case ClassFloat:
		return "float"
	case ClassString:
		return "string"
	}
	return "other"
}

func classOf(dt *message.Datatype) Class {
	switch dt.Class {
	case message.ClassFixedPoint:
		return ClassInteger
	case message.ClassFloatPoint:
		return ClassFloat
	case message.ClassString:
		return ClassString
	}
	return ClassOther
}
