package h5vtk

// WriteOption configures WritePolyData, WriteUnstructuredGrid and WriteDataSet.
type WriteOption func(*writeOptions)

type writeOptions struct {
	append bool
	index  bool
}

func defaultWriteOptions() *writeOptions {
	return &writeOptions{append: true}
}

// WithAppend controls whether an existing file is opened and added to
// (the default) or replaced by a new file.
func WithAppend(enabled bool) WriteOption {
	return func(o *writeOptions) {
		o.append = enabled
	}
}

// WithIndex also appends the written path to the object index.
func WithIndex() WriteOption {
	return func(o *writeOptions) {
		o.index = true
	}
}

// ReadOption configures the dataset readers.
type ReadOption func(*readOptions)

type readOptions struct {
	fieldDataName string
	readAllFields bool
}

// WithFieldDataName keeps field data only when its block is named name.
func WithFieldDataName(name string) ReadOption {
	return func(o *readOptions) {
		o.fieldDataName = name
	}
}

// WithReadAllFields keeps field data regardless of its block name.
func WithReadAllFields() ReadOption {
	return func(o *readOptions) {
		o.readAllFields = true
	}
}
