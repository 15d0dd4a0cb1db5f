package hdf5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/", []string{}},
		{"", []string{}},
		{"/foo", []string{"foo"}},
		{"/foo//bar/", []string{"foo", "bar"}},
		{"./a/./b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitPath(tt.in), tt.in)
	}
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/", CleanPath(""))
	assert.Equal(t, "/a/b", CleanPath("a//b/"))
}

func TestAttrPath(t *testing.T) {
	obj, name, err := ParseAttrPath("/mesh/POINT_DATA@ActiveScalars")
	assert.NoError(t, err)
	assert.Equal(t, "/mesh/POINT_DATA", obj)
	assert.Equal(t, "ActiveScalars", name)

	obj, name, err = ParseAttrPath("/@root")
	assert.NoError(t, err)
	assert.Equal(t, "/", obj)
	assert.Equal(t, "root", name)
	assert.Equal(t, "/@root", JoinAttrPath(obj, name))

	_, _, err = ParseAttrPath("/no/attr")
	assert.Error(t, err)
	_, _, err = ParseAttrPath("/x@")
	assert.Error(t, err)
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"a", "...", "a.b", "%2E"} {
		assert.True(t, validName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b"} {
		assert.False(t, validName(name), name)
	}
}
