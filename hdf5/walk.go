package hdf5

import "github.com/pkg/errors"

// ErrStopWalk may be returned by a WalkFunc to end the walk early without error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for each object visited by Walk. obj is a *Group or a
// *Dataset. When err is non-nil the children of the group at path could not
// be read; returning nil skips them.
type WalkFunc func(path string, obj Object, err error) error

// Walk visits g and everything below it in depth-first link order.
func Walk(g *Group, fn WalkFunc) error {
	err := walk(g, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}
	children, err := g.f.childNodes(g.n)
	if err != nil {
		return fn(g.Path(), g, err)
	}
	for _, c := range children {
		if c.group {
			if err := walk(newGroup(g.f, c), fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(c.path(), newDataset(g.f, c), nil); err != nil {
			return err
		}
	}
	return nil
}
