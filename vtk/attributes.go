package vtk

import (
	"fmt"

	"github.com/pkg/errors"
)

// Role is a default-array designation within an attribute collection.
type Role int

const (
	Scalars Role = iota
	Vectors
	Normals
	Tensors
	TCoords
	GlobalIds
	PedigreeIds

	numRoles
)

var roleNames = [numRoles]string{"Scalars", "Vectors", "Normals", "Tensors", "TCoords", "GlobalIds", "PedigreeIds"}

// Roles returns the seven roles in storage order.
func Roles() []Role {
	return []Role{Scalars, Vectors, Normals, Tensors, TCoords, GlobalIds, PedigreeIds}
}

func (r Role) String() string {
	if r >= 0 && r < numRoles {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// AttributeKey returns the group attribute that records the role, such as
// "ActiveScalars".
func (r Role) AttributeKey() string {
	return "Active" + r.String()
}

// ParseRole parses a role name such as "Scalars".
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, errors.Errorf("unknown attribute role %q", s)
}

// Attributes is an insertion-ordered collection of uniquely named arrays
// with at most one designated array per Role. It models point data, cell
// data and field data.
type Attributes struct {
	// Name identifies a field-data block; point and cell data leave it empty.
	Name string

	arrays []*Array
	// active holds designated names; set tells a designated unnamed array
	// apart from no designation.
	active [numRoles]string
	set    [numRoles]bool
}

// NewAttributes returns an empty collection.
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Len returns the number of arrays.
func (c *Attributes) Len() int {
	return len(c.arrays)
}

// Arrays returns the arrays in insertion order.
func (c *Attributes) Arrays() []*Array {
	return c.arrays
}

// Names returns the array names in insertion order.
func (c *Attributes) Names() []string {
	names := make([]string, len(c.arrays))
	for i, a := range c.arrays {
		names[i] = a.Name
	}
	return names
}

// Add appends a, or replaces the array of the same name in place.
func (c *Attributes) Add(a *Array) {
	for i, old := range c.arrays {
		if old.Name == a.Name {
			c.arrays[i] = a
			return
		}
	}
	c.arrays = append(c.arrays, a)
}

// Get returns the named array or nil.
func (c *Attributes) Get(name string) *Array {
	for _, a := range c.arrays {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Remove deletes the named array and clears any role designating it.
func (c *Attributes) Remove(name string) {
	for i, a := range c.arrays {
		if a.Name == name {
			c.arrays = append(c.arrays[:i], c.arrays[i+1:]...)
			break
		}
	}
	for r := range c.active {
		if c.set[r] && c.active[r] == name {
			c.active[r], c.set[r] = "", false
		}
	}
}

// SetActive designates the named member array for role.
func (c *Attributes) SetActive(role Role, name string) error {
	if role < 0 || role >= numRoles {
		return errors.Wrapf(ErrInvalid, "role %d", int(role))
	}
	if c.Get(name) == nil {
		return errors.Wrapf(ErrInvalid, "no array %q for active %s", name, role)
	}
	c.active[role], c.set[role] = name, true
	return nil
}

// SetActiveArray adds a and designates it for role.
func (c *Attributes) SetActiveArray(role Role, a *Array) error {
	c.Add(a)
	return c.SetActive(role, a.Name)
}

// ClearActive removes the designation for role.
func (c *Attributes) ClearActive(role Role) {
	if role >= 0 && role < numRoles {
		c.active[role], c.set[role] = "", false
	}
}

// ActiveName returns the name designated for role, or "". Use Active to
// tell an unnamed designee from no designation.
func (c *Attributes) ActiveName(role Role) string {
	if role < 0 || role >= numRoles {
		return ""
	}
	return c.active[role]
}

// Active returns the array designated for role, or nil.
func (c *Attributes) Active(role Role) *Array {
	if role < 0 || role >= numRoles || !c.set[role] {
		return nil
	}
	return c.Get(c.active[role])
}

// Validate checks every member array and that names are unique.
func (c *Attributes) Validate() error {
	seen := make(map[string]bool, len(c.arrays))
	for _, a := range c.arrays {
		if seen[a.Name] {
			return errors.Wrapf(ErrInvalid, "duplicate array name %q", a.Name)
		}
		seen[a.Name] = true
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}
