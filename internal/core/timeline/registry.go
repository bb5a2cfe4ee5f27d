package timeline

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-lineup-timeline/internal/core/model"
)

// RoleRegistry maps role names to single-bit flags in first-seen order.
type RoleRegistry struct {
	bits  map[string]int
	names []string
}

// NewRoleRegistry scans members, their sections and the roles of each
// section in order and gives every new name the next free bit.
func NewRoleRegistry(members []model.BandMember) (*RoleRegistry, error) {
	r := &RoleRegistry{bits: make(map[string]int)}
	for _, member := range members {
		for _, section := range member.Sections {
			for _, role := range section.Roles {
				if err := r.add(role); err != nil {
					return nil, err
				}
			}
		}
	}
	return r, nil
}

func (r *RoleRegistry) add(role string) error {
	if _, ok := r.bits[role]; ok {
		return nil
	}
	if len(r.names) == MaxRoles {
		return fmt.Errorf("%w: %q would be role %d of at most %d", ErrRoleCapacityExceeded, role, MaxRoles+1, MaxRoles)
	}
	r.names = append(r.names, role)
	r.bits[role] = 1 << len(r.names)
	return nil
}

// Bit returns the flag of role.
func (r *RoleRegistry) Bit(role string) (int, bool) {
	bit, ok := r.bits[role]
	return bit, ok
}

// Names returns the registered roles in bit order.
func (r *RoleRegistry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *RoleRegistry) Len() int {
	return len(r.names)
}

// Mask ORs the flags of roles. Unknown names contribute nothing.
func (r *RoleRegistry) Mask(roles []string) int {
	mask := 0
	for _, role := range roles {
		mask |= r.bits[role]
	}
	return mask
}

// RolesIn decodes the roles set in cell, in bit order.
func (r *RoleRegistry) RolesIn(cell int) []string {
	var roles []string
	for i, name := range r.names {
		if cell&(1<<(i+1)) != 0 {
			roles = append(roles, name)
		}
	}
	return roles
}

// MarshalJSON encodes the registry as a name to bit object.
func (r *RoleRegistry) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(r.bits)
}
