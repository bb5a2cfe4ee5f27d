package model

import "strings"

// BandMember is a named member with the role sections parsed from their raw
// role history. It is not modified after construction.
type BandMember struct {
	Name     string         `json:"name"`
	Sections []RoleInterval `json:"sections"`
}

// NewBandMember creates a member from already parsed sections.
func NewBandMember(name string, sections []RoleInterval) BandMember {
	return BandMember{
		Name:     name,
		Sections: append([]RoleInterval(nil), sections...),
	}
}

// Roles returns the distinct role names of the member in first-seen order.
func (m BandMember) Roles() []string {
	seen := make(map[string]bool)
	var roles []string
	for _, section := range m.Sections {
		for _, role := range section.Roles {
			if !seen[role] {
				seen[role] = true
				roles = append(roles, role)
			}
		}
	}
	return roles
}

// RoleString re-serializes the sections in canonical form.
func (m BandMember) RoleString() string {
	parts := make([]string, len(m.Sections))
	for i, section := range m.Sections {
		parts[i] = section.String()
	}
	return strings.Join(parts, ", ")
}

func (m BandMember) String() string {
	return m.Name + ": " + m.RoleString()
}
