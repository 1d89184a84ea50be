// Package authz maps a session's role to the fixed capability set consumed
// by the CLI to gate commands. The mapping is pure: no I/O, no failure
// modes, and an unknown role degrades to view-only instead of erroring.
package authz

import "strings"

// Capabilities is the set of actions a role may perform.
type Capabilities struct {
	CanCreate         bool
	CanEdit           bool
	CanDelete         bool
	CanView           bool
	CanManageUsers    bool
	CanViewReports    bool
	CanViewStatistics bool
}

// ForRole returns the capability set for a role, matched case-insensitively.
// Pass the empty string for "no session".
func ForRole(role string) Capabilities {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "administrador":
		return Capabilities{
			CanCreate:         true,
			CanEdit:           true,
			CanDelete:         true,
			CanView:           true,
			CanManageUsers:    true,
			CanViewReports:    true,
			CanViewStatistics: true,
		}

	case "coordinador", "supervisor":
		return Capabilities{
			CanCreate:         true,
			CanEdit:           true,
			CanView:           true,
			CanViewReports:    true,
			CanViewStatistics: true,
		}

	case "operador":
		return Capabilities{
			CanCreate:      true,
			CanView:        true,
			CanViewReports: true,
		}

	default:
		// Unknown role or no session: minimal access.
		return Capabilities{CanView: true}
	}
}
