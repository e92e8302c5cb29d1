// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Publisher Roles

// Role represents the authorization level granted to an API credential.
type Role string

const (
	// Unrestricted catalog access, including deletion
	RoleAdmin Role = "admin"

	// Can ingest and update publications
	RoleEditor Role = "editor"

	// Read-only catalog access (the anonymous default)
	RoleReader Role = "reader"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
