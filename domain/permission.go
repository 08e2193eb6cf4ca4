// Package domain contains core concepts of the collaborative session engine.
// This file defines the permission hierarchy gating every mutation and broadcast.
// No runtime, network, or UI logic should be added here.
package domain

// PermissionLevel is the access level of a participant within a conversation.
// The declaration order is a total order of precedence: Owner dominates Admin,
// which dominates Member, and so on down to Apart (no relation at all).
type PermissionLevel int

const (
	Apart PermissionLevel = iota
	Banned
	Member
	Admin
	Owner
)

func (l PermissionLevel) String() string {
	switch l {
	case Owner:
		return "owner"
	case Admin:
		return "admin"
	case Member:
		return "member"
	case Banned:
		return "banned"
	default:
		return "apart"
	}
}

// MayMutate reports whether the level allows editing a draft, splicing the
// shared buffer, or committing. Banned and Apart participants may do none
// of these, and they never receive broadcasts either.
func (l PermissionLevel) MayMutate() bool {
	return l >= Member
}
