package service

import "steprally/grouphub/internal/model"

// Action is one authorizable group operation. Authorization is a flat
// decision table over (role, action) so the rules stay auditable in one
// place, with no I/O and no role hierarchy.
type Action int

const (
	ActionUpdateGroup Action = iota
	ActionDeleteGroup
	ActionInviteMember
	ActionRemoveMember
	ActionChangeRole
	ActionRegenerateJoinCode
	ActionViewJoinCode
)

// roleAllowed reports whether a role may perform an action at all.
// Target-sensitive rules (owner removal, admin-on-admin) are layered on
// top by canActOnMember.
func roleAllowed(role model.GroupRole, action Action) bool {
	switch action {
	case ActionDeleteGroup:
		return role == model.RoleOwner
	case ActionUpdateGroup,
		ActionInviteMember,
		ActionRemoveMember,
		ActionChangeRole,
		ActionRegenerateJoinCode,
		ActionViewJoinCode:
		return role == model.RoleOwner || role == model.RoleAdmin
	}
	return false
}

// canActOnMember reports whether an actor may remove or change the role
// of a target member. Owners are untouchable, and admins may only act
// on plain members; owner-on-anyone (except the owner) is allowed.
func canActOnMember(actorRole, targetRole model.GroupRole) bool {
	if targetRole == model.RoleOwner {
		return false
	}
	switch actorRole {
	case model.RoleOwner:
		return true
	case model.RoleAdmin:
		return targetRole == model.RoleMember
	}
	return false
}

// canLeave reports whether a member may leave a group of memberCount
// members. The owner may only leave as the sole remaining member, so a
// group never exists without exactly one owner.
func canLeave(role model.GroupRole, memberCount int64) bool {
	if role != model.RoleOwner {
		return true
	}
	return memberCount <= 1
}
