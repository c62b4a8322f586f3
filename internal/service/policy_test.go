package service

import (
	"testing"

	"steprally/grouphub/internal/model"
)

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   model.GroupRole
		action Action
		want   bool
	}{
		{"owner can delete", model.RoleOwner, ActionDeleteGroup, true},
		{"admin cannot delete", model.RoleAdmin, ActionDeleteGroup, false},
		{"member cannot delete", model.RoleMember, ActionDeleteGroup, false},
		{"owner can update", model.RoleOwner, ActionUpdateGroup, true},
		{"admin can update", model.RoleAdmin, ActionUpdateGroup, true},
		{"member cannot update", model.RoleMember, ActionUpdateGroup, false},
		{"admin can invite", model.RoleAdmin, ActionInviteMember, true},
		{"member cannot invite", model.RoleMember, ActionInviteMember, false},
		{"admin can regenerate code", model.RoleAdmin, ActionRegenerateJoinCode, true},
		{"member cannot regenerate code", model.RoleMember, ActionRegenerateJoinCode, false},
		{"admin can view code", model.RoleAdmin, ActionViewJoinCode, true},
		{"member cannot view code", model.RoleMember, ActionViewJoinCode, false},
		{"admin can change roles", model.RoleAdmin, ActionChangeRole, true},
		{"member cannot change roles", model.RoleMember, ActionChangeRole, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roleAllowed(tt.role, tt.action); got != tt.want {
				t.Errorf("roleAllowed(%v, %v) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}

func TestCanActOnMember(t *testing.T) {
	tests := []struct {
		name   string
		actor  model.GroupRole
		target model.GroupRole
		want   bool
	}{
		{"nobody touches the owner", model.RoleOwner, model.RoleOwner, false},
		{"admin cannot act on owner", model.RoleAdmin, model.RoleOwner, false},
		{"owner acts on admin", model.RoleOwner, model.RoleAdmin, true},
		{"owner acts on member", model.RoleOwner, model.RoleMember, true},
		{"admin acts on member", model.RoleAdmin, model.RoleMember, true},
		{"admin cannot act on admin", model.RoleAdmin, model.RoleAdmin, false},
		{"member acts on nobody", model.RoleMember, model.RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canActOnMember(tt.actor, tt.target); got != tt.want {
				t.Errorf("canActOnMember(%v, %v) = %v, want %v", tt.actor, tt.target, got, tt.want)
			}
		})
	}
}

func TestCanLeave(t *testing.T) {
	if !canLeave(model.RoleMember, 10) {
		t.Error("member should always be able to leave")
	}
	if !canLeave(model.RoleAdmin, 10) {
		t.Error("admin should always be able to leave")
	}
	if canLeave(model.RoleOwner, 2) {
		t.Error("owner with co-members must not leave")
	}
	if !canLeave(model.RoleOwner, 1) {
		t.Error("sole-member owner should be able to leave")
	}
}
