package repository

import (
	"context"

	"github.com/google/uuid"

	"steprally/grouphub/internal/model"
)

// GroupWithRole pairs a group with the requesting user's role in it.
type GroupWithRole struct {
	Group model.Group
	Role  model.GroupRole
}

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *model.Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*model.Group, error)
	GetGroupByJoinCode(ctx context.Context, code string) (*model.Group, error)
	UpdateGroup(ctx context.Context, group *model.Group) error
	// DeleteGroup removes the group and all its memberships atomically.
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	ListPublicGroups(ctx context.Context, limit, offset int) ([]model.Group, error)

	AddMember(ctx context.Context, membership *model.GroupMembership) error
	GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*model.GroupMembership, error)
	UpdateMemberRole(ctx context.Context, groupID, userID uuid.UUID, role model.GroupRole) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMembership, error)
	CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error)
	// GetUserGroups resolves all groups the user belongs to in at most two
	// queries: one membership scan plus one batched group fetch.
	GetUserGroups(ctx context.Context, userID uuid.UUID) ([]GroupWithRole, error)
}
