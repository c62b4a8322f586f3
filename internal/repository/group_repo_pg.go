package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"steprally/grouphub/internal/model"
)

type pgGroupRepository struct {
	db *gorm.DB
}

func NewPGGroupRepository(db *gorm.DB) GroupRepository {
	return &pgGroupRepository{db: db}
}

func (r *pgGroupRepository) CreateGroup(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *pgGroupRepository) GetGroup(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *pgGroupRepository) GetGroupByJoinCode(ctx context.Context, code string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).First(&group, "join_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *pgGroupRepository) UpdateGroup(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *pgGroupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.GroupMembership{}, "group_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, "id = ?", id).Error
	})
}

func (r *pgGroupRepository) ListPublicGroups(ctx context.Context, limit, offset int) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&groups).Error
	return groups, err
}

func (r *pgGroupRepository) AddMember(ctx context.Context, membership *model.GroupMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *pgGroupRepository) GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*model.GroupMembership, error) {
	var m model.GroupMembership
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *pgGroupRepository) UpdateMemberRole(ctx context.Context, groupID, userID uuid.UUID, role model.GroupRole) error {
	return r.db.WithContext(ctx).
		Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role).Error
}

func (r *pgGroupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&model.GroupMembership{}, "group_id = ? AND user_id = ?", groupID, userID).Error
}

func (r *pgGroupRepository) GetMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMembership, error) {
	var memberships []model.GroupMembership
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *pgGroupRepository) CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupMembership{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

// GetUserGroups loads membership rows, then all referenced groups in a
// single IN query. Never one group fetch per membership row.
func (r *pgGroupRepository) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]GroupWithRole, error) {
	var memberships []model.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []GroupWithRole{}, nil
	}

	groupIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	var groups []model.Group
	if err := r.db.WithContext(ctx).
		Where("id IN ?", groupIDs).
		Find(&groups).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	result := make([]GroupWithRole, 0, len(memberships))
	for _, m := range memberships {
		g, ok := byID[m.GroupID]
		if !ok {
			continue
		}
		result = append(result, GroupWithRole{Group: g, Role: m.Role})
	}
	return result, nil
}
