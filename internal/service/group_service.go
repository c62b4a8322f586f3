package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"steprally/grouphub/internal/model"
	"steprally/grouphub/internal/repository"
	"steprally/grouphub/pkg/joincode"
)

const (
	minGroupNameLen = 2
	maxGroupNameLen = 50

	// Attempts before giving up on finding an unclaimed join code. The
	// code space is 32^8 so a second collision in a row is store trouble,
	// not bad luck.
	joinCodeAttempts = 5
)

type CreateGroupInput struct {
	Name        string
	Description string
	IsPublic    bool
	PeriodType  model.PeriodType
}

type UpdateGroupInput struct {
	Name        string
	Description string
	IsPublic    bool
}

// GroupDetail is a group as seen by one caller: authoritative member
// count, the caller's role, and the join code only when their role may
// see it.
type GroupDetail struct {
	Group    model.Group `json:"group"`
	Role     string      `json:"role"`
	JoinCode *string     `json:"join_code,omitempty"`
}

type MemberInfo struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

type GroupSummary struct {
	Group model.Group `json:"group"`
	Role  string      `json:"role"`
}

type GroupService interface {
	CreateGroup(ctx context.Context, userID uuid.UUID, in CreateGroupInput) (*GroupDetail, error)
	GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*GroupDetail, error)
	ListPublicGroups(ctx context.Context, limit, offset int) ([]model.Group, error)
	GetUserGroups(ctx context.Context, userID uuid.UUID) ([]GroupSummary, error)
	UpdateGroup(ctx context.Context, userID, groupID uuid.UUID, in UpdateGroupInput) (*GroupDetail, error)
	DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error
	JoinGroup(ctx context.Context, userID, groupID uuid.UUID, joinCode string) (*GroupDetail, error)
	JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*GroupDetail, error)
	LeaveGroup(ctx context.Context, userID, groupID uuid.UUID) error
	InviteMember(ctx context.Context, userID, groupID, targetUserID uuid.UUID) error
	RemoveMember(ctx context.Context, userID, groupID, targetUserID uuid.UUID) error
	ChangeMemberRole(ctx context.Context, userID, groupID, targetUserID uuid.UUID, role model.GroupRole) error
	RegenerateJoinCode(ctx context.Context, userID, groupID uuid.UUID) (string, error)
	GetMembers(ctx context.Context, userID, groupID uuid.UUID) ([]MemberInfo, error)
	GetLeaderboard(ctx context.Context, userID, groupID uuid.UUID) (*model.Leaderboard, error)
}

type groupService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
	steps  repository.StepRepository
	cache  repository.CacheStore
	logger *zap.Logger

	leaderboardTTL time.Duration
	now            func() time.Time
	newCode        func() (string, error)
}

func NewGroupService(
	groups repository.GroupRepository,
	users repository.UserRepository,
	steps repository.StepRepository,
	cache repository.CacheStore,
	logger *zap.Logger,
	leaderboardTTL time.Duration,
) GroupService {
	return &groupService{
		groups:         groups,
		users:          users,
		steps:          steps,
		cache:          cache,
		logger:         logger,
		leaderboardTTL: leaderboardTTL,
		now:            time.Now,
		newCode:        joincode.Generate,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, userID uuid.UUID, in CreateGroupInput) (*GroupDetail, error) {
	name, description, err := validateGroupName(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	if !in.PeriodType.Valid() {
		return nil, ErrInvalidPeriodType
	}

	group := &model.Group{
		Name:        name,
		Description: description,
		CreatorID:   userID,
		IsPublic:    in.IsPublic,
		PeriodType:  in.PeriodType,
	}

	// Private groups carry a join code from birth. Uniqueness lives in the
	// store's partial unique index; generation is retried on collision.
	if err := s.persistWithFreshCode(ctx, group, !in.IsPublic, s.groups.CreateGroup); err != nil {
		return nil, err
	}

	membership := &model.GroupMembership{
		GroupID:  group.ID,
		UserID:   userID,
		Role:     model.RoleOwner,
		JoinedAt: s.now(),
	}
	if err := s.groups.AddMember(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	// Re-read for the authoritative member count. A miss here means the
	// store lost a row we just wrote.
	detail, err := s.groupDetail(ctx, group.ID, model.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("group vanished after create: %w", err)
	}
	return detail, nil
}

func (s *groupService) GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*GroupDetail, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	return s.groupDetail(ctx, groupID, membership.Role)
}

func (s *groupService) ListPublicGroups(ctx context.Context, limit, offset int) ([]model.Group, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	groups, err := s.groups.ListPublicGroups(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list public groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]GroupSummary, error) {
	withRoles, err := s.groups.GetUserGroups(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	summaries := make([]GroupSummary, 0, len(withRoles))
	for _, wr := range withRoles {
		wr.Group.JoinCode = nil
		summaries = append(summaries, GroupSummary{Group: wr.Group, Role: wr.Role.String()})
	}
	return summaries, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, userID, groupID uuid.UUID, in UpdateGroupInput) (*GroupDetail, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !roleAllowed(membership.Role, ActionUpdateGroup) {
		return nil, ErrUnauthorized
	}

	name, description, err := validateGroupName(in.Name, in.Description)
	if err != nil {
		return nil, err
	}

	group.Name = name
	group.Description = description

	needCode := false
	switch {
	case in.IsPublic && !group.IsPublic:
		// Going public drops the code.
		group.IsPublic = true
		group.JoinCode = nil
	case !in.IsPublic && group.IsPublic:
		group.IsPublic = false
		needCode = group.JoinCode == nil
	}
	// An existing private code is never regenerated implicitly.

	if err := s.persistWithFreshCode(ctx, group, needCode, s.groups.UpdateGroup); err != nil {
		return nil, err
	}
	return s.groupDetail(ctx, groupID, membership.Role)
}

func (s *groupService) DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !roleAllowed(membership.Role, ActionDeleteGroup) {
		return ErrUnauthorized
	}
	if err := s.groups.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func (s *groupService) JoinGroup(ctx context.Context, userID, groupID uuid.UUID, code string) (*GroupDetail, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.groups.GetMembership(ctx, groupID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if !group.IsPublic {
		code = strings.TrimSpace(code)
		if code == "" || group.JoinCode == nil || code != *group.JoinCode {
			return nil, ErrInvalidJoinCode
		}
	}

	if err := s.addMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupDetail(ctx, groupID, model.RoleMember)
}

func (s *groupService) JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*GroupDetail, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidArgument
	}

	group, err := s.groups.GetGroupByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("failed to look up join code: %w", err)
	}

	if _, err := s.groups.GetMembership(ctx, group.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.addMember(ctx, group.ID, userID); err != nil {
		return nil, err
	}
	return s.groupDetail(ctx, group.ID, model.RoleMember)
}

func (s *groupService) LeaveGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}
	membership, err := s.requireMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}

	count, err := s.groups.CountMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if !canLeave(membership.Role, count) {
		return ErrOwnerCannotLeave
	}

	if err := s.groups.RemoveMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	return nil
}

func (s *groupService) InviteMember(ctx context.Context, userID, groupID, targetUserID uuid.UUID) error {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !roleAllowed(membership.Role, ActionInviteMember) {
		return ErrUnauthorized
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if _, err := s.groups.GetMembership(ctx, groupID, targetUserID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	return s.addMember(ctx, groupID, targetUserID)
}

func (s *groupService) RemoveMember(ctx context.Context, userID, groupID, targetUserID uuid.UUID) error {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !roleAllowed(membership.Role, ActionRemoveMember) {
		return ErrUnauthorized
	}

	target, err := s.groups.GetMembership(ctx, groupID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to look up target membership: %w", err)
	}
	if !canActOnMember(membership.Role, target.Role) {
		return ErrUnauthorized
	}

	if err := s.groups.RemoveMember(ctx, groupID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *groupService) ChangeMemberRole(ctx context.Context, userID, groupID, targetUserID uuid.UUID, role model.GroupRole) error {
	if role != model.RoleAdmin && role != model.RoleMember {
		return ErrInvalidRole
	}
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !roleAllowed(membership.Role, ActionChangeRole) {
		return ErrUnauthorized
	}

	target, err := s.groups.GetMembership(ctx, groupID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to look up target membership: %w", err)
	}
	if !canActOnMember(membership.Role, target.Role) {
		return ErrUnauthorized
	}

	if err := s.groups.UpdateMemberRole(ctx, groupID, targetUserID, role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return nil
}

func (s *groupService) RegenerateJoinCode(ctx context.Context, userID, groupID uuid.UUID) (string, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return "", err
	}
	membership, err := s.requireVisibility(ctx, groupID, userID)
	if err != nil {
		return "", err
	}
	if !roleAllowed(membership.Role, ActionRegenerateJoinCode) {
		return "", ErrUnauthorized
	}
	if group.IsPublic {
		return "", ErrGroupIsPublic
	}

	if err := s.persistWithFreshCode(ctx, group, true, s.groups.UpdateGroup); err != nil {
		return "", err
	}
	return *group.JoinCode, nil
}

func (s *groupService) GetMembers(ctx context.Context, userID, groupID uuid.UUID) ([]MemberInfo, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.requireVisibility(ctx, groupID, userID); err != nil {
		return nil, err
	}

	// One membership query, one batched user query, regardless of size.
	memberships, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member profiles: %w", err)
	}
	profiles := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		profiles[u.ID] = u
	}

	infos := make([]MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		info := MemberInfo{
			UserID:   m.UserID,
			Role:     m.Role.String(),
			JoinedAt: m.JoinedAt,
		}
		if u, ok := profiles[m.UserID]; ok {
			info.DisplayName = u.DisplayName
			info.AvatarURL = u.AvatarURL
		} else {
			s.logger.Warn("member has no user profile",
				zap.String("group_id", groupID.String()),
				zap.String("user_id", m.UserID.String()))
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// findGroup fetches a group, translating record-not-found to the
// service sentinel.
func (s *groupService) findGroup(ctx context.Context, groupID uuid.UUID) (*model.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	return group, nil
}

func (s *groupService) requireMembership(ctx context.Context, groupID, userID uuid.UUID) (*model.GroupMembership, error) {
	membership, err := s.groups.GetMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	return membership, nil
}

// requireVisibility is requireMembership with non-members reported as
// unauthorized rather than missing, for operations gated on roles.
func (s *groupService) requireVisibility(ctx context.Context, groupID, userID uuid.UUID) (*model.GroupMembership, error) {
	membership, err := s.requireMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return membership, nil
}

// addMember creates a Member membership, mapping a store-level duplicate
// (a concurrent join won the race) to the same conflict the check-then-
// insert path reports.
func (s *groupService) addMember(ctx context.Context, groupID, userID uuid.UUID) error {
	membership := &model.GroupMembership{
		GroupID:  groupID,
		UserID:   userID,
		Role:     model.RoleMember,
		JoinedAt: s.now(),
	}
	if err := s.groups.AddMember(ctx, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// persistWithFreshCode writes the group via persist, minting a new join
// code first when needCode is set and retrying generation if the store
// rejects the code as taken.
func (s *groupService) persistWithFreshCode(ctx context.Context, group *model.Group, needCode bool, persist func(context.Context, *model.Group) error) error {
	if !needCode {
		if err := persist(ctx, group); err != nil {
			return fmt.Errorf("failed to persist group: %w", err)
		}
		return nil
	}

	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return fmt.Errorf("failed to generate join code: %w", err)
		}
		group.JoinCode = &code

		err = persist(ctx, group)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to persist group: %w", err)
		}
		s.logger.Warn("join code collision, regenerating",
			zap.String("group_id", group.ID.String()),
			zap.Int("attempt", attempt+1))
	}
	return ErrJoinCodeExhausted
}

// groupDetail re-reads the group and composes the caller-specific view:
// derived member count, caller role, role-gated join code.
func (s *groupService) groupDetail(ctx context.Context, groupID uuid.UUID, role model.GroupRole) (*GroupDetail, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	count, err := s.groups.CountMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	group.MemberCount = count

	detail := &GroupDetail{Group: *group, Role: role.String()}
	if roleAllowed(role, ActionViewJoinCode) {
		detail.JoinCode = group.JoinCode
	}
	detail.Group.JoinCode = nil
	return detail, nil
}

func validateGroupName(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minGroupNameLen || n > maxGroupNameLen {
		return "", "", ErrInvalidGroupName
	}
	return name, strings.TrimSpace(description), nil
}
