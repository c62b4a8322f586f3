package service

import "errors"

var (
	ErrInvalidGroupName    = errors.New("group name must be 2-50 characters")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidPeriodType   = errors.New("invalid period type")
	ErrGroupNotFound       = errors.New("group not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrMembershipNotFound  = errors.New("not a member of this group")
	ErrAlreadyMember       = errors.New("already a member of this group")
	ErrUnauthorized        = errors.New("not allowed for this role")
	ErrInvalidJoinCode     = errors.New("invalid join code")
	ErrOwnerCannotLeave    = errors.New("transfer ownership or delete the group first")
	ErrGroupIsPublic       = errors.New("public groups have no join code")
	ErrInvalidRole         = errors.New("role must be admin or member")
	ErrStepDataUnavailable = errors.New("step data unavailable")
	ErrJoinCodeExhausted   = errors.New("could not generate a unique join code")
)
