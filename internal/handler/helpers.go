package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"steprally/grouphub/internal/handler/middleware"
	"steprally/grouphub/internal/service"
	jwtpkg "steprally/grouphub/pkg/jwt"
	"steprally/grouphub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyUserClaims)
	if !exists {
		return uuid.Nil, ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return uuid.Parse(claims.Subject)
}

// writeServiceError maps service sentinels onto the API envelope.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGroupName),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidPeriodType):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMembershipNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidJoinCode):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrOwnerCannotLeave),
		errors.Is(err, service.ErrGroupIsPublic),
		errors.Is(err, service.ErrInvalidRole):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, service.ErrStepDataUnavailable):
		response.BadGateway(c, err.Error())
	default:
		response.InternalError(c, "internal error")
	}
}
