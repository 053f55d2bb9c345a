package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/response"
	"hotelhub/services"
	"hotelhub/types"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// Authenticator resolves a bearer token to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Grant is one way of satisfying a policy.
type Grant struct {
	Role             constants.Role
	RequiresApproval bool
}

// Policy is satisfied when any of its grants matches.
type Policy []Grant

var (
	AnyMember = Policy{
		{Role: constants.RoleUser},
		{Role: constants.RoleBusiness},
		{Role: constants.RoleAdmin},
	}
	AdminOnly        = Policy{{Role: constants.RoleAdmin}}
	ApprovedBusiness = Policy{{Role: constants.RoleBusiness, RequiresApproval: true}}
)

// Allows reports whether the caller satisfies the policy.
func Allows(caller types.Caller, policy Policy) bool {
	for _, g := range policy {
		if caller.Role != g.Role {
			continue
		}
		if g.RequiresApproval && caller.BusinessStatus != constants.BusinessApproved {
			continue
		}
		return true
	}
	return false
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// Authenticate loads the caller from the bearer token.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		c.Set(callerKey, services.CallerOf(user))
		c.Next()
	}
}

// Authorize must run after Authenticate.
func Authorize(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !Allows(caller, policy) {
			if caller.Role == constants.RoleBusiness && caller.BusinessStatus != constants.BusinessApproved {
				response.Error(c, http.StatusForbidden, "승인된 사업자만 이용할 수 있습니다")
			} else {
				response.Forbidden(c)
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

func CallerFrom(c *gin.Context) (types.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return types.Caller{}, false
	}
	caller, ok := v.(types.Caller)
	return caller, ok
}

// InternalToken protects endpoints meant for schedulers, not end users.
func InternalToken(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Internal-Token")
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			response.FromError(c, apperrors.Forbidden("내부 호출만 허용됩니다"))
			c.Abort()
			return
		}
		c.Next()
	}
}
