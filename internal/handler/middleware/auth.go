package middleware

import (
	"net/http"
	"strings"

	"court-booking/internal/domain/member"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/cookie"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxMemberIDKey   = "member_id"
	ctxMemberRoleKey = "member_role"
)

var (
	errMissingToken     = errs.New("no access token in cookie or Authorization header")
	errRoleNotResolved  = errs.New("role gate ran without RequireAuth")
	errInsufficientRole = errs.New("insufficient role")
)

// roleRank orders roles for RequireRoleAtLeast. Unknown roles rank zero.
var roleRank = map[member.Role]int{
	member.RoleMember: 1,
	member.RoleAdmin:  2,
}

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokenValidator: tokenValidator}
}

// RequireAuth accepts the access cookie or a bearer token, the cookie first.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerOrCookie(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		memberID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetMember(c, memberID, role)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth. The token role is only a
// routing gate. Admin handlers re-check the stored role.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole member.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetMemberRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errRoleNotResolved, "Internal server error", nil)
			return
		}
		if roleRank[role] == 0 || roleRank[role] < roleRank[minRole] {
			httperr.AbortWithError(c, http.StatusForbidden,
				errs.Wrapf(errInsufficientRole, "%s below %s", role, minRole), "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func GetMemberID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxMemberIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetMemberRole(c *gin.Context) (member.Role, bool) {
	v, exists := c.Get(ctxMemberRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(member.Role)
	return role, ok
}

// SetMember stores the authenticated identity. Handler tests call it to
// stand in for RequireAuth.
func SetMember(c *gin.Context, memberID uuid.UUID, role member.Role) {
	c.Set(ctxMemberIDKey, memberID)
	c.Set(ctxMemberRoleKey, role)
}
