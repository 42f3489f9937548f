package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/services"
)

const (
	authPayloadKey = "authorization_payload"
	authTokenKey   = "authorization_token"
	requestIDKey   = "request_id"

	// AuthCookieName is the dual-written session cookie the route guard
	// reads.
	AuthCookieName = "auth_token"
)

// protectedPrefixes are the only path prefixes the route guard covers.
var protectedPrefixes = []string{"/leagues", "/profile"}

type errorResponse struct {
	Error string `json:"error"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

// apiError maps the shared error taxonomy onto HTTP statuses: auth
// failures purge, not-found panels, validation messages surfaced
// verbatim, everything else a retry-able transport error.
func apiError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrBettingClosed):
		newErrorResponse(c, http.StatusConflict, "La course a déjà commencé, les paris sont fermés !")
	case errors.Is(err, domain.ErrSelectionLocked):
		newErrorResponse(c, http.StatusConflict, "Selection is locked")
	case errors.Is(err, domain.ErrIncompleteSelection):
		newErrorResponse(c, http.StatusBadRequest, "Selection is incomplete")
	case errors.As(err, &validationErr):
		newErrorResponse(c, http.StatusUnprocessableEntity, validationErr.Error())
	default:
		newErrorResponse(c, http.StatusBadGateway, "Upstream request failed, please retry")
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

func getAuthToken(c *gin.Context) string {
	value, exists := c.Get(authTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

// bearerToken extracts the session token: Authorization header first,
// falling back to the dual-written cookie.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	cookie, err := c.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

func AuthMiddleware(tokenService ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(authPayloadKey, payload)
		c.Set(authTokenKey, token)
		c.Next()
	}
}

// RouteGuard gates the protected sections on cookie PRESENCE only: the
// request is bounced to the landing route with the original path attached
// for post-login redirection. Token validity is checked later by the
// session layer; paths outside the protected prefixes pass through, and
// so do requests that already carry an Authorization header, since a
// bearer-token client has no cookie and no use for a login redirect.
func RouteGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		protected := false
		for _, prefix := range protectedPrefixes {
			if strings.HasPrefix(path, prefix) {
				protected = true
				break
			}
		}
		if !protected || c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		if _, err := c.Cookie(AuthCookieName); err != nil {
			query := url.Values{"redirect": {path}}
			c.Redirect(http.StatusFound, services.LandingRoute+"?"+query.Encode())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestIDMiddleware tags every request so gateway and upstream log
// lines can be correlated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
