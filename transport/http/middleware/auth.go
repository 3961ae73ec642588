package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"solireserve/config"
	"solireserve/infras/jwt"
	"solireserve/infras/otel"
	"solireserve/permissions"
	"solireserve/shared/constant"
	"solireserve/shared/failure"
	"solireserve/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// internalCallKey marks requests authenticated by API key; they bypass token and role checks.
type internalCallKey struct{}

func isInternalCall(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// routePattern resolves the registered chi pattern (e.g. /v1/processes/{reservation_id}) for the request.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

// reject answers err and closes the middleware span.
func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()
	response.WithError(writer, err)
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("token has expired")
	case errors.Is(err, jwt.ErrInvalidToken):
		return failure.Unauthorized("invalid token")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("invalid token claims")
	default:
		return failure.Unauthorized("token validation failed")
	}
}

// Auth validates bearer tokens issued by the hosted auth service and puts the caller in
// the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		path := routePattern(request)
		open := m.permission != nil && m.permission.FindPermissions(path, request.Method).Skip

		if isInternalCall(ctx) || open {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"http.path":   path,
			"http.method": request.Method,
		})

		header := request.Header.Get(constant.RequestHeaderAuthorization)
		if header == constant.Empty {
			reject(writer, scope, failure.Unauthorized("missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			reject(writer, scope, failure.Unauthorized("invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("rejected bearer token")
			reject(writer, scope, tokenFailure(err))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's role against the roles listed for the route. It runs after Auth.
// Without a permission table every protected route is refused.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if isInternalCall(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		permission := m.permission.FindPermissions(routePattern(request), request.Method)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !m.permission.Skip && !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal services call the API with X-API-Key instead of a token. Requests
// without the header continue to Auth; a wrong key is refused.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == constant.Empty {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == constant.Empty || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, internalCallKey{}, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.DefaultSystem)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
