package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront/internal/logger"
)

const defaultOperator = "operator"

// OperatorContext stores the authenticated operator on the request context.
type OperatorContext interface {
	SetOperatorToContext(ctx context.Context, operator string) context.Context
}

// Authenticate checks the operator bearer token on ops API calls.
type Authenticate struct {
	token          string
	contextManager OperatorContext
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(token string, contextManager OperatorContext, logger *logger.Logger) *Authenticate {
	return &Authenticate{token: token, contextManager: contextManager, logger: logger}
}

// AuthFunc validates the Authorization header and records the operator named
// in x-operator-name, if any.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var (
		tokenString string
		operator    = defaultOperator
	)
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
		if names := md.Get("x-operator-name"); len(names) > 0 && names[0] != "" {
			operator = names[0]
		}
	}

	if tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}
	if m.token == "" || subtle.ConstantTimeCompare([]byte(tokenString), []byte(m.token)) != 1 {
		m.logger.Warn("Authenticate middleware: invalid operator token", "operator", operator)
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	return m.contextManager.SetOperatorToContext(ctx, operator), nil
}
