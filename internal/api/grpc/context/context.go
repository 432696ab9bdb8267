package context

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// operatorKey is the metadata key carrying the authenticated operator.
const operatorKey = "x-operator"

// Manager keeps the authenticated operator in gRPC incoming metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetOperatorToContext records the operator in the incoming metadata,
// replacing any value the client sent.
func (m *Manager) SetOperatorToContext(ctx context.Context, operator string) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set(operatorKey, operator)

	return metadata.NewIncomingContext(ctx, md)
}

// GetOperatorFromContext returns the operator set by SetOperatorToContext.
func (m *Manager) GetOperatorFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	values := md.Get(operatorKey)
	if len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}
