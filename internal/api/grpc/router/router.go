package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpccontext "github.com/dtroode/storefront/internal/api/grpc/context"
	"github.com/dtroode/storefront/internal/api/grpc/handler"
	"github.com/dtroode/storefront/internal/api/grpc/middleware"
	"github.com/dtroode/storefront/internal/logger"
)

// Router builds the operator gRPC server.
type Router struct {
	reconciler     handler.ReconcileService
	orders         handler.OrderFinder
	opsToken       string
	contextManager *grpccontext.Manager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	reconciler handler.ReconcileService,
	orders handler.OrderFinder,
	opsToken string,
	contextManager *grpccontext.Manager,
	logger *logger.Logger,
) *Router {
	return &Router{
		reconciler:     reconciler,
		orders:         orders,
		opsToken:       opsToken,
		contextManager: contextManager,
		logger:         logger,
	}
}

// authSkip keeps the standard health service reachable without a token.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+healthpb.Health_ServiceDesc.ServiceName+"/")
}

// Register registers the ops and health services with request logging and
// operator authentication interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.opsToken, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
		grpc.ChainStreamInterceptor(
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)
	r.registerReconciliationRoutes(s)
	r.registerHealthRoutes(s)

	return s
}

func (r *Router) registerReconciliationRoutes(server *grpc.Server) {
	reconciliationHandler := handler.NewReconciliation(r.reconciler, r.orders, r.contextManager, r.logger)
	handler.RegisterReconciliationServer(server, reconciliationHandler)
}

func (r *Router) registerHealthRoutes(server *grpc.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus(handler.ReconciliationServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
}
