package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// ReconcileService settles orders left in the created state.
type ReconcileService interface {
	Reconcile(ctx context.Context) (model.ReconcileReport, error)
}

// OrderFinder loads an order regardless of its buyer.
type OrderFinder interface {
	FindOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
}

// OperatorContext reads the authenticated operator.
type OperatorContext interface {
	GetOperatorFromContext(ctx context.Context) (string, bool)
}

// Reconciliation implements the ops reconciliation service.
type Reconciliation struct {
	reconciler     ReconcileService
	orders         OrderFinder
	contextManager OperatorContext
	logger         *logger.Logger
}

var _ ReconciliationServer = (*Reconciliation)(nil)

func NewReconciliation(reconciler ReconcileService, orders OrderFinder, contextManager OperatorContext, logger *logger.Logger) *Reconciliation {
	return &Reconciliation{
		reconciler:     reconciler,
		orders:         orders,
		contextManager: contextManager,
		logger:         logger,
	}
}

// ReconcileOrders runs one reconciliation pass now and returns its report.
func (h *Reconciliation) ReconcileOrders(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	operator, _ := h.contextManager.GetOperatorFromContext(ctx)
	h.logger.Info("Reconciliation handler: manual run requested", "operator", operator)

	report, err := h.reconciler.Reconcile(ctx)
	if err != nil {
		h.logger.Error("Reconciliation handler: run failed", "operator", operator, "error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(map[string]any{
		"checked": report.Checked,
		"paid":    report.Paid,
		"expired": report.Expired,
		"pending": report.Pending,
		"failed":  report.Failed,
	})
}

// GetOrder returns an order with its payment state for inspection.
func (h *Reconciliation) GetOrder(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := uuid.Parse(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid order id")
	}

	order, err := h.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}

	return toStruct(orderFields(order))
}

func orderFields(order model.Order) map[string]any {
	lines := make([]any, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, map[string]any{
			"product_id": l.ProductID.String(),
			"title":      l.Title,
			"price":      l.Price.StringFixed(2),
			"quantity":   l.Quantity,
		})
	}

	fields := map[string]any{
		"id":           order.ID.String(),
		"buyer_id":     order.BuyerID.String(),
		"buyer_email":  order.BuyerEmail,
		"status":       string(order.Status),
		"total":        order.Total.StringFixed(2),
		"currency":     order.Currency,
		"charge_id":    order.ChargeID,
		"checkout_key": order.CheckoutKey.String(),
		"created_at":   order.CreatedAt.UTC().Format(time.RFC3339),
		"lines":        lines,
	}
	if order.PaidAt != nil {
		fields["paid_at"] = order.PaidAt.UTC().Format(time.RFC3339)
	}
	return fields
}

func toStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode response: %v", err))
	}
	return s, nil
}
