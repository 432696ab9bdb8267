package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// Reconciler settles orders left in status created, typically by a charge
// that failed or timed out after the order was stored.
type Reconciler struct {
	orderStore model.OrderStore
	gateway    model.PaymentGateway
	staleAfter time.Duration
	batchSize  int
	logger     *logger.Logger
	now        func() time.Time
}

func NewReconciler(orderStore model.OrderStore, gateway model.PaymentGateway, staleAfter time.Duration, batchSize int, logger *logger.Logger) *Reconciler {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Reconciler{
		orderStore: orderStore,
		gateway:    gateway,
		staleAfter: staleAfter,
		batchSize:  batchSize,
		logger:     logger,
		now:        time.Now,
	}
}

// Reconcile checks one batch of stale orders against the payment processor.
// A successful charge marks the order paid and a missing or failed charge
// marks it expired. Pending charges and lookup failures are left for the next
// pass.
func (r *Reconciler) Reconcile(ctx context.Context) (model.ReconcileReport, error) {
	var report model.ReconcileReport

	orders, err := r.orderStore.ListStale(ctx, r.now().Add(-r.staleAfter), r.batchSize)
	if err != nil {
		return report, fmt.Errorf("failed to list stale orders: %w", err)
	}

	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		charge, err := r.gateway.FindChargeByOrder(ctx, order.ID)
		switch {
		case errors.Is(err, model.ErrNotFound):
			if err := r.orderStore.MarkExpired(ctx, order.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
				r.logger.Error("Reconciler: failed to expire order", "order_id", order.ID, "error", err.Error())
				report.Failed++
				continue
			}
			report.Expired++
			r.logger.Info("Reconciler: order expired", "order_id", order.ID)
		case err != nil:
			r.logger.Warn("Reconciler: failed to look up charge", "order_id", order.ID, "error", err.Error())
			report.Failed++
		case charge.Pending:
			report.Pending++
			r.logger.Info("Reconciler: charge still pending", "order_id", order.ID, "charge_id", charge.ID)
		case charge.Succeeded:
			if err := r.orderStore.MarkPaid(ctx, order.ID, charge.ID, r.now()); err != nil && !errors.Is(err, model.ErrNotFound) {
				r.logger.Error("Reconciler: failed to mark order paid", "order_id", order.ID, "error", err.Error())
				report.Failed++
				continue
			}
			report.Paid++
			r.logger.Info("Reconciler: order paid", "order_id", order.ID, "charge_id", charge.ID)
		default:
			if err := r.orderStore.MarkExpired(ctx, order.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
				r.logger.Error("Reconciler: failed to expire order", "order_id", order.ID, "error", err.Error())
				report.Failed++
				continue
			}
			report.Expired++
			r.logger.Info("Reconciler: order expired after failed charge", "order_id", order.ID, "charge_id", charge.ID)
		}
	}

	return report, nil
}

// Run reconciles every interval until ctx is done.
func (r *Reconciler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := r.Reconcile(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					r.logger.Error("Reconciler: pass failed", "error", err.Error())
				}
				continue
			}
			r.logger.Info("Reconciler: pass finished",
				"checked", report.Checked,
				"paid", report.Paid,
				"expired", report.Expired,
				"pending", report.Pending,
				"failed", report.Failed)
		}
	}
}
