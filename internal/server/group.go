// Package server opens listeners for the storefront's HTTP and gRPC
// servers and runs them side by side.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/dtroode/storefront/internal/logger"
)

// SecurityLayer opens the listening socket a server accepts on.
type SecurityLayer interface {
	Listen(network, addr string) (net.Listener, error)
}

// Runner serves on a listener from its security layer until stopped.
// Start blocks; Stop must make it return.
type Runner interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

type member struct {
	runner Runner
	sl     SecurityLayer
}

// Group starts every member in its own goroutine and stops them together.
type Group struct {
	logger  *logger.Logger
	members []member
	wg      sync.WaitGroup
}

func NewGroup(logger *logger.Logger) *Group {
	return &Group{logger: logger}
}

// Add registers r to be started on listeners from sl. Call before Start.
func (g *Group) Add(r Runner, sl SecurityLayer) {
	g.members = append(g.members, member{runner: r, sl: sl})
}

// Start launches all members. A member that fails to start is logged and
// does not take the others down.
func (g *Group) Start() {
	for _, m := range g.members {
		g.wg.Add(1)
		go func(m member) {
			defer g.wg.Done()
			g.logger.Info("Server group: starting server", "address", m.runner.Address())
			if err := m.runner.Start(m.sl); err != nil {
				g.logger.Error("Server group: server stopped with error", "address", m.runner.Address(), "error", err.Error())
			}
		}(m)
	}
}

// Stop stops every member, then waits for their Start calls to return or
// for ctx to end.
func (g *Group) Stop(ctx context.Context) error {
	var errs []error
	for _, m := range g.members {
		if err := m.runner.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop server on %s: %w", m.runner.Address(), err))
		}
	}

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("servers still running: %w", ctx.Err()))
	}
	return errors.Join(errs...)
}
