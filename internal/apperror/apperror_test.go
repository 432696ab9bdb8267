package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestAPIError_Is(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("consume reset: %w", ErrTokenInvalidOrExpired)
	assert.ErrorIs(t, wrapped, ErrTokenInvalidOrExpired)
	assert.NotErrorIs(t, NewErrInvalidCredentials(), ErrTokenInvalidOrExpired)
	assert.ErrorIs(t, NewErrEmptyCart(), NewErrEmptyCart())
}

func TestAPIError_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *APIError
		wantHTTP int
		wantGRPC codes.Code
	}{
		{"validation", NewErrValidation("bad"), http.StatusUnprocessableEntity, codes.InvalidArgument},
		{"not found", NewErrProductNotFound(uuid.New()), http.StatusNotFound, codes.NotFound},
		{"unauthorized", NewErrNotOwner(), http.StatusForbidden, codes.PermissionDenied},
		{"conflict", NewErrCheckoutInProgress(), http.StatusConflict, codes.Aborted},
		{"payment", NewErrPayment("declined", nil), http.StatusPaymentRequired, codes.FailedPrecondition},
		{"storage", NewErrStorage("save order", errors.New("down")), http.StatusInternalServerError, codes.Unavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantHTTP, tt.err.HTTPStatus())
			assert.Equal(t, tt.wantGRPC, tt.err.GRPCCode())
		})
	}
}

func TestAPIError_UnwrapAndMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewErrStorage("load cart", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load cart: connection refused", err.Error())

	got, ok := As(fmt.Errorf("wrap: %w", err))
	assert.True(t, ok)
	assert.Equal(t, KindStorage, got.Kind)
	assert.True(t, IsKind(err, KindStorage))
	assert.False(t, IsKind(errors.New("plain"), KindStorage))
}
