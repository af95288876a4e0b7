package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"mfgorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("productId", "p-1", cause)

		assert.Equal(t,
			"object not found: param is: productId, ID is: p-1 (cause: connection reset)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValidationErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("client")

		assert.Equal(t, "value is required: client", err.Error())
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("invalid with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("draft is not a valid target"))

		assert.Equal(t, "value is invalid: status (cause: draft is not a valid target)", err.Error())
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", -1, 0, "unbounded")

		assert.Equal(t, "value is invalid: -1 is quantity, min value is 0, max value is unbounded", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("out of range strips newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("label", "small\nred", 0, 10)

		assert.Contains(t, err.Error(), "small red")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("wrapped validation error is still classified", func(t *testing.T) {
		err := fmt.Errorf("save draft: %w", errs.NewValueIsRequiredError("manufacturer"))

		assert.True(t, errs.IsValidation(err))
	})

	t.Run("non validation error", func(t *testing.T) {
		assert.False(t, errs.IsValidation(errs.NewConflictError("item", "approved")))
	})
}

func TestNotPermittedError(t *testing.T) {
	err := errs.NewNotPermittedError("order.delete", "admin may only delete drafts")

	assert.Equal(t, "not permitted: order.delete (admin may only delete drafts)", err.Error())
	require.ErrorIs(t, err, errs.ErrNotPermitted)
	assert.Equal(t, "not permitted", errs.ErrNotPermitted.Error())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("admin_status", "approved")

	assert.Equal(t, "conflict: admin_status is already approved", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)

	withCause := errs.NewConflictErrorWithCause("order version", 3, errors.New("stale"))
	assert.Equal(t, "conflict: order version is already 3 (cause: stale)", withCause.Error())
}

func TestReferentialIntegrityError(t *testing.T) {
	cause := errors.New("violates foreign key constraint")
	err := errs.NewReferentialIntegrityError("order_items -> order_products", cause)

	assert.Equal(t,
		"there are still related records: order_items -> order_products (cause: violates foreign key constraint)",
		err.Error())
	require.ErrorIs(t, err, errs.ErrReferentialIntegrity)

	var target *errs.ReferentialIntegrityError
	require.ErrorAs(t, fmt.Errorf("delete order: %w", err), &target)
	assert.Equal(t, "order_items -> order_products", target.Relationship)
}

func TestUpstreamFailureError(t *testing.T) {
	err := errs.NewUpstreamFailureError("swatch.png", errors.New("file too large"))

	assert.Equal(t, "upstream failure: swatch.png (cause: file too large)", err.Error())
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "there are still related records", errs.ErrReferentialIntegrity.Error())
	assert.Equal(t, "upstream failure", errs.ErrUpstreamFailure.Error())
}
