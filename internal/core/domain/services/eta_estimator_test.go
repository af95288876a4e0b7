package services_test

import (
	"testing"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledProduct(status order.ProductStatus, method order.ShippingMethod, days *int, start *kernel.Date) *order.Product {
	return order.RestoreProduct(order.ProductState{
		ID:             kernel.NewUUID(),
		ProductRef:     "CAP-02",
		RoutedTo:       order.CustodianManufacturer,
		Status:         status,
		ShippingMethod: method,
		Production:     order.Production{Days: days, StartDate: start},
	})
}

func TestETAEstimator_Estimate(t *testing.T) {
	clock := kernel.FixedClock{At: time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)}
	estimator := services.NewETAEstimator(clock)
	days := 10
	start := kernel.NewDate(2025, time.January, 1)

	t.Run("estimate from today before production", func(t *testing.T) {
		eta := estimator.Estimate(scheduledProduct(order.ProductPending, order.ShippingUnset, &days, nil))

		require.NotNil(t, eta.Date)
		assert.True(t, eta.IsEstimate)
		assert.True(t, eta.ShippingMethodUnset)
		assert.Equal(t, clock.Today().AddDays(35).String(), eta.Date.String())
		assert.Equal(t, "2025-04-14", eta.Date.String())
	})

	t.Run("actual from the start date once in production", func(t *testing.T) {
		eta := estimator.Estimate(scheduledProduct(order.ProductInProduction, order.ShippingAir, &days, &start))

		require.NotNil(t, eta.Date)
		assert.False(t, eta.IsEstimate)
		assert.False(t, eta.ShippingMethodUnset)
		assert.Equal(t, "2025-01-26", eta.Date.String())
	})

	t.Run("start date is ignored outside production", func(t *testing.T) {
		eta := estimator.Estimate(scheduledProduct(order.ProductCompleted, order.ShippingBoat, &days, &start))

		assert.True(t, eta.IsEstimate)
		assert.Equal(t, "2025-04-14", eta.Date.String())
	})

	t.Run("no production days", func(t *testing.T) {
		eta := estimator.Estimate(scheduledProduct(order.ProductInProduction, order.ShippingAir, nil, &start))

		assert.Nil(t, eta.Date)
		assert.False(t, eta.ShippingMethodUnset)
	})

	t.Run("nil clock falls back to the system clock", func(t *testing.T) {
		eta := services.NewETAEstimator(nil).Estimate(scheduledProduct(order.ProductPending, order.ShippingAir, &days, nil))

		require.NotNil(t, eta.Date)
		assert.Equal(t, kernel.SystemClock{}.Today().AddDays(25).String(), eta.Date.String())
	})
}
