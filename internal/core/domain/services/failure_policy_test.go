package services_test

import (
	"testing"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/domain/services"
	"reparto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newInDeliveryShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), "ENV-00000042", "Villa María", "Juan Pérez", "", "central", testTime)
	require.NoError(t, err)
	require.NoError(t, s.StartDelivery("central", testTime))
	return s
}

func TestFailurePolicyClassify(t *testing.T) {
	policy := services.NewFailurePolicy()

	t.Run("first failure reschedules", func(t *testing.T) {
		s := newInDeliveryShipment(t)

		outcome, err := policy.Classify(s, "domicilio cerrado")
		require.NoError(t, err)
		assert.Equal(t, shipment.Rescheduled, outcome)
	})

	t.Run("second failure is a permanent no-show", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		require.NoError(t, s.RecordFailure("domicilio cerrado", shipment.Rescheduled, "central", testTime))
		require.NoError(t, s.StartDelivery("central", testTime))

		outcome, err := policy.Classify(s, "domicilio cerrado")
		require.NoError(t, err)
		assert.Equal(t, shipment.NoShow, outcome)
	})

	t.Run("rejection literal wins regardless of retry count", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		require.NoError(t, s.RecordFailure("domicilio cerrado", shipment.Rescheduled, "central", testTime))
		require.NoError(t, s.StartDelivery("central", testTime))

		outcome, err := policy.Classify(s, shipment.ReasonRecipientRejected)
		require.NoError(t, err)
		assert.Equal(t, shipment.Rejected, outcome)
	})

	t.Run("near-miss phrasing is not a rejection", func(t *testing.T) {
		s := newInDeliveryShipment(t)

		outcome, err := policy.Classify(s, "Recipient Rejected")
		require.NoError(t, err)
		assert.Equal(t, shipment.Rescheduled, outcome)
	})

	t.Run("terminal shipment conflicts", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		point, _ := kernel.NewGeoPoint(-64.19, -31.42)
		require.NoError(t, s.MarkDelivered("Juan Pérez", "12345678", point, "central", testTime))

		_, err := policy.Classify(s, "domicilio cerrado")
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("blank reason is required", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		_, err := policy.Classify(s, "   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

// Full retry asymmetry through the aggregate: reschedule on the first miss,
// no-show on the second, never back to rescheduled.
func TestRetryAsymmetryEndToEnd(t *testing.T) {
	policy := services.NewFailurePolicy()
	s := newInDeliveryShipment(t)

	outcome, err := policy.Classify(s, "domicilio cerrado")
	require.NoError(t, err)
	require.NoError(t, s.RecordFailure("domicilio cerrado", outcome, "central", testTime))
	assert.Equal(t, shipment.Rescheduled, s.Status())
	assert.Equal(t, 1, s.RetryCount())

	require.NoError(t, s.StartDelivery("central", testTime))

	outcome, err = policy.Classify(s, "domicilio cerrado")
	require.NoError(t, err)
	require.NoError(t, s.RecordFailure("domicilio cerrado", outcome, "central", testTime))
	assert.Equal(t, shipment.NoShow, s.Status())
	assert.Equal(t, 2, s.RetryCount())
}
