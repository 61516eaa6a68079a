package shipment_test

import (
	"testing"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), "ENV-00000042", "Villa María", "Juan Pérez", "2 cajas", "central", testTime)
	require.NoError(t, err)
	return s
}

func newInDeliveryShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s := newTestShipment(t)
	require.NoError(t, s.StartDelivery("central", testTime.Add(time.Hour)))
	return s
}

func TestNewShipment(t *testing.T) {
	t.Run("registers in pending with one history entry", func(t *testing.T) {
		s := newTestShipment(t)

		assert.Equal(t, shipment.Pending, s.Status())
		require.Len(t, s.History(), 1)
		assert.Equal(t, shipment.Pending, s.History()[0].Status)
		assert.Equal(t, "central", s.History()[0].Branch)
		assert.Equal(t, 0, s.RetryCount())
	})

	t.Run("requires a tracking number with the ENV prefix", func(t *testing.T) {
		_, err := shipment.NewShipment(
			kernel.NewUUID(), "42", "Villa María", "Juan Pérez", "", "central", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires locality and recipient", func(t *testing.T) {
		_, err := shipment.NewShipment(
			kernel.NewUUID(), "ENV-00000042", "", "", "", "central", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewTrackingNumber(t *testing.T) {
	number := shipment.NewTrackingNumber()
	assert.Regexp(t, `^ENV-\d{8}$`, number)
}

func TestShipmentValidate(t *testing.T) {
	var zero shipment.Shipment
	require.ErrorIs(t, zero.Validate(), shipment.ErrShipmentIsNotConstructed)
	require.NoError(t, newTestShipment(t).Validate())
}

func TestStartDelivery(t *testing.T) {
	t.Run("pending shipment starts delivery", func(t *testing.T) {
		s := newTestShipment(t)

		require.NoError(t, s.StartDelivery("central", testTime.Add(time.Hour)))

		assert.Equal(t, shipment.InDelivery, s.Status())
		require.Len(t, s.History(), 2)
		assert.Equal(t, shipment.InDelivery, s.History()[1].Status)
	})

	t.Run("rescheduled shipment re-enters delivery", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		require.NoError(t, s.Reschedule("central", "sheet closed", testTime.Add(2*time.Hour)))

		require.NoError(t, s.StartDelivery("central", testTime.Add(3*time.Hour)))
		assert.Equal(t, shipment.InDelivery, s.Status())
	})

	t.Run("delivered shipment cannot restart", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		point, _ := kernel.NewGeoPoint(-64.19, -31.42)
		require.NoError(t, s.MarkDelivered("Juan Pérez", "12345678", point, "central", testTime))

		require.ErrorIs(t, s.StartDelivery("central", testTime), errs.ErrValueIsInvalid)
	})
}

func TestMarkDelivered(t *testing.T) {
	point, _ := kernel.NewGeoPoint(-64.19, -31.42)

	t.Run("stores receiver and location", func(t *testing.T) {
		s := newInDeliveryShipment(t)

		err := s.MarkDelivered("Juan Pérez", "12345678", point, "central", testTime.Add(2*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, shipment.Delivered, s.Status())
		assert.Equal(t, "Juan Pérez", s.ReceiverName())
		assert.Equal(t, "12345678", s.ReceiverDocument())
		require.NotNil(t, s.DeliveryPoint())
		assert.True(t, point.IsEqual(*s.DeliveryPoint()))
		require.Len(t, s.History(), 3)
		assert.Equal(t, shipment.Delivered, s.History()[2].Status)
	})

	t.Run("requires receiver name", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		err := s.MarkDelivered("  ", "12345678", point, "central", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, shipment.InDelivery, s.Status())
	})

	t.Run("requires receiver document", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		err := s.MarkDelivered("Juan Pérez", "", point, "central", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects an unconstructed point", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		err := s.MarkDelivered("Juan Pérez", "12345678", kernel.GeoPoint{}, "central", testTime)
		require.Error(t, err)
		assert.Equal(t, shipment.InDelivery, s.Status())
		assert.Len(t, s.History(), 2)
	})

	t.Run("rejects wrong state", func(t *testing.T) {
		s := newTestShipment(t)
		err := s.MarkDelivered("Juan Pérez", "12345678", point, "central", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRecordFailure(t *testing.T) {
	t.Run("applies outcome with reason in history", func(t *testing.T) {
		s := newInDeliveryShipment(t)

		err := s.RecordFailure("domicilio cerrado", shipment.Rescheduled, "central", testTime.Add(2*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, shipment.Rescheduled, s.Status())
		assert.Equal(t, 1, s.RetryCount())
		assert.Equal(t, "domicilio cerrado", s.FailureReason())
		require.NotNil(t, s.LastAttemptAt())
		last := s.History()[len(s.History())-1]
		assert.Equal(t, "domicilio cerrado", last.Reason)
	})

	t.Run("terminal shipment conflicts", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		point, _ := kernel.NewGeoPoint(-64.19, -31.42)
		require.NoError(t, s.MarkDelivered("Juan Pérez", "12345678", point, "central", testTime))

		err := s.RecordFailure("domicilio cerrado", shipment.Rescheduled, "central", testTime)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("refuses a non-failure outcome", func(t *testing.T) {
		s := newInDeliveryShipment(t)
		err := s.RecordFailure("domicilio cerrado", shipment.Delivered, "central", testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestReschedule(t *testing.T) {
	t.Run("in-delivery shipment returns to the pool", func(t *testing.T) {
		s := newInDeliveryShipment(t)

		require.NoError(t, s.Reschedule("system", "sheet expired", testTime.Add(24*time.Hour)))

		assert.Equal(t, shipment.Rescheduled, s.Status())
		last := s.History()[len(s.History())-1]
		assert.Equal(t, "system", last.Branch)
		assert.Equal(t, "sheet expired", last.Reason)
	})

	t.Run("pending shipment cannot be rescheduled", func(t *testing.T) {
		s := newTestShipment(t)
		require.ErrorIs(t, s.Reschedule("system", "", testTime), errs.ErrValueIsInvalid)
	})
}

// History invariant: length strictly increases per transition and the last
// entry always matches the current status.
func TestHistoryAppendOnlyAndOrdered(t *testing.T) {
	s := newTestShipment(t)
	assertLastMatches := func() {
		t.Helper()
		h := s.History()
		require.NotEmpty(t, h)
		assert.Equal(t, s.Status(), h[len(h)-1].Status)
	}

	assertLastMatches()
	prev := len(s.History())

	require.NoError(t, s.StartDelivery("central", testTime))
	assert.Len(t, s.History(), prev+1)
	assertLastMatches()
	prev = len(s.History())

	require.NoError(t, s.RecordFailure("domicilio cerrado", shipment.Rescheduled, "central", testTime))
	assert.Len(t, s.History(), prev+1)
	assertLastMatches()
	prev = len(s.History())

	require.NoError(t, s.StartDelivery("central", testTime))
	assert.Len(t, s.History(), prev+1)
	assertLastMatches()
}

func TestRestoreShipment(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		original := newInDeliveryShipment(t)

		restored, err := shipment.RestoreShipment(
			original.ID(),
			original.TrackingNumber(),
			original.Locality(),
			original.Recipient(),
			original.PackageDetail(),
			original.Status(),
			original.History(),
			original.ReceiverName(),
			original.ReceiverDocument(),
			original.DeliveryPoint(),
			original.FailureReason(),
			original.RetryCount(),
			original.LastAttemptAt(),
		)
		require.NoError(t, err)

		assert.True(t, original.IsEqual(restored))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Equal(t, original.History(), restored.History())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := shipment.RestoreShipment(
			kernel.NewUUID(), "ENV-00000042", "Villa María", "Juan Pérez", "",
			shipment.Unknown, nil, "", "", nil, "", 0, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative retry count is rejected", func(t *testing.T) {
		_, err := shipment.RestoreShipment(
			kernel.NewUUID(), "ENV-00000042", "Villa María", "Juan Pérez", "",
			shipment.Pending, nil, "", "", nil, "", -1, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
