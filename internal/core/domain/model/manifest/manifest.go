package manifest

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/errs"
)

var (
	// ErrManifestIsNotConstructed is returned when a Manifest instance was not
	// created through NewManifest or RestoreManifest.
	ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest or RestoreManifest")
)

// Manifest is the delivery-sheet aggregate: a daily assignment of shipments
// to one driver, vehicle, and route. A sheet is built as a preliminary plan
// (Pending, no number), committed at confirmation (InDelivery, sequential
// number assigned exactly once), and terminated by manual closure or the
// expiry sweep (Closed).
//
// Manifest maintains these invariants:
//   - The number is assigned exactly once, at the Pending -> InDelivery transition
//   - The movement log is append-only
//   - Status transitions follow Pending -> InDelivery -> Closed
//
// The exclusivity invariant between InDelivery sheets is enforced by the
// confirmation use case, which checks the final shipment list against other
// active sheets before committing.
type Manifest struct {
	id     kernel.UUID
	number *string

	operatingDate time.Time
	routeID       kernel.UUID
	driverID      kernel.UUID
	vehicleID     kernel.UUID

	shipmentIDs []kernel.UUID

	status     Status
	autoClosed bool
	notes      string
	movements  []Movement

	isConstructed bool
}

// NewManifest builds a preliminary sheet in Pending status with no number.
// The candidate shipment list is referenced but not locked; exclusivity is
// enforced only at confirmation. The creating actor is recorded in the
// movement log.
func NewManifest(
	id kernel.UUID,
	operatingDate time.Time,
	routeID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	shipmentIDs []kernel.UUID,
	notes string,
	actor string,
	createdAt time.Time,
) (*Manifest, error) {
	m := &Manifest{
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setOperatingDate(operatingDate),
		m.setRouteID(routeID),
		m.setDriverID(driverID),
		m.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	m.status = Pending
	m.shipmentIDs = slices.Clone(shipmentIDs)
	m.appendMovement(&actor, ActionCreation, createdAt)
	return m, nil
}

// RestoreManifest reconstructs a sheet from persistence without emitting new
// movement entries.
func RestoreManifest(
	id kernel.UUID,
	number *string,
	operatingDate time.Time,
	routeID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	shipmentIDs []kernel.UUID,
	status Status,
	autoClosed bool,
	notes string,
	movements []Movement,
) (*Manifest, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if number != nil {
		if _, err := NumberSuffix(*number); err != nil {
			return nil, err
		}
	}

	return &Manifest{
		id:            id,
		number:        number,
		operatingDate: operatingDate,
		routeID:       routeID,
		driverID:      driverID,
		vehicleID:     vehicleID,
		shipmentIDs:   slices.Clone(shipmentIDs),
		status:        status,
		autoClosed:    autoClosed,
		notes:         notes,
		movements:     slices.Clone(movements),
		isConstructed: true,
	}, nil
}

// Validate ensures the Manifest was properly constructed through a constructor.
func (m *Manifest) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrManifestIsNotConstructed
	}
	return nil
}

// ID returns the sheet's unique identifier.
func (m *Manifest) ID() kernel.UUID { return m.id }

// Number returns the human-readable sheet number, or nil while the sheet is
// preliminary.
func (m *Manifest) Number() *string { return m.number }

// OperatingDate returns the day the sheet covers.
func (m *Manifest) OperatingDate() time.Time { return m.operatingDate }

// RouteID returns the reference to the sheet's route.
func (m *Manifest) RouteID() kernel.UUID { return m.routeID }

// DriverID returns the reference to the assigned driver.
func (m *Manifest) DriverID() kernel.UUID { return m.driverID }

// VehicleID returns the reference to the assigned vehicle.
func (m *Manifest) VehicleID() kernel.UUID { return m.vehicleID }

// ShipmentIDs returns a copy of the ordered shipment reference list.
func (m *Manifest) ShipmentIDs() []kernel.UUID { return slices.Clone(m.shipmentIDs) }

// Status returns the current lifecycle status.
func (m *Manifest) Status() Status { return m.status }

// AutoClosed reports whether the sheet was closed by the expiry sweep rather
// than an operator.
func (m *Manifest) AutoClosed() bool { return m.autoClosed }

// Notes returns the free-text notes attached at build time.
func (m *Manifest) Notes() string { return m.notes }

// Movements returns a copy of the append-only movement log.
func (m *Manifest) Movements() []Movement { return slices.Clone(m.movements) }

// IsEqual compares two sheets by their unique identifiers.
func (m *Manifest) IsEqual(other *Manifest) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// References reports whether the sheet's shipment list contains the given ID.
func (m *Manifest) References(shipmentID kernel.UUID) bool {
	return slices.ContainsFunc(m.shipmentIDs, shipmentID.IsEqual)
}

// Confirm commits the preliminary sheet: assigns its number, replaces the
// candidate list with the operator's final selection, applies driver/vehicle
// overrides, and logs the confirming actor.
//
// The number is assigned exactly once; confirming a sheet that already holds
// one fails with a conflict even if its status was tampered with.
func (m *Manifest) Confirm(
	number string,
	finalShipmentIDs []kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	actor string,
	at time.Time,
) error {
	if m.number != nil {
		return errs.NewConflictErrorWithCause("manifest", m.id.String(),
			fmt.Errorf("number %s is already assigned", *m.number))
	}
	if _, err := NumberSuffix(number); err != nil {
		return err
	}
	if len(finalShipmentIDs) == 0 {
		return errs.NewValueIsRequiredError("shipmentIDs")
	}

	newStatus, err := m.status.Confirm()
	if err != nil {
		return err
	}

	if err = errors.Join(m.setDriverID(driverID), m.setVehicleID(vehicleID)); err != nil {
		return err
	}

	m.status = newStatus
	m.number = &number
	m.shipmentIDs = slices.Clone(finalShipmentIDs)
	m.appendMovement(&actor, ActionConfirmation, at)
	return nil
}

// Close terminates an in-delivery sheet on an operator's demand.
func (m *Manifest) Close(actor string, at time.Time) error {
	newStatus, err := m.status.Close()
	if err != nil {
		return err
	}

	m.status = newStatus
	m.appendMovement(&actor, ActionManualClosure, at)
	return nil
}

// CloseAutomatically terminates an in-delivery sheet left open past its
// operating day. The movement entry carries no actor.
func (m *Manifest) CloseAutomatically(at time.Time) error {
	newStatus, err := m.status.Close()
	if err != nil {
		return err
	}

	m.status = newStatus
	m.autoClosed = true
	m.appendMovement(nil, ActionAutomaticClosure, at)
	return nil
}

func (m *Manifest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Manifest) setOperatingDate(operatingDate time.Time) error {
	if operatingDate.IsZero() {
		return errs.NewValueIsRequiredError("operatingDate")
	}
	m.operatingDate = operatingDate
	return nil
}

func (m *Manifest) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	m.routeID = routeID
	return nil
}

func (m *Manifest) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	m.driverID = driverID
	return nil
}

func (m *Manifest) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	m.vehicleID = vehicleID
	return nil
}

func (m *Manifest) appendMovement(actor *string, action string, at time.Time) {
	m.movements = append(m.movements, Movement{
		Actor:  actor,
		Action: action,
		At:     at,
	})
}
