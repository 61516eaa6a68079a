// Package http exposes the delivery-sheet operations over a JSON API. The
// server binds and validates requests, translates them into commands and
// queries, and maps domain errors to HTTP status codes. All business rules
// live in the application layer.
package http

import (
	"net/http"

	"reparto/internal/core/application/usecases/commands"
	"reparto/internal/core/application/usecases/queries"
	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerShipmentHandler    commands.RegisterShipmentCommandHandler
	buildManifestHandler       commands.BuildManifestCommandHandler
	confirmManifestHandler     commands.ConfirmManifestCommandHandler
	closeManifestHandler       commands.CloseManifestCommandHandler
	markDeliveredHandler       commands.MarkDeliveredCommandHandler
	markDeliveryFailureHandler commands.MarkDeliveryFailureCommandHandler

	// Query handlers
	getActiveManifestsHandler queries.GetActiveManifestsQueryHandler
	getByTrackingHandler      queries.GetShipmentByTrackingNumberQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerShipmentHandler commands.RegisterShipmentCommandHandler,
	buildManifestHandler commands.BuildManifestCommandHandler,
	confirmManifestHandler commands.ConfirmManifestCommandHandler,
	closeManifestHandler commands.CloseManifestCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	markDeliveryFailureHandler commands.MarkDeliveryFailureCommandHandler,
	getActiveManifestsHandler queries.GetActiveManifestsQueryHandler,
	getByTrackingHandler queries.GetShipmentByTrackingNumberQueryHandler,
) *Server {
	return &Server{
		registerShipmentHandler:    registerShipmentHandler,
		buildManifestHandler:       buildManifestHandler,
		confirmManifestHandler:     confirmManifestHandler,
		closeManifestHandler:       closeManifestHandler,
		markDeliveredHandler:       markDeliveredHandler,
		markDeliveryFailureHandler: markDeliveryFailureHandler,
		getActiveManifestsHandler:  getActiveManifestsHandler,
		getByTrackingHandler:       getByTrackingHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewCustomValidator()

	api := e.Group("/api/v1")
	api.POST("/shipments", s.RegisterShipment)
	api.GET("/shipments/:trackingNumber", s.GetShipmentByTrackingNumber)
	api.POST("/shipments/:id/delivery", s.MarkDelivered)
	api.POST("/shipments/:id/failure", s.MarkDeliveryFailure)
	api.POST("/manifests", s.BuildManifest)
	api.POST("/manifests/:id/confirmation", s.ConfirmManifest)
	api.POST("/manifests/:id/closure", s.CloseManifest)
	api.GET("/manifests/active", s.GetActiveManifests)
}

// RegisterShipment handles POST /api/v1/shipments.
func (s *Server) RegisterShipment(ctx echo.Context) error {
	var req RegisterShipmentRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterShipmentCommand(req.Locality, req.Recipient, req.PackageDetail, req.Branch)
	if err != nil {
		return errorResponse(ctx, err)
	}

	registered, err := s.registerShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, shipmentResponse(registered))
}

// GetShipmentByTrackingNumber handles GET /api/v1/shipments/:trackingNumber.
func (s *Server) GetShipmentByTrackingNumber(ctx echo.Context) error {
	query, err := queries.NewGetShipmentByTrackingNumberQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	tracked, err := s.getByTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp := ShipmentResponse{
		ID:             tracked.ID.String(),
		TrackingNumber: tracked.TrackingNumber,
		Locality:       tracked.Locality,
		Recipient:      tracked.Recipient,
		PackageDetail:  tracked.PackageDetail,
		Status:         tracked.Status,
		RetryCount:     tracked.RetryCount,
		FailureReason:  tracked.FailureReason,
		History:        make([]HistoryEntryResponse, 0, len(tracked.History)),
	}
	for _, entry := range tracked.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status: entry.Status,
			Branch: entry.Branch,
			At:     entry.At,
			Reason: entry.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// MarkDelivered handles POST /api/v1/shipments/:id/delivery.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req MarkDeliveredRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewMarkDeliveredCommand(
		shipmentID, req.ReceiverName, req.ReceiverDocument, req.Longitude, req.Latitude,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	delivered, err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponse(delivered))
}

// MarkDeliveryFailure handles POST /api/v1/shipments/:id/failure.
func (s *Server) MarkDeliveryFailure(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req MarkDeliveryFailureRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewMarkDeliveryFailureCommand(shipmentID, req.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}

	failed, err := s.markDeliveryFailureHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponse(failed))
}

// BuildManifest handles POST /api/v1/manifests.
func (s *Server) BuildManifest(ctx echo.Context) error {
	var req BuildManifestRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	routeID, err := kernel.UUIDFromString(req.RouteID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	vehicleID, err := optionalUUID(req.VehicleID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewBuildManifestCommand(routeID, driverID, vehicleID, req.Notes, req.Actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.buildManifestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp := BuildManifestResponse{
		Manifest:   manifestResponse(result.Manifest),
		Candidates: make([]ShipmentResponse, 0, len(result.Candidates)),
	}
	for _, candidate := range result.Candidates {
		resp.Candidates = append(resp.Candidates, shipmentResponse(candidate))
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// ConfirmManifest handles POST /api/v1/manifests/:id/confirmation.
func (s *Server) ConfirmManifest(ctx echo.Context) error {
	manifestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req ConfirmManifestRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	shipmentIDs := make([]kernel.UUID, 0, len(req.ShipmentIDs))
	for _, raw := range req.ShipmentIDs {
		shipmentID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorResponse(ctx, idErr)
		}
		shipmentIDs = append(shipmentIDs, shipmentID)
	}

	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	vehicleID, err := optionalUUID(req.VehicleID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewConfirmManifestCommand(manifestID, shipmentIDs, driverID, vehicleID, req.Actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	confirmed, err := s.confirmManifestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, manifestResponse(confirmed))
}

// CloseManifest handles POST /api/v1/manifests/:id/closure.
func (s *Server) CloseManifest(ctx echo.Context) error {
	manifestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CloseManifestRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCloseManifestCommand(manifestID, req.Actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	closed, err := s.closeManifestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, manifestResponse(closed))
}

// GetActiveManifests handles GET /api/v1/manifests/active.
func (s *Server) GetActiveManifests(ctx echo.Context) error {
	query := queries.NewGetActiveManifestsQuery()

	manifests, err := s.getActiveManifestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp := make([]ActiveManifestResponse, 0, len(manifests))
	for _, m := range manifests {
		resp = append(resp, ActiveManifestResponse{
			ID:            m.ID.String(),
			Number:        m.Number,
			Status:        m.Status,
			OperatingDate: m.OperatingDate,
			RouteID:       m.RouteID.String(),
			DriverID:      m.DriverID.String(),
			VehicleID:     m.VehicleID.String(),
			ShipmentCount: m.ShipmentCount,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// bind decodes and validates the request body, replying 400 on either failure.
func bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	if err := ctx.Validate(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return nil
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func shipmentResponse(s *shipment.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:             s.ID().String(),
		TrackingNumber: s.TrackingNumber(),
		Locality:       s.Locality(),
		Recipient:      s.Recipient(),
		PackageDetail:  s.PackageDetail(),
		Status:         s.Status().String(),
		RetryCount:     s.RetryCount(),
		FailureReason:  s.FailureReason(),
		History:        make([]HistoryEntryResponse, 0, len(s.History())),
	}
	for _, entry := range s.History() {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status: entry.Status.String(),
			Branch: entry.Branch,
			At:     entry.At,
			Reason: entry.Reason,
		})
	}
	return resp
}

func manifestResponse(m *manifest.Manifest) ManifestResponse {
	shipmentIDs := make([]string, 0, len(m.ShipmentIDs()))
	for _, id := range m.ShipmentIDs() {
		shipmentIDs = append(shipmentIDs, id.String())
	}

	return ManifestResponse{
		ID:            m.ID().String(),
		Number:        m.Number(),
		Status:        m.Status().String(),
		OperatingDate: m.OperatingDate(),
		RouteID:       m.RouteID().String(),
		DriverID:      m.DriverID().String(),
		VehicleID:     m.VehicleID().String(),
		ShipmentIDs:   shipmentIDs,
		AutoClosed:    m.AutoClosed(),
		Notes:         m.Notes(),
	}
}
