// Package http exposes the marketplace use cases over a JSON API served by echo.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handler is a use case that produces a result.
type Handler[C, R any] interface {
	Handle(ctx context.Context, c C) (R, error)
}

// Action is a use case that produces no result.
type Action[C any] interface {
	Handle(ctx context.Context, c C) error
}

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	CreateRequest       Handler[commands.CreateRequestCommand, kernel.UUID]
	SubmitBid           Handler[commands.SubmitBidCommand, kernel.UUID]
	WithdrawBid         Action[commands.WithdrawBidCommand]
	AcceptBid           Action[commands.AcceptBidCommand]
	StartTransit        Action[commands.StartTransitCommand]
	UpdateLocation      Action[commands.UpdateLocationCommand]
	CompleteDelivery    Action[commands.CompleteDeliveryCommand]
	CancelRequest       Action[commands.CancelRequestCommand]
	AssignJob           Handler[commands.AssignJobCommand, kernel.UUID]
	RateJob             Action[commands.RateJobCommand]
	RegisterTransporter Handler[commands.RegisterTransporterCommand, kernel.UUID]
	VerifyTransporter   Action[commands.VerifyTransporterCommand]
	AddVehicle          Handler[commands.AddVehicleCommand, kernel.UUID]
	AddDriver           Handler[commands.AddDriverCommand, kernel.UUID]
	RemoveVehicle       Action[commands.RemoveVehicleCommand]
	RemoveDriver        Action[commands.RemoveDriverCommand]

	GetRequest              Handler[queries.GetRequestQuery, queries.RequestView]
	GetNearbyRequests       Handler[queries.GetNearbyRequestsQuery, queries.GetNearbyRequestsQueryResponse]
	GetCandidateTransporter Handler[queries.GetCandidateTransportersQuery, []queries.CandidateView]
	GetEarningsReport       Handler[queries.GetEarningsReportQuery, services.EarningsReport]
	GetLastPosition         Handler[queries.GetLastPositionQuery, ports.Position]
}

// ServerConfig holds the defaults applied to incomplete request bodies.
type ServerConfig struct {
	// DefaultCurrency prices bids that name no currency.
	DefaultCurrency string
	// DefaultServiceRadiusKm applies to transporters registering without a radius.
	DefaultServiceRadiusKm float64
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	config   ServerConfig
}

func NewServer(handlers Handlers, config ServerConfig) *Server {
	return &Server{
		handlers: handlers,
		config:   config,
	}
}

// Register mounts every route on g. Callers are read from the token verified by
// JWTMiddleware, which g must use.
func (s *Server) Register(g *echo.Group) {
	g.POST("/requests", s.CreateRequest)
	g.GET("/requests/:id", s.GetRequest)
	g.POST("/requests/:id/bids", s.SubmitBid)
	g.DELETE("/requests/:id/bids/:bidId", s.WithdrawBid)
	g.POST("/bids/:bidId/accept", s.AcceptBid)
	g.POST("/requests/:id/start", s.StartTransit)
	g.POST("/requests/:id/location", s.UpdateLocation)
	g.POST("/requests/:id/complete", s.CompleteDelivery)
	g.POST("/requests/:id/cancel", s.CancelRequest)
	g.POST("/requests/:id/assignment", s.AssignJob)
	g.POST("/requests/:id/rating", s.RateJob)
	g.GET("/requests/:id/position", s.GetLastPosition)
	g.GET("/requests/:id/candidates", s.GetCandidateTransporters)

	g.POST("/transporters", s.RegisterTransporter)
	g.POST("/transporters/:id/verify", s.VerifyTransporter)
	g.POST("/transporters/me/vehicles", s.AddVehicle)
	g.DELETE("/transporters/me/vehicles/:vehicleId", s.RemoveVehicle)
	g.POST("/transporters/me/drivers", s.AddDriver)
	g.DELETE("/transporters/me/drivers/:driverId", s.RemoveDriver)
	g.GET("/transporters/me/nearby-requests", s.GetNearbyRequests)
	g.GET("/transporters/me/earnings", s.GetEarningsReport)
}

func bindBody(c echo.Context, dst any) error {
	if err := decodeBody(c, dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func decodeBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	return nil
}

// mergeViolations reports tag violations of the body together with those of the
// command built from it. A command error that is not a validation error wins.
func mergeViolations(shapeErr, commandErr error) error {
	if commandErr != nil && !errors.Is(commandErr, errs.ErrValidation) {
		return commandErr
	}
	return errs.NewValidationError(shapeErr, commandErr)
}

func pathID(c echo.Context, name, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause(param, err))
	}
	return id, nil
}

func parseID(value, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func created(c echo.Context, id kernel.UUID) error {
	return c.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// CreateRequest handles POST /requests.
func (s *Server) CreateRequest(c echo.Context) error {
	var body CreateRequestBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	shapeErr := c.Validate(&body)

	cmd, err := commands.NewCreateRequestCommand(
		callerOf(c).UserID,
		body.Pickup.toInput(),
		body.Drop.toInput(),
		body.ScheduledAt,
		body.GoodsType,
		body.WeightKg,
		body.PaymentMethod,
	)
	if err := mergeViolations(shapeErr, err); err != nil {
		return err
	}

	id, err := s.handlers.CreateRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, id)
}

// GetRequest handles GET /requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetRequestQuery(callerOf(c).UserID, requestID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRequestResponse(view))
}

// SubmitBid handles POST /requests/:id/bids.
func (s *Server) SubmitBid(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	var body SubmitBidBody
	if err = bindBody(c, &body); err != nil {
		return err
	}
	currency := body.Currency
	if currency == "" {
		currency = s.config.DefaultCurrency
	}

	cmd, err := commands.NewSubmitBidCommand(callerOf(c).UserID, requestID, body.Amount, currency, body.Note)
	if err != nil {
		return err
	}

	bidID, err := s.handlers.SubmitBid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, bidID)
}

// WithdrawBid handles DELETE /requests/:id/bids/:bidId.
func (s *Server) WithdrawBid(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	bidID, err := pathID(c, "bidId", "bidId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewWithdrawBidCommand(callerOf(c).UserID, requestID, bidID)
	if err != nil {
		return err
	}
	if err = s.handlers.WithdrawBid.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AcceptBid handles POST /bids/:bidId/accept.
func (s *Server) AcceptBid(c echo.Context) error {
	bidID, err := pathID(c, "bidId", "bidId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptBidCommand(callerOf(c).UserID, bidID)
	if err != nil {
		return err
	}
	if err = s.handlers.AcceptBid.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StartTransit handles POST /requests/:id/start.
func (s *Server) StartTransit(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartTransitCommand(callerOf(c).UserID, requestID)
	if err != nil {
		return err
	}
	if err = s.handlers.StartTransit.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateLocation handles POST /requests/:id/location. The ping is accepted once it is
// authorized; delivery happens in the background.
func (s *Server) UpdateLocation(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	var body LocationPingBody
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateLocationCommand(callerOf(c).UserID, requestID, *body.Latitude, *body.Longitude)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// CompleteDelivery handles POST /requests/:id/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	var body CompleteDeliveryBody
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteDeliveryCommand(callerOf(c).UserID, requestID, body.CashReceived)
	if err != nil {
		return err
	}
	if err = s.handlers.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /requests/:id/cancel.
func (s *Server) CancelRequest(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelRequestCommand(callerOf(c).UserID, requestID)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelRequest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignJob handles POST /requests/:id/assignment.
func (s *Server) AssignJob(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	var body AssignJobBody
	if err = bindBody(c, &body); err != nil {
		return err
	}
	vehicleID, vehicleErr := parseID(body.VehicleID, "vehicleId")
	driverID, driverErr := parseID(body.DriverID, "driverId")
	if err = errs.NewValidationError(vehicleErr, driverErr); err != nil {
		return err
	}

	cmd, err := commands.NewAssignJobCommand(callerOf(c).UserID, requestID, vehicleID, driverID)
	if err != nil {
		return err
	}
	assignmentID, err := s.handlers.AssignJob.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, assignmentID)
}

// RateJob handles POST /requests/:id/rating.
func (s *Server) RateJob(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	var body RateJobBody
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewRateJobCommand(callerOf(c).UserID, requestID, body.Score)
	if err != nil {
		return err
	}
	if err = s.handlers.RateJob.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLastPosition handles GET /requests/:id/position.
func (s *Server) GetLastPosition(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetLastPositionQuery(callerOf(c).UserID, requestID)
	if err != nil {
		return err
	}

	position, err := s.handlers.GetLastPosition.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPositionResponse(position))
}

// GetCandidateTransporters handles GET /requests/:id/candidates.
func (s *Server) GetCandidateTransporters(c echo.Context) error {
	requestID, err := pathID(c, "id", "requestId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCandidateTransportersQuery(callerOf(c).UserID, requestID)
	if err != nil {
		return err
	}

	candidates, err := s.handlers.GetCandidateTransporter.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCandidateResponses(candidates))
}

// RegisterTransporter handles POST /transporters.
func (s *Server) RegisterTransporter(c echo.Context) error {
	var body RegisterTransporterBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	shapeErr := c.Validate(&body)
	if body.ServiceRadiusKm == 0 {
		body.ServiceRadiusKm = s.config.DefaultServiceRadiusKm
	}

	cmd, err := commands.NewRegisterTransporterCommand(
		callerOf(c).UserID,
		body.Type,
		transporter.Contact{Name: body.ContactName, Phone: body.ContactPhone, Email: body.ContactEmail},
		body.TradeLicense,
		body.Home.toInput(),
		body.ServiceRadiusKm,
	)
	if err := mergeViolations(shapeErr, err); err != nil {
		return err
	}

	profileID, err := s.handlers.RegisterTransporter.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, profileID)
}

// VerifyTransporter handles POST /transporters/:id/verify.
func (s *Server) VerifyTransporter(c echo.Context) error {
	profileID, err := pathID(c, "id", "profileId")
	if err != nil {
		return err
	}
	caller := callerOf(c)

	cmd, err := commands.NewVerifyTransporterCommand(caller.UserID, caller.Role, profileID)
	if err != nil {
		return err
	}
	if err = s.handlers.VerifyTransporter.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddVehicle handles POST /transporters/me/vehicles.
func (s *Server) AddVehicle(c echo.Context) error {
	var body AddVehicleBody
	if err := bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAddVehicleCommand(
		callerOf(c).UserID,
		body.RegistrationNumber,
		body.VehicleType,
		body.CapacityKg,
		body.FitnessExpiry,
	)
	if err != nil {
		return err
	}

	vehicleID, err := s.handlers.AddVehicle.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, vehicleID)
}

// RemoveVehicle handles DELETE /transporters/me/vehicles/:vehicleId.
func (s *Server) RemoveVehicle(c echo.Context) error {
	vehicleID, err := pathID(c, "vehicleId", "vehicleId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveVehicleCommand(callerOf(c).UserID, vehicleID)
	if err != nil {
		return err
	}
	if err = s.handlers.RemoveVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddDriver handles POST /transporters/me/drivers.
func (s *Server) AddDriver(c echo.Context) error {
	var body AddDriverBody
	if err := bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAddDriverCommand(
		callerOf(c).UserID,
		body.Name,
		body.Phone,
		body.LicenceNumber,
		body.LicenceExpiry,
	)
	if err != nil {
		return err
	}

	driverID, err := s.handlers.AddDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, driverID)
}

// RemoveDriver handles DELETE /transporters/me/drivers/:driverId.
func (s *Server) RemoveDriver(c echo.Context) error {
	driverID, err := pathID(c, "driverId", "driverId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveDriverCommand(callerOf(c).UserID, driverID)
	if err != nil {
		return err
	}
	if err = s.handlers.RemoveDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetNearbyRequests handles GET /transporters/me/nearby-requests?radiusKm=.
func (s *Server) GetNearbyRequests(c echo.Context) error {
	var radiusKm *float64
	if raw := strings.TrimSpace(c.QueryParam("radiusKm")); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause("radiusKm", err))
		}
		radiusKm = &r
	}

	query, err := queries.NewGetNearbyRequestsQuery(callerOf(c).UserID, radiusKm)
	if err != nil {
		return err
	}
	resp, err := s.handlers.GetNearbyRequests.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNearbyResponse(resp))
}

// GetEarningsReport handles GET /transporters/me/earnings.
func (s *Server) GetEarningsReport(c echo.Context) error {
	query, err := queries.NewGetEarningsReportQuery(callerOf(c).UserID)
	if err != nil {
		return err
	}

	report, err := s.handlers.GetEarningsReport.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEarningsResponse(report))
}
