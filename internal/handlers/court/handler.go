package court

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"quadra/infras/otel"
	"quadra/internal/domains/court/model"
	"quadra/internal/domains/court/model/dto"
	"quadra/internal/domains/court/service"
	scheduleService "quadra/internal/domains/schedule/service"
	"quadra/shared/constant"
	gDto "quadra/shared/dto"
	"quadra/shared/validator"
	"quadra/transport/http/response"
)

type Handler struct {
	service  service.Court
	schedule scheduleService.Schedule
	otel     otel.Otel
}

func New(service service.Court, schedule scheduleService.Schedule, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		schedule: schedule,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/courts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCourts)
		routerGroup.Get("/{id}", handler.GetCourtByID)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Post("/", handler.CreateCourt)
		routerGroup.Patch("/{id}", handler.UpdateCourt)
		routerGroup.Delete("/{id}", handler.DeleteCourt)
	})
}

// CreateCourt handles the creation of a new court.
// @Summary Create a new court
// @Description Create a new court with the provided details.
// @Tags Court
// @Accept json
// @Produce json
// @Param request body dto.CreateCourtRequest true "Create Court Request"
// @Success 201 {object} response.Message "Court created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [post]
// @Security BearerAuth
func (handler *Handler) CreateCourt(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCourt")
	defer scope.End()

	req := dto.CreateCourtRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create court")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Court created successfully")
}

// GetCourts retrieves all courts based on query parameters.
// @Summary Get all courts
// @Description Retrieve all courts with optional filtering and pagination.
// @Tags Court
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query string false "Filter by active flag"
// @Success 200 {object} dto.GetCourtsResponse "List of courts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [get]
func (handler *Handler) GetCourts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	active := r.URL.Query().Get(model.FieldActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active,
			Table:    model.TableName,
		})
	}

	courts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get courts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Courts retrieved successfully")

	response.WithJSON(w, http.StatusOK, courts)
}

// GetCourtByID retrieves a court by its ID.
// @Summary Get a court by ID
// @Description Retrieve a court by its unique identifier.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Data[dto.CourtResponse] "Court details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [get]
func (handler *Handler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	court, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court retrieved successfully")

	response.WithJSON(w, http.StatusOK, court)
}

// GetAvailability returns the slot grid of a court for one date.
// @Summary Get court availability
// @Description Retrieve the hourly slot grid of a court for a given date, with occupancy per slot.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Param date query string true "Date (dd/mm/yyyy)"
// @Success 200 {object} response.Data[dto.GetAvailabilityResponse] "Slot grid"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	availability, err := handler.schedule.GetAvailability(ctx, id, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// UpdateCourt updates an existing court by its ID.
// @Summary Update a court by ID
// @Description Update the details of an existing court.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Param request body dto.UpdateCourtRequest true "Update Court Request"
// @Success 200 {object} response.Message "Court updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCourtRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Court updated successfully")
}

// DeleteCourt deletes a court by its ID.
// @Summary Delete a court by ID
// @Description Delete a court using its unique identifier.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Message "Court deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Court deleted successfully")
}
