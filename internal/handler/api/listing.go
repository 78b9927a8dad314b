package api

import (
	"net/http"
	"time"

	reqdto "rental-engine/internal/handler/dto/request"
	resdto "rental-engine/internal/handler/dto/response"
	"rental-engine/internal/handler/httperr"
	"rental-engine/internal/handler/middleware"
	"rental-engine/internal/usecase/commands"
	"rental-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	cmds commands.BookingCommands
	q    queries.AvailabilityQueries
}

func NewListingHandler(cmds commands.BookingCommands, q queries.AvailabilityQueries) *ListingHandler {
	return &ListingHandler{cmds: cmds, q: q}
}

// @Summary Upsert listing snapshot
// @Description Stores the booking-relevant part of a catalogue listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpsertListingRequest true "Listing"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/listings/{id} [put]
func (h *ListingHandler) Upsert(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return
	}
	var req reqdto.UpsertListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	l, err := h.cmds.UpsertListing(c.Request.Context(), req.ToParams(id), actor)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListing(l))
}

// @Summary Availability calendar
// @Description One entry per UTC day in [from, to)
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Day after the last one (YYYY-MM-DD)"
// @Success 200 {object} queries.CalendarView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/listings/{id}/availability [get]
func (h *ListingHandler) Calendar(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var q reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.q.Calendar(c.Request.Context(), id, q.From, q.To)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Is a range free
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param start_at query string true "RFC3339 start"
// @Param end_at query string true "RFC3339 end"
// @Success 200 {object} resdto.RangeFreeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/listings/{id}/availability/free [get]
func (h *ListingHandler) IsRangeFree(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var q reqdto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	free, err := h.q.IsRangeFree(c.Request.Context(), id, q.StartAt, q.EndAt)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RangeFreeResponse{
		ListingID: id,
		StartAt:   q.StartAt.UTC(),
		EndAt:     q.EndAt.UTC(),
		Free:      free,
	})
}

// @Summary Set day availability
// @Description Blocks or reopens one UTC day, optionally with a price override
// @Tags listings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param request body reqdto.SetAvailabilityRequest true "Availability"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/listings/{id}/availability/{date} [put]
func (h *ListingHandler) SetDay(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	date, err := time.Parse(time.DateOnly, c.Param("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return
	}
	var req reqdto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetAvailability(c.Request.Context(), req.ToCommand(id, date), actor); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func listingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return uuid.Nil, false
	}
	return id, true
}
