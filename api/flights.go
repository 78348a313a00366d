package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/Domenick1991/skyline/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, middleware ...gin.HandlerFunc) {
	router.GET("/flights", append(middleware, h.list)...)
	router.GET("/flights/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	query := flights.SearchQuery{
		Origin:      strings.TrimSpace(c.Query("origin")),
		Destination: strings.TrimSpace(c.Query("destination")),
		Date:        strings.TrimSpace(c.Query("date")),
	}

	list, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flightsResponse{
		Meta: searchMeta{
			Origin:      query.Origin,
			Destination: query.Destination,
			Date:        query.Date,
		},
		Flights: toFlightResponses(list),
	})
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, domain.NewError(domain.ErrInvalidRequest, "Invalid flight id."))
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}
