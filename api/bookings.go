package api

import (
	"net/http"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/Domenick1991/skyline/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the booking routes. bookMiddleware runs only in front of
// POST /book.
func (h *BookingHandler) Register(router *gin.RouterGroup, bookMiddleware ...gin.HandlerFunc) {
	router.POST("/book", append(bookMiddleware, h.create)...)
	router.POST("/checkin", h.checkIn)
	router.GET("/mytrips", h.myTrips)
}

func (h *BookingHandler) create(c *gin.Context) {
	body := bindObject(c)
	flightID, unknownFlight := body.flightID("flightId")
	passenger := body.object("passenger")

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:      flightID,
		UnknownFlight: unknownFlight,
		Passenger: domain.Passenger{
			FirstName: passenger.givenText("firstName"),
			LastName:  passenger.givenText("lastName"),
			Email:     passenger.givenText("email"),
			Phone:     passenger.givenText("phone"),
			Passport:  passenger.givenText("passport"),
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookingResultResponse{
		Status:    "success",
		Message:   "Booking confirmed",
		Reference: created.Reference,
		Booking:   toBookingResponse(*created),
	})
}

func (h *BookingHandler) checkIn(c *gin.Context) {
	body := bindObject(c)

	updated, err := h.service.CheckIn(c.Request.Context(), booking.CheckInInput{
		Reference: body.text("reference"),
		LastName:  body.text("lastName"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookingResultResponse{
		Status:    "success",
		Message:   "Check-in completed",
		Reference: updated.Reference,
		Booking:   toBookingResponse(*updated),
	})
}

func (h *BookingHandler) myTrips(c *gin.Context) {
	trips, err := h.service.ListTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(trips))
	for _, b := range trips {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}
