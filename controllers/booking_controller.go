package controllers

import (
	"hotelhub/constants"
	"hotelhub/dto"
	"hotelhub/response"
	"hotelhub/services"
	"hotelhub/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) BookingController {
	return BookingController{Bookings: bookings}
}

// bookingInput parses dates and fills guest defaults. It writes the 400
// itself and returns false on bad input.
func bookingInput(c *gin.Context, req dto.CreateBookingRequest) (services.CreateBookingInput, bool) {
	checkIn, err := validator.ParseDate("checkIn", req.CheckIn)
	if err != nil {
		response.FromError(c, err)
		return services.CreateBookingInput{}, false
	}
	checkOut, err := validator.ParseDate("checkOut", req.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return services.CreateBookingInput{}, false
	}

	in := services.CreateBookingInput{
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          constants.DefaultAdults,
		CouponCodes:     req.CouponCodes,
		Points:          req.Points,
		SpecialRequests: req.SpecialRequests,
	}
	if req.Guests != nil {
		if req.Guests.Adults > 0 {
			in.Adults = req.Guests.Adults
		}
		in.Children = req.Guests.Children
	}
	return in, true
}

// Create godoc
// @Summary      Book a room
// @Description  Prices are computed on the server from the room price, coupons and points.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateBookingRequest  true  "booking"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /bookings [post]
func (b BookingController) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := bookingInput(c, req)
	if !ok {
		return
	}
	booking, err := b.Bookings.Create(c.Request.Context(), caller, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, booking)
}

func (b BookingController) Quote(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := bookingInput(c, req)
	if !ok {
		return
	}
	quote, err := b.Bookings.Quote(c.Request.Context(), caller, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, quote)
}

func (b BookingController) ListMine(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)
	bookings, total, err := b.Bookings.ListMine(c.Request.Context(), caller, page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	paginated(c, bookings, page, total)
}

func (b BookingController) Detail(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := b.Bookings.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

func (b BookingController) Cancel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := b.Bookings.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) PaymentController {
	return PaymentController{Payments: payments}
}

func (p PaymentController) Confirm(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.ConfirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := p.Payments.Confirm(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

func (p PaymentController) Cancel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.CancelPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := p.Payments.Cancel(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}
