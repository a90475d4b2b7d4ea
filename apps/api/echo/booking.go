package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/booking"
)

type bookingApi struct {
	svc booking.Service
}

func registerBookingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc booking.Service) {
	api := bookingApi{svc: svc}

	bg := g.Group("/buchungen", jwt)
	bg.GET("", api.query)
	bg.POST("", api.create)
	bg.DELETE("", api.destroyMultiple, adminMiddleware())

	dg := bg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.PUT("/approve", api.approve, adminMiddleware())
	dg.PUT("/reject", api.reject, adminMiddleware())
	dg.PUT("/cancel", api.cancel)
}

func (api *bookingApi) create(ctx echo.Context) error {
	var data booking.NewBooking
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBooking")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	b, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *bookingApi) query(ctx echo.Context) error {
	filter := new(booking.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []booking.Booking{})
	}
	filter.Clean()

	bookings, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying bookings")
	}
	if bookings == nil {
		bookings = []booking.Booking{}
	}
	return ctx.JSON(http.StatusOK, bookings)
}

func (api *bookingApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	b, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == booking.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding booking by ID")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *bookingApi) approve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	b, err := api.svc.Approve(id)
	if err != nil {
		switch errors.Cause(err) {
		case booking.ErrNotFound:
			return errHttpNotFound
		case booking.ErrNotPending:
			return core.NewValidationError(booking.ErrNotPending)
		}
		return errors.Wrap(err, "approving booking")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *bookingApi) reject(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	var data booking.RejectBooking
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RejectBooking")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	b, err := api.svc.Reject(id, data)
	if err != nil {
		switch errors.Cause(err) {
		case booking.ErrNotFound:
			return errHttpNotFound
		case booking.ErrNotPending:
			return core.NewValidationError(booking.ErrNotPending)
		}
		return errors.Wrap(err, "rejecting booking")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *bookingApi) cancel(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	var data CancelBookingRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CancelBookingRequest")
	}

	b, err := api.svc.Cancel(id, data.Notes)
	if err != nil {
		if errors.Cause(err) == booking.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "cancelling booking")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *bookingApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		if errors.Cause(err) == booking.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding booking by ID")
	}
	if err := api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting booking")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *bookingApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting bookings")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type CancelBookingRequest struct {
	Notes string `json:"notes"`
}
