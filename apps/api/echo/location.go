package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core/inventory"
	"github.com/lernfeld/kursadmin/core/location"
)

type locationApi struct {
	svc    location.Service
	invSvc inventory.Service
}

func registerLocationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc location.Service, invSvc inventory.Service) {
	api := locationApi{svc: svc, invSvc: invSvc}

	lg := g.Group("/standorte", jwt)
	lg.GET("", api.query)
	lg.POST("", api.create, adminMiddleware())
	lg.DELETE("", api.destroyMultiple, adminMiddleware())

	dg := lg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())

	// per-location inventory
	ig := dg.Group("/inventar")
	ig.GET("", api.queryEntries)
	ig.POST("", api.createEntry, adminMiddleware())
	ig.PUT("/:entryID", api.updateEntry, adminMiddleware())
	ig.DELETE("/:entryID", api.destroyEntry, adminMiddleware())

	// rental conditions are created with their location and addressed by ID afterwards
	cg := g.Group("/konditionen", jwt)
	cg.GET("/:id", api.retrieveConditions)
	cg.PUT("/:id", api.updateConditions, adminMiddleware())
}

func (api *locationApi) create(ctx echo.Context) error {
	var data location.NewLocation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLocation")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	loc, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, loc)
}

func (api *locationApi) query(ctx echo.Context) error {
	filter := new(location.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []location.Location{})
	}
	filter.Clean()

	locs, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying locations")
	}
	if locs == nil {
		locs = []location.Location{}
	}
	return ctx.JSON(http.StatusOK, locs)
}

func (api *locationApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	loc, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == location.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding location by ID")
	}
	return ctx.JSON(http.StatusOK, loc)
}

func (api *locationApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	orig, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == location.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding location by ID")
	}

	var data location.UpdateLocation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLocation")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	loc, err := api.svc.Update(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, loc)
}

func (api *locationApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		if errors.Cause(err) == location.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding location by ID")
	}
	if err := api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting location")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *locationApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting locations")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Inventory entries

func (api *locationApi) queryEntries(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		if errors.Cause(err) == location.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding location by ID")
	}

	entries, err := api.invSvc.QueryEntries(id)
	if err != nil {
		return errors.Wrap(err, "querying inventory entries")
	}
	if entries == nil {
		entries = []inventory.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *locationApi) createEntry(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		if errors.Cause(err) == location.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding location by ID")
	}

	var data inventory.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}

	e, err := api.invSvc.CreateEntry(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *locationApi) updateEntry(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	entryID, err := intParam(ctx, "entryID")
	if err != nil {
		return err
	}

	var data inventory.UpdateEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEntry")
	}

	e, err := api.invSvc.UpdateEntry(id, entryID, data)
	if err != nil {
		if errors.Cause(err) == inventory.ErrEntryNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *locationApi) destroyEntry(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	entryID, err := intParam(ctx, "entryID")
	if err != nil {
		return err
	}

	if err := api.invSvc.DeleteEntry(id, entryID); err != nil {
		if errors.Cause(err) == inventory.ErrEntryNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting inventory entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Rental conditions

func (api *locationApi) retrieveConditions(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	cond, err := api.svc.GetConditions(id)
	if err != nil {
		if errors.Cause(err) == location.ErrConditionsNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding conditions by ID")
	}
	return ctx.JSON(http.StatusOK, cond)
}

func (api *locationApi) updateConditions(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	orig, err := api.svc.GetConditions(id)
	if err != nil {
		if errors.Cause(err) == location.ErrConditionsNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding conditions by ID")
	}

	var data location.UpdateConditions
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateConditions")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	cond, err := api.svc.UpdateConditions(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cond)
}
