package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core/city"
)

type cityApi struct {
	svc city.Service
}

func registerCityAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc city.Service) {
	api := cityApi{svc: svc}

	cg := g.Group("/staedte", jwt)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
}

func (api *cityApi) query(ctx echo.Context) error {
	cities, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying cities")
	}
	if cities == nil {
		cities = []city.City{}
	}
	return ctx.JSON(http.StatusOK, cities)
}

func (api *cityApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	c, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == city.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding city by ID")
	}
	return ctx.JSON(http.StatusOK, c)
}
