package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core/inventory"
)

type inventoryApi struct {
	svc inventory.Service
}

func registerInventoryAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc inventory.Service) {
	api := inventoryApi{svc: svc}

	ag := g.Group("/artikel", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create, adminMiddleware())
	ag.DELETE("", api.destroyMultiple, adminMiddleware())

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
}

func (api *inventoryApi) create(ctx echo.Context) error {
	var data inventory.NewArticle
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewArticle")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	art, err := api.svc.CreateArticle(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, art)
}

func (api *inventoryApi) query(ctx echo.Context) error {
	filter := new(inventory.ArticleQueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []inventory.Article{})
	}
	filter.Clean()

	articles, err := api.svc.FilterArticles(*filter)
	if err != nil {
		return errors.Wrap(err, "querying articles")
	}
	if articles == nil {
		articles = []inventory.Article{}
	}
	return ctx.JSON(http.StatusOK, articles)
}

func (api *inventoryApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	art, err := api.svc.GetArticle(id)
	if err != nil {
		if errors.Cause(err) == inventory.ErrArticleNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding article by ID")
	}
	return ctx.JSON(http.StatusOK, art)
}

func (api *inventoryApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	orig, err := api.svc.GetArticle(id)
	if err != nil {
		if errors.Cause(err) == inventory.ErrArticleNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding article by ID")
	}

	var data inventory.UpdateArticle
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateArticle")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	art, err := api.svc.UpdateArticle(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, art)
}

func (api *inventoryApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := api.svc.GetArticle(id); err != nil {
		if errors.Cause(err) == inventory.ErrArticleNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding article by ID")
	}
	if err := api.svc.DeleteArticles(id); err != nil {
		return errors.Wrap(err, "deleting article")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *inventoryApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.DeleteArticles(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting articles")
	}
	return ctx.NoContent(http.StatusNoContent)
}
