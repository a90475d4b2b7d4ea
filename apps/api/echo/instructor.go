package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/instructor"
)

type instructorApi struct {
	svc instructor.Service
}

func registerInstructorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc instructor.Service) {
	api := instructorApi{svc: svc}

	ig := g.Group("/dozenten", jwt)
	ig.GET("", api.query)
	ig.POST("", api.create, adminMiddleware())
	ig.DELETE("", api.destroyMultiple, adminMiddleware())

	dg := ig.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.GET("/dokumente", api.queryDocuments)
	dg.POST("/dokumente", api.uploadDocuments, adminMiddleware())

	// documents addressed on their own once uploaded
	og := g.Group("/dozent-dokumente", jwt)
	og.GET("/:id", api.downloadDocument)
	og.DELETE("/:id", api.destroyDocument, adminMiddleware())
}

func (api *instructorApi) create(ctx echo.Context) error {
	var data instructor.NewInstructor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInstructor")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ins, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ins)
}

func (api *instructorApi) query(ctx echo.Context) error {
	filter := new(instructor.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []instructor.Instructor{})
	}
	filter.Clean()

	instructors, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	if instructors == nil {
		instructors = []instructor.Instructor{}
	}
	return ctx.JSON(http.StatusOK, instructors)
}

func (api *instructorApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ins, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == instructor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding instructor by ID")
	}
	return ctx.JSON(http.StatusOK, ins)
}

func (api *instructorApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	orig, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == instructor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding instructor by ID")
	}

	var data instructor.UpdateInstructor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateInstructor")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	ins, err := api.svc.Update(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ins)
}

func (api *instructorApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		if errors.Cause(err) == instructor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding instructor by ID")
	}
	if err := api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting instructor")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *instructorApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting instructors")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Documents

func (api *instructorApi) queryDocuments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	docs, err := api.svc.QueryDocuments(id)
	if err != nil {
		if errors.Cause(err) == instructor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying instructor documents")
	}
	if docs == nil {
		docs = []instructor.Document{}
	}
	return ctx.JSON(http.StatusOK, docs)
}

// uploadDocuments accepts a multipart form with one or more "files"
// parts. Files are stored one by one; a bad file is reported without
// aborting the rest of the batch.
func (api *instructorApi) uploadDocuments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return errors.Wrap(err, "parsing multipart form")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "files", Error: "no files provided"})
	}

	res := UploadDocumentsResponse{
		Uploaded: make([]instructor.Document, 0, len(files)),
		Failed:   make(map[string]string),
	}
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			res.Failed[fh.Filename] = err.Error()
			continue
		}
		doc, err := api.svc.UploadDocument(id, fh.Filename, fh.Header.Get("Content-Type"), src)
		_ = src.Close()
		if err != nil {
			if errors.Cause(err) == instructor.ErrNotFound {
				return errHttpNotFound
			}
			res.Failed[fh.Filename] = err.Error()
			continue
		}
		res.Uploaded = append(res.Uploaded, doc)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *instructorApi) downloadDocument(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	doc, rc, err := api.svc.OpenDocument(id)
	if err != nil {
		if errors.Cause(err) == instructor.ErrDocumentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "opening instructor document")
	}
	defer rc.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return ctx.Stream(http.StatusOK, doc.ContentType, rc)
}

func (api *instructorApi) destroyDocument(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.DeleteDocument(id); err != nil {
		if errors.Cause(err) == instructor.ErrDocumentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting instructor document")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type UploadDocumentsResponse struct {
	Uploaded []instructor.Document `json:"uploaded"`
	Failed   map[string]string     `json:"failed,omitempty"`
}
