package webapi

import (
	"bytes"
	"html"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/apex/log"
	theme "github.com/goliatone/go-theme"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/goliatone/go-crudform/pkg/crud"
	"github.com/goliatone/go-crudform/pkg/renderers/vanilla"
)

// ResourceProvider hands the controller its mounted resources. The root
// Admin facade implements it.
type ResourceProvider interface {
	Resource(table string) (*crud.Resource, bool)
	Resources() []*crud.Resource
	BasePath() string
}

// AdminController serves the generated admin pages: a tabbed CRUD page per
// entity, the per-row edit form, and a JSON options feed for relation
// selects.
type AdminController struct {
	provider ResourceProvider
	theme    *theme.RendererConfig
}

func NewAdminController(provider ResourceProvider, themeConfig *theme.RendererConfig) *AdminController {
	return &AdminController{provider: provider, theme: themeConfig}
}

// RegisterRoutes mounts the admin surface on g. The group is expected to be
// rooted at the provider's base path.
func (c *AdminController) RegisterRoutes(g *echo.Group) {
	g.GET("", c.IndexController)
	g.GET("/assets/:name", c.AssetController)
	g.GET("/:table", c.TabsController)
	g.GET("/:table/new", c.NewFormController)
	g.GET("/:table/options", c.OptionsController)
	g.POST("/:table", c.CreateController)
	g.POST("/:table/delete", c.DeleteSelectedController)
	g.GET("/:table/:id/edit", c.EditFormController)
	g.POST("/:table/:id", c.UpdateController)
	g.POST("/:table/:id/delete", c.DeleteController)
}

// IndexController lists the mounted entities.
func (c *AdminController) IndexController(ctx echo.Context) error {
	var buf bytes.Buffer
	buf.WriteString("<nav class=\"crudform-index\"><ul>\n")
	for _, res := range c.provider.Resources() {
		buf.WriteString("<li><a href=\"" + html.EscapeString(res.Path()) + "\">")
		buf.WriteString(html.EscapeString(res.Entity().PrettyName()))
		buf.WriteString("</a></li>\n")
	}
	buf.WriteString("</ul></nav>\n")

	return c.page(ctx, "Admin", buf.Bytes())
}

// AssetController serves the packaged renderer assets.
func (c *AdminController) AssetController(ctx echo.Context) error {
	name := path.Base(ctx.Param("name"))

	data, err := fs.ReadFile(vanilla.AssetsFS(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return ctx.Blob(http.StatusOK, contentType, data)
}

// TabsController renders the create/browse/delete tab page for one entity.
func (c *AdminController) TabsController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}

	body, err := res.RenderTabs(ctx.Request().Context(), c.renderRequest(ctx, nil, nil))
	if err != nil {
		log.Errorf("render %s tabs: %v", res.Table(), err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.page(ctx, res.Entity().PrettyName(), body)
}

// NewFormController renders a standalone create form.
func (c *AdminController) NewFormController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}

	body, err := res.RenderCreate(ctx.Request().Context(), c.renderRequest(ctx, nil, nil))
	if err != nil {
		log.Errorf("render %s create form: %v", res.Table(), err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.page(ctx, "Create "+res.Entity().PrettyName(), body)
}

// CreateController handles a create submission. Validation failures
// re-render the form with the submitted values and field errors.
func (c *AdminController) CreateController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}
	if err := checkCSRF(ctx); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	form, err := formValues(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	fieldErrs, err := res.Create(form, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	if len(fieldErrs) != 0 {
		body, rerr := res.RenderCreate(ctx.Request().Context(), c.renderRequest(ctx, submittedValues(form), fieldErrs))
		if rerr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.pageWithStatus(ctx, http.StatusUnprocessableEntity, "Create "+res.Entity().PrettyName(), body)
	}

	return ctx.Redirect(http.StatusSeeOther, res.Path())
}

// EditFormController renders the update form prefilled with the row.
func (c *AdminController) EditFormController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}

	body, err := res.RenderUpdate(ctx.Request().Context(), ctx.Param("id"), c.renderRequest(ctx, nil, nil))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.page(ctx, "Update "+res.Entity().PrettyName(), body)
}

// UpdateController handles an update submission.
func (c *AdminController) UpdateController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}
	if err := checkCSRF(ctx); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	form, err := formValues(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	key := ctx.Param("id")
	fieldErrs, err := res.Update(key, form, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	if len(fieldErrs) != 0 {
		body, rerr := res.RenderUpdate(ctx.Request().Context(), key, c.renderRequest(ctx, submittedValues(form), fieldErrs))
		if rerr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.pageWithStatus(ctx, http.StatusUnprocessableEntity, "Update "+res.Entity().PrettyName(), body)
	}

	return ctx.Redirect(http.StatusSeeOther, res.Path())
}

// DeleteController removes the addressed row.
func (c *AdminController) DeleteController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}
	if err := checkCSRF(ctx); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	if err := res.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return ctx.Redirect(http.StatusSeeOther, res.Path())
}

// DeleteSelectedController handles the row-select confirmation form.
func (c *AdminController) DeleteSelectedController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}
	if err := checkCSRF(ctx); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	form, err := formValues(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	if err := res.DeleteSubmitted(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.Redirect(http.StatusSeeOther, res.Path())
}

type optionsResponse struct {
	Data []optionItem `json:"data"`
}

type optionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsController feeds relation selects: the entity's rows as
// value/label pairs, filterable with ?q= and capped with ?limit=.
func (c *AdminController) OptionsController(ctx echo.Context) error {
	res, err := c.resource(ctx)
	if err != nil {
		return err
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, perr := strconv.Atoi(raw); perr == nil && n > 0 {
			limit = n
		}
	}

	options, err := res.Options(ctx.QueryParam("q"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	resp := optionsResponse{Data: make([]optionItem, 0, len(options))}
	for _, opt := range options {
		resp.Data = append(resp.Data, optionItem{Value: opt.Value, Label: opt.Label})
	}

	return ctx.JSON(http.StatusOK, &resp)
}

func (c *AdminController) resource(ctx echo.Context) (*crud.Resource, error) {
	res, ok := c.provider.Resource(ctx.Param("table"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown resource")
	}
	return res, nil
}

func (c *AdminController) renderRequest(ctx echo.Context, values map[string]any, errs map[string][]string) crud.RenderRequest {
	return crud.RenderRequest{
		Values: values,
		Errors: errs,
		Hidden: map[string]string{csrfField: ensureCSRF(ctx)},
		Theme:  c.theme,
	}
}

func (c *AdminController) page(ctx echo.Context, title string, body []byte) error {
	return c.pageWithStatus(ctx, http.StatusOK, title, body)
}

func (c *AdminController) pageWithStatus(ctx echo.Context, status int, title string, body []byte) error {
	stylesheet := c.provider.BasePath() + "/assets/" + vanilla.StylesheetName
	return ctx.HTMLBlob(status, pageShell(title, stylesheet, body))
}
