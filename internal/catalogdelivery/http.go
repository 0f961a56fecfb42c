// Package catalogdelivery manages delivery layer of the book catalog.
//
// A single generic Handler serves books, authors and genres. Each entity is
// described by a Resource: its names, its service and its not-found error.
package catalogdelivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service provides service layer interface of one catalog entity.
type Service[T, P any] interface {
	Get(ctx context.Context, id int32) (T, error)
	List(ctx context.Context, pageSize, pageID int32) ([]T, error)
	Page(ctx context.Context, page string) (domain.Page[T], error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, arg P) (T, error)
	Update(ctx context.Context, id int32, arg P) (T, error)
	Delete(ctx context.Context, id int32) error
}

// Resource describes a catalog entity exposed over HTTP.
type Resource[T, P any] struct {
	Name     string // singular, used for the detail page and response keys
	Plural   string // used for collection paths
	Service  Service[T, P]
	NotFound error
}

// Allowed methods of the collection and item API endpoints.
var (
	collectionMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPost}
	itemMethods       = []string{
		http.MethodGet, http.MethodHead, http.MethodOptions,
		http.MethodPut, http.MethodPatch, http.MethodDelete,
	}
)

// Handler facilitates catalog delivery layer logic.
type Handler[T, P any] struct {
	res Resource[T, P]
}

// NewHandler returns catalog handler of the given resource.
func NewHandler[T, P any](res Resource[T, P]) *Handler[T, P] {
	return &Handler[T, P]{res: res}
}

// ListPath is the public list page of the resource.
func (h *Handler[T, P]) ListPath() string {
	return "/" + h.res.Plural
}

// RegisterAPI adds the JSON API routes of the resource to api.
func (h *Handler[T, P]) RegisterAPI(api gin.IRoutes) {
	collection := "/" + h.res.Plural
	item := collection + "/:id"

	api.GET(collection, h.List)
	api.HEAD(collection, h.List)
	api.OPTIONS(collection, h.Options(collectionMethods))
	api.POST(collection, h.Create)

	api.GET(item, h.Get)
	api.HEAD(item, h.Get)
	api.OPTIONS(item, h.Options(itemMethods))
	api.PUT(item, h.Update)
	api.PATCH(item, h.Update)
	api.DELETE(item, h.Delete)
}

// RegisterPages adds the public list and detail pages of the resource to pages.
func (h *Handler[T, P]) RegisterPages(pages gin.IRoutes) {
	pages.GET(h.ListPath(), h.ListPage)
	pages.GET("/"+h.res.Name, h.DetailPage)
}

func (h *Handler[T, P]) writeError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	switch {
	case errors.Is(err, h.res.NotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrReferenced), errors.Is(err, domain.ErrGenreAlreadyExists):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.Is(err, domain.ErrAuthorNotFound),
		errors.Is(err, domain.ErrGenreNotFound),
		errors.Is(err, domain.ErrInvalidPrice):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		l.Error().Err(err).Str("resource", h.res.Name).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

func bindError(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list entities.
func (h *Handler[T, P]) List(gctx *gin.Context) {
	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	items, err := h.res.Service.List(gctx.Request.Context(), req.PageSize, req.PageID)
	if err != nil {
		h.writeError(gctx, err)
		return
	}

	if items == nil {
		items = []T{}
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{h.res.Plural: items}})
}

type itemRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get an entity.
func (h *Handler[T, P]) Get(gctx *gin.Context) {
	var req itemRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	item, err := h.res.Service.Get(gctx.Request.Context(), req.ID)
	if err != nil {
		h.writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{h.res.Name: item}})
}

// Options answers with the methods the endpoint supports.
func (h *Handler[T, P]) Options(methods []string) gin.HandlerFunc {
	allow := strings.Join(methods, ", ")

	return func(gctx *gin.Context) {
		gctx.Header("Allow", allow)
		gctx.JSON(http.StatusOK, web.Response{Data: gin.H{
			"name":    h.res.Name,
			"methods": methods,
		}})
	}
}

// Create handles http request to create an entity.
func (h *Handler[T, P]) Create(gctx *gin.Context) {
	var req P
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	item, err := h.res.Service.Create(gctx.Request.Context(), req)
	if err != nil {
		h.writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: gin.H{h.res.Name: item}})
}

// Update handles http request to replace an entity.
func (h *Handler[T, P]) Update(gctx *gin.Context) {
	var uri itemRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req P
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	item, err := h.res.Service.Update(gctx.Request.Context(), uri.ID, req)
	if err != nil {
		h.writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{h.res.Name: item}})
}

// Delete handles http request to delete an entity.
func (h *Handler[T, P]) Delete(gctx *gin.Context) {
	var req itemRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	if err := h.res.Service.Delete(gctx.Request.Context(), req.ID); err != nil {
		h.writeError(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}

// ListPage renders one page of the public listing.
func (h *Handler[T, P]) ListPage(gctx *gin.Context) {
	page, err := h.res.Service.Page(gctx.Request.Context(), gctx.Query("page"))
	if err != nil {
		h.writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: page})
}

// DetailPage renders a single entity, unknown ids go back to the listing.
func (h *Handler[T, P]) DetailPage(gctx *gin.Context) {
	id, err := strconv.ParseInt(gctx.Query("id"), 10, 32)
	if err != nil || id < 1 {
		gctx.Redirect(http.StatusFound, h.ListPath())
		return
	}

	item, err := h.res.Service.Get(gctx.Request.Context(), int32(id))
	if err != nil {
		if errors.Is(err, h.res.NotFound) {
			gctx.Redirect(http.StatusFound, h.ListPath())
			return
		}

		h.writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{h.res.Name: item}})
}

// Home renders the catalog counts.
func Home(counts func(ctx context.Context) (domain.CatalogCounts, error)) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		got, err := counts(gctx.Request.Context())
		if err != nil {
			zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		gctx.JSON(http.StatusOK, web.Response{Data: got})
	}
}
