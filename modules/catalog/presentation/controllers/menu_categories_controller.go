package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menucategory"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
	"github.com/vendra-hq/vendra-sdk/pkg/httpapi"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
)

type MenuCategoriesController struct {
	service  *services.MenuCategoryService
	basePath string
}

func NewMenuCategoriesController(app application.Application) *MenuCategoriesController {
	return &MenuCategoriesController{
		service:  app.Service((*services.MenuCategoryService)(nil)).(*services.MenuCategoryService),
		basePath: "/menu-categories",
	}
}

func (c *MenuCategoriesController) Key() string {
	return c.basePath
}

func (c *MenuCategoriesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *MenuCategoriesController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateMenuCategoryDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mc, err := c.service.Create(r.Context(), dto.MenuID, dto.CategoryID, dto.Position)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Created(w, "Category attached to menu", toMenuCategoryResponse(mc))
}

func (c *MenuCategoriesController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mc, err := c.service.Get(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Menu category retrieved", toMenuCategoryResponse(mc))
}

func (c *MenuCategoriesController) List(w http.ResponseWriter, r *http.Request) {
	pg, err := httpapi.ParsePagination(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	params := menucategory.FindParams{}
	if params.MenuID, err = httpapi.ParseInt64Query(r, "menuId"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if params.CategoryID, err = httpapi.ParseInt64Query(r, "categoryId"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if params.CreatedFrom, err = httpapi.ParseTimeQuery(r, "createdFrom"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if params.CreatedTo, err = httpapi.ParseTimeQuery(r, "createdTo"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := lifecycle.Status(raw)
		if status.Valid() {
			params.Status = &status
		}
	}

	out, meta, err := c.service.List(r.Context(), params, pg)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Page(w, "Menu categories retrieved", toMenuCategoryResponses(out), meta)
}

func (c *MenuCategoriesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	var dto UpdateMenuCategoryDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mc, err := c.service.Update(r.Context(), id, menucategory.UpdateData{
		CategoryID: dto.CategoryID,
		Position:   dto.Position,
	})
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Menu category updated", toMenuCategoryResponse(mc))
}

func (c *MenuCategoriesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mc, err := c.service.Delete(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Menu category deleted", toMenuCategoryResponse(mc))
}
