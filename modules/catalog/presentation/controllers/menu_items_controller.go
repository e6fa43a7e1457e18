package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menuitem"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
	"github.com/vendra-hq/vendra-sdk/pkg/httpapi"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
)

type MenuItemsController struct {
	service  *services.MenuItemService
	basePath string
}

func NewMenuItemsController(app application.Application) *MenuItemsController {
	return &MenuItemsController{
		service:  app.Service((*services.MenuItemService)(nil)).(*services.MenuItemService),
		basePath: "/menu-items",
	}
}

func (c *MenuItemsController) Key() string {
	return c.basePath
}

func (c *MenuItemsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *MenuItemsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateMenuItemDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mi, err := c.service.Create(r.Context(), services.MenuItemCreateData{
		MenuID:        dto.MenuID,
		ProductID:     dto.ProductID,
		VariantID:     dto.VariantID,
		PriceOverride: dto.PriceOverride,
		Position:      dto.Position,
	})
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Created(w, "Product added to menu", toMenuItemResponse(mi))
}

func (c *MenuItemsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mi, err := c.service.Get(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Menu item retrieved", toMenuItemResponse(mi))
}

func (c *MenuItemsController) List(w http.ResponseWriter, r *http.Request) {
	pg, err := httpapi.ParsePagination(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	params := menuitem.FindParams{}
	if params.MenuID, err = httpapi.ParseInt64Query(r, "menuId"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if params.ProductID, err = httpapi.ParseInt64Query(r, "productId"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if params.IsAvailable, err = httpapi.ParseBoolQuery(r, "isAvailable"); err != nil {
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
	_ = httpapi.Page(w, "Menu items retrieved", toMenuItemResponses(out), meta)
}

func (c *MenuItemsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	var dto UpdateMenuItemDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mi, err := c.service.Update(r.Context(), id, menuitem.UpdateData{
		PriceOverride: dto.PriceOverride,
		Position:      dto.Position,
		IsAvailable:   dto.IsAvailable,
	})
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Menu item updated", toMenuItemResponse(mi))
}

func (c *MenuItemsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	mi, err := c.service.Delete(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Menu item deleted", toMenuItemResponse(mi))
}
