package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
	"github.com/vendra-hq/vendra-sdk/pkg/httpapi"
)

// CategoriesController exposes the read side of the category tree.
type CategoriesController struct {
	tree     *services.CategoryTreeService
	basePath string
}

func NewCategoriesController(app application.Application) *CategoriesController {
	return &CategoriesController{
		tree:     app.Service((*services.CategoryTreeService)(nil)).(*services.CategoryTreeService),
		basePath: "/categories",
	}
}

func (c *CategoriesController) Key() string {
	return c.basePath
}

func (c *CategoriesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{id:[0-9]+}/ancestors", c.Ancestors).Methods(http.MethodGet)
}

func (c *CategoriesController) Ancestors(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	refs, err := c.tree.Ancestors(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Category ancestors retrieved", refs)
}
