package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/planapplication"
	"github.com/vendra-hq/vendra-sdk/modules/billing/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
	"github.com/vendra-hq/vendra-sdk/pkg/httpapi"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func decodeAndValidate(r *http.Request, dto any) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return serrors.NewBadRequest("INVALID_BODY", "request body is not valid JSON", "")
	}
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			fe := vErrs[0]
			if fe.Tag() == "required" {
				return serrors.NewFieldRequiredError(fe.Field())
			}
			return serrors.NewBadRequest("VALIDATION_ERROR", fe.Field()+" failed validation on "+fe.Tag(), fe.Field())
		}
		return err
	}
	return nil
}

type CreatePlanApplicationDTO struct {
	PlanID         int64  `json:"planId" validate:"required,gt=0"`
	ApplicationRef string `json:"applicationRef" validate:"required,max=100"`
}

type UpdatePlanApplicationDTO struct {
	ApplicationRef *string `json:"applicationRef" validate:"omitempty,max=100"`
}

type PlanApplicationResponse struct {
	ID             int64            `json:"id"`
	PlanID         int64            `json:"planId"`
	ApplicationRef string           `json:"applicationRef"`
	Status         lifecycle.Status `json:"status"`
	PlanName       string           `json:"planName"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func toPlanApplicationResponse(pa *planapplication.PlanApplication) *PlanApplicationResponse {
	return &PlanApplicationResponse{
		ID:             pa.ID,
		PlanID:         pa.PlanID,
		ApplicationRef: pa.ApplicationRef,
		Status:         pa.Status,
		PlanName:       pa.PlanName,
		CreatedAt:      pa.CreatedAt,
		UpdatedAt:      pa.UpdatedAt,
	}
}

type PlanApplicationsController struct {
	service  *services.PlanApplicationService
	basePath string
}

func NewPlanApplicationsController(app application.Application) *PlanApplicationsController {
	return &PlanApplicationsController{
		service:  app.Service((*services.PlanApplicationService)(nil)).(*services.PlanApplicationService),
		basePath: "/plan-applications",
	}
}

func (c *PlanApplicationsController) Key() string {
	return c.basePath
}

func (c *PlanApplicationsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *PlanApplicationsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePlanApplicationDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	pa, err := c.service.Create(r.Context(), dto.PlanID, dto.ApplicationRef)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Created(w, "Application subscribed to plan", toPlanApplicationResponse(pa))
}

func (c *PlanApplicationsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	pa, err := c.service.Get(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Plan application retrieved", toPlanApplicationResponse(pa))
}

func (c *PlanApplicationsController) List(w http.ResponseWriter, r *http.Request) {
	pg, err := httpapi.ParsePagination(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	params := planapplication.FindParams{}
	if params.PlanID, err = httpapi.ParseInt64Query(r, "planId"); err != nil {
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
	responses := make([]*PlanApplicationResponse, 0, len(out))
	for _, pa := range out {
		responses = append(responses, toPlanApplicationResponse(pa))
	}
	_ = httpapi.Page(w, "Plan applications retrieved", responses, meta)
}

func (c *PlanApplicationsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	var dto UpdatePlanApplicationDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	pa, err := c.service.Update(r.Context(), id, planapplication.UpdateData{
		ApplicationRef: dto.ApplicationRef,
	})
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Plan application updated", toPlanApplicationResponse(pa))
}

func (c *PlanApplicationsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	pa, err := c.service.Delete(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Plan application cancelled", toPlanApplicationResponse(pa))
}
