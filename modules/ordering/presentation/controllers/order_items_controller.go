package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/orderitem"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/services"
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

type CreateOrderItemDTO struct {
	OrderID   int64           `json:"orderId" validate:"required,gt=0"`
	ProductID int64           `json:"productId" validate:"required,gt=0"`
	VariantID *int64          `json:"variantId" validate:"omitempty,gt=0"`
	Quantity  int             `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Notes     string          `json:"notes" validate:"max=500"`
}

type UpdateOrderItemDTO struct {
	Quantity  *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Notes     *string          `json:"notes" validate:"omitempty,max=500"`
}

type OrderItemResponse struct {
	ID          int64            `json:"id"`
	OrderID     int64            `json:"orderId"`
	ProductID   int64            `json:"productId"`
	VariantID   *int64           `json:"variantId,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Total       decimal.Decimal  `json:"total"`
	Notes       string           `json:"notes,omitempty"`
	Status      lifecycle.Status `json:"status"`
	OrderNumber string           `json:"orderNumber"`
	ProductName string           `json:"productName"`
	VariantName *string          `json:"variantName,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toOrderItemResponse(oi *orderitem.OrderItem) *OrderItemResponse {
	return &OrderItemResponse{
		ID:          oi.ID,
		OrderID:     oi.OrderID,
		ProductID:   oi.ProductID,
		VariantID:   oi.VariantID,
		Quantity:    oi.Quantity,
		UnitPrice:   oi.UnitPrice,
		Total:       oi.Total(),
		Notes:       oi.Notes,
		Status:      oi.Status,
		OrderNumber: oi.OrderNumber,
		ProductName: oi.ProductName,
		VariantName: oi.VariantName,
		CreatedAt:   oi.CreatedAt,
		UpdatedAt:   oi.UpdatedAt,
	}
}

type OrderItemsController struct {
	service  *services.OrderItemService
	basePath string
}

func NewOrderItemsController(app application.Application) *OrderItemsController {
	return &OrderItemsController{
		service:  app.Service((*services.OrderItemService)(nil)).(*services.OrderItemService),
		basePath: "/order-items",
	}
}

func (c *OrderItemsController) Key() string {
	return c.basePath
}

func (c *OrderItemsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *OrderItemsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateOrderItemDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	oi, err := c.service.Create(r.Context(), services.OrderItemCreateData{
		OrderID:   dto.OrderID,
		ProductID: dto.ProductID,
		VariantID: dto.VariantID,
		Quantity:  dto.Quantity,
		UnitPrice: dto.UnitPrice,
		Notes:     dto.Notes,
	})
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Created(w, "Item added to order", toOrderItemResponse(oi))
}

func (c *OrderItemsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	oi, err := c.service.Get(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Order item retrieved", toOrderItemResponse(oi))
}

func (c *OrderItemsController) List(w http.ResponseWriter, r *http.Request) {
	pg, err := httpapi.ParsePagination(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	params := orderitem.FindParams{}
	if params.OrderID, err = httpapi.ParseInt64Query(r, "orderId"); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if params.ProductID, err = httpapi.ParseInt64Query(r, "productId"); err != nil {
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
	responses := make([]*OrderItemResponse, 0, len(out))
	for _, oi := range out {
		responses = append(responses, toOrderItemResponse(oi))
	}
	_ = httpapi.Page(w, "Order items retrieved", responses, meta)
}

func (c *OrderItemsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	var dto UpdateOrderItemDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	oi, err := c.service.Update(r.Context(), id, orderitem.UpdateData{
		Quantity:  dto.Quantity,
		UnitPrice: dto.UnitPrice,
		Notes:     dto.Notes,
	})
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Order item updated", toOrderItemResponse(oi))
}

func (c *OrderItemsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ParseID(r, "id")
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	oi, err := c.service.Delete(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.Ok(w, "Order item removed", toOrderItemResponse(oi))
}
