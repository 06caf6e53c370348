package handler

import (
	"net/http"

	"storefront/internal/product/model"
	"storefront/internal/product/service"
	"storefront/pkg/logger"
	"storefront/pkg/request"
	"storefront/pkg/response"
)

type ProductHandler struct {
	Service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{Service: service}
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.GetProducts(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to fetch products: %v", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	response.OK(w, products)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductPatch
	if err := request.DecodeJSON(r, &req); err != nil {
		request.WriteError(w, err)
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create product: %v", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	response.OK(w, product)
}

// UpdateProduct answers with the updated product, or a JSON null when the id
// matches nothing.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req model.ProductPatch
	if err := request.DecodeJSON(r, &req); err != nil {
		request.WriteError(w, err)
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to update product %s: %v", id, err)
		response.Fail(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	response.OK(w, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete product %s: %v", id, err)
		response.Fail(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	response.OK(w, response.Message{Message: "Product deleted successfully"})
}
