package handler

import (
	"net/http"

	"storefront/internal/seo/model"
	"storefront/internal/seo/service"
	"storefront/pkg/logger"
	"storefront/pkg/request"
	"storefront/pkg/response"
)

type SEOHandler struct {
	Service *service.SEOService
}

func NewSEOHandler(service *service.SEOService) *SEOHandler {
	return &SEOHandler{Service: service}
}

func (h *SEOHandler) GetSEO(w http.ResponseWriter, r *http.Request) {
	seo, err := h.Service.GetSEO(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to fetch SEO: %v", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch SEO")
		return
	}
	if seo == nil {
		response.Fail(w, http.StatusNotFound, "SEO data not found")
		return
	}
	response.OK(w, seo)
}

func (h *SEOHandler) UpdateSEO(w http.ResponseWriter, r *http.Request) {
	var req model.SEOPatch
	if err := request.DecodeJSON(r, &req); err != nil {
		request.WriteError(w, err)
		return
	}

	if err := h.Service.UpdateSEO(r.Context(), req); err != nil {
		logger.Sugar.Errorf("Handler: Failed to update SEO: %v", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to update SEO")
		return
	}
	response.OK(w, response.Message{Message: "SEO Updated"})
}
