package router

import (
	"net/http"

	"storefront/internal/events"
	productHandler "storefront/internal/product"
	productRepository "storefront/internal/product/repository"
	productService "storefront/internal/product/service"
	seoHandler "storefront/internal/seo"
	seoRepository "storefront/internal/seo/repository"
	seoService "storefront/internal/seo/service"
	"storefront/middleware"
	"storefront/pkg/response"
	"storefront/socket"
)

// Deps are the collaborators the HTTP surface is built from. Hub and
// Publisher are optional.
type Deps struct {
	Products   productRepository.Repository
	SEO        seoRepository.Repository
	Hub        *socket.Hub
	Publisher  events.Publisher
	JWTSecret  string
	CORSOrigin string
}

func Setup(deps Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, response.Message{Message: "working"})
	})

	// WebSocket change feed
	if deps.Hub != nil {
		hub := deps.Hub
		mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
			socket.ServeWs(hub, w, r)
		})
	}

	// REST API
	seoHandler := seoHandler.NewSEOHandler(seoService.NewSEOService(deps.SEO, deps.Publisher))
	productHandler := productHandler.NewProductHandler(productService.NewProductService(deps.Products, deps.Publisher))
	auth := middleware.AuthMiddleware(deps.JWTSecret)

	mux.HandleFunc("GET /api/seo", seoHandler.GetSEO)
	mux.Handle("POST /api/seo", auth(http.HandlerFunc(seoHandler.UpdateSEO)))

	mux.HandleFunc("GET /api/products", productHandler.GetProducts)
	mux.Handle("POST /api/products", auth(http.HandlerFunc(productHandler.CreateProduct)))
	mux.Handle("PUT /api/products/{id}", auth(http.HandlerFunc(productHandler.UpdateProduct)))
	mux.Handle("DELETE /api/products/{id}", auth(http.HandlerFunc(productHandler.DeleteProduct)))

	return middleware.CORSMiddleware(deps.CORSOrigin)(middleware.RequestLogger(mux))
}
