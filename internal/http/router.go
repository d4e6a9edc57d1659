package httpapi

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// NewRouter регистрирует маршруты API и навешивает middleware.
// healthz может быть nil, тогда маршрут /healthz не регистрируется.
func NewRouter(server *Server, healthz http.Handler, logger *log.Entry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /customers", server.handleCreateCustomer)
	mux.HandleFunc("POST /products", server.handleCreateProduct)
	mux.HandleFunc("POST /orders", server.handleCreateOrder)
	mux.HandleFunc("GET /orders", server.handleListOrders)
	mux.HandleFunc("GET /orders/{id}", server.handleGetOrder)
	if healthz != nil {
		mux.Handle("GET /healthz", healthz)
	}
	return WithRequestID(WithLogging(logger, mux))
}
