package portfolio

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMw *auth.Middleware) {
	router.Handle("/portfolio", authMw.Authenticate(http.HandlerFunc(handler.Create))).Methods("POST")
	router.Handle("/portfolio/{id:[0-9]+}", authMw.Authenticate(http.HandlerFunc(handler.Delete))).Methods("DELETE")
	router.HandleFunc("/providers/{id:[0-9]+}/portfolio", handler.ListByProvider).Methods("GET")
}
