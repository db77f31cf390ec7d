package providers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMw *auth.Middleware) {
	router.HandleFunc("/providers", handler.Create).Methods("POST")
	router.HandleFunc("/providers", handler.List).Methods("GET")
	router.HandleFunc("/providers/{id:[0-9]+}", handler.Get).Methods("GET")
	router.Handle("/providers/me", authMw.Authenticate(http.HandlerFunc(handler.UpdateMe))).Methods("PUT")
}
