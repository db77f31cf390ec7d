package couples

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMw *auth.Middleware) {
	router.HandleFunc("/couples", handler.Create).Methods("POST")
	router.HandleFunc("/couples/{id:[0-9]+}", handler.Get).Methods("GET")
	router.Handle("/couples/me", authMw.Authenticate(http.HandlerFunc(handler.UpdateMe))).Methods("PUT")
}
