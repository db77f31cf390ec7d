package reviews

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMw *auth.Middleware) {
	router.Handle("/reviews", authMw.Authenticate(http.HandlerFunc(handler.Create))).Methods("POST")
	router.HandleFunc("/providers/{id:[0-9]+}/reviews", handler.ListByProvider).Methods("GET")
}
