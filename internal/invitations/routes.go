package invitations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMw *auth.Middleware) {
	router.Handle("/invitations", authMw.Authenticate(http.HandlerFunc(handler.Create))).Methods("POST")
	router.Handle("/invitations", authMw.Authenticate(http.HandlerFunc(handler.List))).Methods("GET")
	router.HandleFunc("/invitations/{token}/accept", handler.Accept).Methods("POST")
}
