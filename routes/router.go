package routes

import "github.com/gorilla/mux"

func ServeRoutes(router *mux.Router) {
	for _, r := range RegisterRoutes() {
		router.HandleFunc(r.Path, r.Handler).Methods(r.Method, "OPTIONS")
	}
}
