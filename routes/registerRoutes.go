package routes

import (
	"net/http"

	"github.com/p0tatoe/volsurface/controllers"
)

type apiRoute struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

func RegisterRoutes() []apiRoute {
	return []apiRoute{
		{
			Path:    "/options-data",
			Method:  "GET",
			Handler: controllers.GetOptionsData,
		},
		{
			Path:    "/health",
			Method:  "GET",
			Handler: controllers.GetHealth,
		},
	}
}
