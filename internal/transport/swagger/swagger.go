package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Point the UI at the OpenAPI spec served from the root.
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}
