package swaggerkit

import (
	"net/http"

	phttp "skillproof/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath roots the UI; the decorated document is DocsPath/doc.json
const DocsPath = "/api/docs"

// Mount serves the Swagger UI when enabled; disabled mounts nothing
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	doc := DocsPath + "/doc.json"
	r.Get(DocsPath, http.RedirectHandler(DocsPath+"/", http.StatusMovedPermanently).ServeHTTP)
	r.Get(doc, serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(doc),
	))
}
