package httpapi

import (
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"strings"
)

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPage = template.Must(template.New("swagger").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.AssetBase}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="{{.AssetBase}}/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: {{.SpecURL}}, dom_id: "#swagger-ui", deepLinking: true});
</script>
</body>
</html>
`))

type swaggerPageData struct {
	Title     string
	AssetBase string
	SpecURL   string
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	if _, err := w.Write(openAPISpec); err != nil {
		h.logger.DebugContext(ctx, "write openapi document", "error", err)
	}
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(swaggerHTML(ctx, "/openapi.yaml")))
}

func swaggerHTML(ctx context.Context, specURL string) string {
	_, span := startSpan(ctx, "httpapi.swaggerHTML")
	defer span.End()

	var b strings.Builder
	_ = swaggerPage.Execute(&b, swaggerPageData{
		Title:     "ManagerHub API",
		AssetBase: "https://unpkg.com/swagger-ui-dist@5",
		SpecURL:   specURL,
	})
	return b.String()
}
