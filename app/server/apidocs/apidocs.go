package apidocs

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

// configures the Doc middlewares
type config struct {
	// SpecURL the url to find the spec for
	SpecURL string
}

func prepare(basePath string, cfg *config) (string, string, error) {
	docPath := path.Join(basePath, "apidocs")

	// html
	tmpl, err := template.New("apidoc").Parse(pageTemplate)
	if err != nil {
		return "", "", fmt.Errorf("parse page template: %w", err)
	}
	buf := bytes.NewBuffer(nil)
	if err = tmpl.Execute(buf, cfg); err != nil {
		return "", "", fmt.Errorf("render page template: %w", err)
	}

	return docPath, buf.String(), nil
}

// Doc creates a middleware that serves the API reference page at
// <basePath>/apidocs and the OpenAPI document at <basePath>/apispec.json.
// Register it with e.Pre so it runs before routing.
func Doc(basePath string, apiJSON []byte) (echo.MiddlewareFunc, error) {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}

	docPath, uiHTML, err := prepare(basePath, cfg)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch reqPath := c.Request().URL.Path; reqPath {
			case docPath:
				return c.HTML(http.StatusOK, uiHTML)
			case cfg.SpecURL:
				return c.JSONBlob(http.StatusOK, apiJSON)
			case basePath:
				return c.Redirect(http.StatusFound, docPath)
			default:
				if next == nil {
					return c.String(http.StatusNotFound, fmt.Sprintf("%q not found", reqPath))
				}
				return next(c)
			}
		}
	}, nil
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>Library API documentation</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
