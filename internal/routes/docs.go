package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/config"
	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.yaml
var openAPISpec []byte

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0 auto; max-width: 960px; padding: 32px 16px; font-family: system-ui, sans-serif; color: #1d2a22; }
    header p, dl { color: #56635a; }
    dt { font-weight: 600; }
    dd { margin: 0 0 8px; }
    pre { padding: 16px; overflow: auto; background: #111827; color: #e5e7eb; border-radius: 8px; }
  </style>
</head>
<body>
  <header>
    <h1>{{ .Title }}</h1>
    <p>OpenAPI document for the account, meal, statistics, report and profile endpoints. Only served in development.</p>
    <p><a href="/docs/openapi.yaml">openapi.yaml</a> · <a href="/docs/openapi.yaml" download="openapi.yaml">download</a></p>
  </header>
  <dl>
    <dt>Loaded</dt><dd>{{ .LoadedAt }}</dd>
    <dt>Auth</dt><dd>Authorization: Bearer &lt;token from POST /api/auth/login&gt;</dd>
  </dl>
  <pre>{{ .Spec }}</pre>
</body>
</html>
`

type docsPageData struct {
	Title    string
	LoadedAt string
	Spec     string
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}
	if len(openAPISpec) == 0 {
		return fmt.Errorf("load openapi spec: embedded document is empty")
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:    "Healthcheck API Docs",
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Spec:     string(openAPISpec),
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(openAPISpec)
	})

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("Permissions-Policy", "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()")
	c.Set("Cross-Origin-Resource-Policy", "same-origin")
	c.Set("Cross-Origin-Opener-Policy", "same-origin")
	c.Set("Cross-Origin-Embedder-Policy", "require-corp")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
