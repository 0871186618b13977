package handlers

import "github.com/gin-gonic/gin"

const swaggerUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>ShopHub API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #f8fafc; }
      #swagger-ui { max-width: 1200px; margin: 0 auto; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPIYAML = `openapi: 3.0.3
info:
  title: ShopHub API
  version: "1.0"
paths:
  /produtos:
    post: { summary: Create product }
    get: { summary: List products }
  /produtos/{id}:
    put: { summary: Update product }
    delete: { summary: Remove product }
  /adicionarUsuario:
    post: { summary: Register user }
  /login:
    post: { summary: Login }
  /admin/login:
    post: { summary: Admin login }
  /adicionarItem:
    post: { summary: Add cart item }
  /removerItem:
    post: { summary: Remove cart item }
  /carrinho/{usuarioId}:
    get: { summary: Get cart }
    delete: { summary: Clear cart }
  /usuarios:
    get: { summary: List users (admin) }
  /usuarios/{id}:
    put: { summary: Update user (admin) }
    delete: { summary: Remove user (admin) }
  /adicionarUsuarioAdm:
    post: { summary: Create admin user (admin) }
`

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(200, "text/html; charset=utf-8", []byte(swaggerUIHTML))
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Data(200, "application/yaml; charset=utf-8", []byte(openAPIYAML))
}
