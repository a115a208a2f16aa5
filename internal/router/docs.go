package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// docsPage serves the landing documentation kept from the first version of
// the API, so existing bookmarks and the UPC onboarding guide still work.
// The machine-readable spec lives at /swagger/openapi.json.
func docsPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsHTML))
}

const docsHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Kuntur Detector API</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; padding: 20px; max-width: 800px; margin: 0 auto; }
        h1 { color: #333; }
        h2 { color: #444; margin-top: 20px; }
        .endpoint { border: 1px solid #ddd; padding: 10px; margin: 10px 0; border-radius: 5px; }
        .method { font-weight: bold; color: #008000; }
        .path { font-family: monospace; }
        .note { background-color: #f8f9fa; padding: 10px; border-left: 4px solid #007bff; margin: 15px 0; }
    </style>
</head>
<body>
    <h1>Kuntur Detector API</h1>
    <p>API para la gesti&oacute;n de casos de UPC Ecuador</p>

    <div class="note">
        <p><strong>Nota:</strong> CORS est&aacute; habilitado para cualquier origen,
        para facilitar la integraci&oacute;n con frontends como React Native.</p>
    </div>

    <h2>Endpoints disponibles:</h2>

    <div class="endpoint">
        <p><span class="method">GET</span> <span class="path">/healthcheck</span></p>
        <p>Verificar estado del servidor</p>
    </div>

    <div class="endpoint">
        <p><span class="method">POST</span> <span class="path">/api/casos</span></p>
        <p>Crear un nuevo caso. Campos requeridos: <code>id_alarma</code>,
        <code>nombre_agente</code>, <code>cedula_agente</code>, <code>nombre_victima</code>,
        <code>cedula_victima</code>, <code>informe_policial</code>.</p>
    </div>

    <div class="endpoint">
        <p><span class="method">GET</span> <span class="path">/api/casos</span></p>
        <p>Obtener lista de casos. Query params opcionales: <code>id_caso</code>, <code>id_alarma</code>.</p>
    </div>

    <div class="endpoint">
        <p><span class="method">GET</span> <span class="path">/api/casos/{id_caso}</span></p>
        <p>Obtener un caso espec&iacute;fico por su ID</p>
    </div>

    <div class="endpoint">
        <p><span class="method">PUT</span> <span class="path">/api/casos/{id_caso}</span></p>
        <p>Actualizar parcialmente un caso (id_caso y fecha_creacion son inmutables)</p>
    </div>

    <p>Documentaci&oacute;n interactiva: <a href="/swagger/">Swagger UI</a></p>
</body>
</html>
`
