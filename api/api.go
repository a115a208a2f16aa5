// Package api embeds the OpenAPI document served under /swagger/openapi.json.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
