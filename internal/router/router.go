package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kuntur-detector/case-service/api"
	"github.com/kuntur-detector/case-service/internal/handler"
)

const pathSwagger = "/swagger"

// cors allows any origin: the API is consumed by the React Native frontend
// and the UPC demo pages, which run on their own hosts.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func New(caseHandler *handler.CaseHandler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors())

	r.GET("/", docsPage)
	r.GET("/healthcheck", handler.Healthcheck)
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)

	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	casos := r.Group("/api")
	{
		casos.POST("/casos", caseHandler.Create)
		casos.GET("/casos", caseHandler.List)
		casos.GET("/casos/:id_caso", caseHandler.Get)
		casos.PUT("/casos/:id_caso", caseHandler.Update)
	}

	return r
}
