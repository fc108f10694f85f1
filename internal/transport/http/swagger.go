package http

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/kidspots/kidspots-api/internal/util"
)

var swaggerSpec struct {
	once sync.Once
	json []byte
	err  error
}

// RegisterSwagger serves the hand-maintained docs/swagger.yaml through the
// Swagger UI under /swagger. The YAML is converted to JSON once and cached
// for the process lifetime.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		swaggerSpec.once.Do(func() {
			data, err := os.ReadFile(filepath.Join("docs", "swagger.yaml"))
			if err != nil {
				swaggerSpec.err = err
				return
			}
			swaggerSpec.json, swaggerSpec.err = yaml.YAMLToJSON(data)
		})
		if swaggerSpec.err != nil {
			c.Logger().Errorf("load swagger spec: %v", swaggerSpec.err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, swaggerSpec.json)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
