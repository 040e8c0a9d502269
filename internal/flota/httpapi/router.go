// README: Route registration for the flota API.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logistica/internal/flota/camion"
	"logistica/internal/flota/deposito"
	"logistica/internal/flota/tarifa"
	"logistica/internal/middleware"
)

type RouterDeps struct {
	Camiones  *camion.Service
	Tarifas   *tarifa.Service
	Depositos *deposito.Service
	Log       *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Log),
		middleware.Recovery(deps.Log),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	ch := NewCamionHandler(deps.Camiones)
	engine.GET("/camiones", ch.List)
	engine.POST("/camiones", ch.Create)
	engine.GET("/camiones/:id", ch.Get)
	engine.PUT("/camiones/:id", ch.Update)
	engine.PATCH("/camiones/:id/disponibilidad", ch.SetDisponibilidad)
	engine.DELETE("/camiones/:id", ch.Delete)

	th := NewTarifaHandler(deps.Tarifas)
	engine.GET("/tarifas", th.List)
	engine.POST("/tarifas", th.Create)
	engine.GET("/tarifas/actual", th.Actual)
	engine.GET("/tarifas/:id", th.Get)
	engine.POST("/tarifas/:id/activar", th.Activar)

	dh := NewDepositoHandler(deps.Depositos)
	engine.GET("/depositos", dh.List)
	engine.POST("/depositos", dh.Create)
	engine.GET("/depositos/:id", dh.Get)
	engine.PUT("/depositos/:id", dh.Update)
	engine.DELETE("/depositos/:id", dh.Delete)

	return engine
}
