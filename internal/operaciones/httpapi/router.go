// README: Route registration for the operaciones API.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logistica/internal/middleware"
	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/flota"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/operaciones/solicitud"
	"logistica/internal/operaciones/tramo"
)

type RouterDeps struct {
	Solicitudes  *solicitud.Service
	Planner      *ruta.Planner
	Tramos       *tramo.Service
	Clientes     *cliente.Service
	Contenedores *contenedor.Service
	CamionRefs   *flota.Store
	Log          *zap.Logger
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

	api := engine.Group("/api")

	sh := NewSolicitudHandler(deps.Solicitudes)
	api.POST("/solicitudes", sh.Create)
	api.GET("/solicitudes", sh.List)
	api.GET("/solicitudes/:id", sh.Get)
	api.GET("/solicitudes/:id/estado", sh.Estado)
	api.POST("/solicitudes/:id/finalizar", sh.Finalizar)

	rh := NewRutaHandler(deps.Planner)
	api.GET("/solicitudes/:id/rutas-tentativas", rh.Tentativas)
	api.POST("/solicitudes/:id/ruta", rh.Assign)
	api.GET("/rutas/:id", rh.Get)
	api.GET("/rutas/:id/tramos", rh.Tramos)

	th := NewTramoHandler(deps.Planner, deps.Tramos)
	api.GET("/tramos", th.List)
	api.GET("/tramos/:id", th.Get)
	api.POST("/tramos/:id/asignar-camion", th.AsignarCamion)
	api.POST("/tramos/:id/iniciar", th.Iniciar)
	api.POST("/tramos/:id/finalizar", th.Finalizar)

	clh := NewClienteHandler(deps.Clientes)
	api.GET("/clientes", clh.List)
	api.POST("/clientes", clh.Create)
	api.GET("/clientes/:id", clh.Get)
	api.PUT("/clientes/:id", clh.Update)
	api.DELETE("/clientes/:id", clh.Delete)

	coh := NewContenedorHandler(deps.Contenedores)
	api.GET("/contenedores", coh.List)
	api.POST("/contenedores", coh.Create)
	api.GET("/contenedores/pendientes", coh.Pendientes)
	api.GET("/contenedores/:id", coh.Get)
	api.PUT("/contenedores/:id", coh.Update)
	api.DELETE("/contenedores/:id", coh.Delete)

	ch := NewCamionHandler(deps.CamionRefs)
	api.GET("/camiones", ch.List)
	api.GET("/camiones/:id", ch.Get)
	api.PUT("/camiones/:id", ch.Sync)
	api.GET("/camiones/:id/tramos-asignados", th.Asignados)

	return engine
}
