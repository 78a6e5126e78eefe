package handler

import (
	"net/http"
	"strconv"
	"time"

	"minegocio/internal/apierror"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
)

type EstadisticasHandler struct{ svc service.EstadisticaService }

func NewEstadisticasHandler(svc service.EstadisticaService) *EstadisticasHandler {
	return &EstadisticasHandler{svc: svc}
}

// anioMes reads anio / mes query params, defaulting to the current month.
func anioMes(c *gin.Context) (int, int, bool) {
	now := time.Now()
	anio, mes := now.Year(), int(now.Month())

	if s := c.Query("anio"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2100 {
			c.JSON(http.StatusBadRequest, apierror.New("anio inválido"))
			return 0, 0, false
		}
		anio = v
	}
	if s := c.Query("mes"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			c.JSON(http.StatusBadRequest, apierror.New("mes inválido"))
			return 0, 0, false
		}
		mes = v
	}
	return anio, mes, true
}

// ResumenMensual godoc
// @Summary      Resumen del mes
// @Description  Ventas, gastos, utilidad y variación contra el mes anterior.
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        anio query int false "Año (default: actual)"
// @Param        mes  query int false "Mes 1-12 (default: actual)"
// @Success      200 {object} dto.ResumenMensualResponse
// @Router       /v1/estadisticas/resumen [get]
func (h *EstadisticasHandler) ResumenMensual(c *gin.Context) {
	anio, mes, ok := anioMes(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenMensual(c.Request.Context(), anio, mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProductos godoc
// @Summary      Productos más vendidos del mes
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        anio  query int false "Año (default: actual)"
// @Param        mes   query int false "Mes 1-12 (default: actual)"
// @Param        limit query int false "Máximo de productos (default 10)"
// @Success      200 {array} dto.TopProductoResponse
// @Router       /v1/estadisticas/top-productos [get]
func (h *EstadisticasHandler) TopProductos(c *gin.Context) {
	anio, mes, ok := anioMes(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.svc.TopProductos(c.Request.Context(), anio, mes, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular top productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Margenes godoc
// @Summary      Margen de utilidad por producto
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        anio  query int false "Año (default: actual)"
// @Param        mes   query int false "Mes 1-12 (default: actual)"
// @Param        limit query int false "Máximo de productos (default 10)"
// @Success      200 {array} dto.MargenProductoResponse
// @Router       /v1/estadisticas/margenes [get]
func (h *EstadisticasHandler) Margenes(c *gin.Context) {
	anio, mes, ok := anioMes(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.svc.MargenesPorProducto(c.Request.Context(), anio, mes, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular márgenes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GastosPorCategoria godoc
// @Summary      Gastos del mes agrupados por categoría
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        anio query int false "Año (default: actual)"
// @Param        mes  query int false "Mes 1-12 (default: actual)"
// @Success      200 {array} dto.GastoCategoriaResponse
// @Router       /v1/estadisticas/gastos [get]
func (h *EstadisticasHandler) GastosPorCategoria(c *gin.Context) {
	anio, mes, ok := anioMes(c)
	if !ok {
		return
	}
	resp, err := h.svc.GastosPorCategoria(c.Request.Context(), anio, mes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al agrupar gastos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenDeudas godoc
// @Summary      Totales pendientes por cobrar y por pagar
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DeudasResumenResponse
// @Router       /v1/estadisticas/deudas [get]
func (h *EstadisticasHandler) ResumenDeudas(c *gin.Context) {
	resp, err := h.svc.ResumenDeudas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al resumir deudas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
