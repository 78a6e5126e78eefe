package handler

import (
	"net/http"

	"minegocio/internal/apierror"
	"minegocio/internal/dto"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// CrearGasto godoc
// @Summary      Registrar gasto
// @Tags         gastos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearGastoRequest true "Gasto"
// @Success      201 {object} dto.GastoResponse
// @Router       /v1/gastos [post]
func (h *GastosHandler) CrearGasto(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearGasto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarGastos godoc
// @Summary      Listar gastos
// @Tags         gastos
// @Produce      json
// @Security     BearerAuth
// @Param        categoria query string false "Categoría exacta"
// @Param        desde     query string false "Fecha YYYY-MM-DD"
// @Param        hasta     query string false "Fecha YYYY-MM-DD (inclusive)"
// @Success      200 {object} dto.GastoListResponse
// @Router       /v1/gastos [get]
func (h *GastosHandler) ListarGastos(c *gin.Context) {
	var filter dto.GastoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	desde, hasta, ok := parseRangoFechas(c)
	if !ok {
		return
	}
	filter.Desde, filter.Hasta = desde, hasta

	resp, err := h.svc.ListGastos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar gastos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerGasto godoc
// @Summary      Detalle de gasto
// @Tags         gastos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del gasto"
// @Success      200 {object} dto.GastoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/gastos/{id} [get]
func (h *GastosHandler) ObtenerGasto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerGasto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarGasto godoc
// @Summary      Actualizar gasto
// @Tags         gastos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID del gasto"
// @Param        body body dto.ActualizarGastoRequest true "Campos a actualizar"
// @Success      200 {object} dto.GastoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/gastos/{id} [put]
func (h *GastosHandler) ActualizarGasto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarGasto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarGasto godoc
// @Summary      Eliminar gasto
// @Tags         gastos
// @Security     BearerAuth
// @Param        id path string true "UUID del gasto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/gastos/{id} [delete]
func (h *GastosHandler) EliminarGasto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarGasto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
