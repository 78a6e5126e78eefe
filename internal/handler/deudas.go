package handler

import (
	"net/http"

	"minegocio/internal/apierror"
	"minegocio/internal/dto"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeudasHandler serves both ledgers: money customers owe the store and money
// the store owes its vendors.
type DeudasHandler struct {
	clientes    service.DeudaClienteService
	proveedores service.DeudaProveedorService
}

func NewDeudasHandler(clientes service.DeudaClienteService, proveedores service.DeudaProveedorService) *DeudasHandler {
	return &DeudasHandler{clientes: clientes, proveedores: proveedores}
}

// ── Deudas de clientes ────────────────────────────────────────────────────────

// ListarDeudasCliente godoc
// @Summary      Listar deudas de clientes
// @Tags         deudas
// @Produce      json
// @Security     BearerAuth
// @Param        estado     query string false "Pendiente | Pagado | Cancelado | all"
// @Param        cliente_id query string false "UUID del cliente"
// @Success      200 {object} dto.DeudaClienteListResponse
// @Router       /v1/deudas/clientes [get]
func (h *DeudasHandler) ListarDeudasCliente(c *gin.Context) {
	var filter dto.DeudaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.clientes.ListDeudas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar deudas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerDeudaCliente godoc
// @Summary      Detalle de una deuda de cliente con su historial de abonos
// @Tags         deudas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la deuda"
// @Success      200 {object} dto.DeudaClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/deudas/clientes/{id} [get]
func (h *DeudasHandler) ObtenerDeudaCliente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.clientes.ObtenerDeuda(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarAbono godoc
// @Summary      Registrar abono
// @Description  Aplica un pago parcial a una deuda pendiente. Cierra la deuda cuando el saldo queda en cero (tolerancia de un centavo).
// @Tags         deudas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID de la deuda"
// @Param        body body dto.RegistrarAbonoRequest true "Abono"
// @Success      200 {object} dto.DeudaClienteResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/deudas/clientes/{id}/abonos [post]
func (h *DeudasHandler) RegistrarAbono(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.clientes.RegistrarAbono(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Deudas con proveedores ────────────────────────────────────────────────────

// CrearDeudaProveedor godoc
// @Summary      Registrar deuda con proveedor
// @Tags         deudas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearDeudaProveedorRequest true "Deuda"
// @Success      201 {object} dto.DeudaProveedorResponse
// @Router       /v1/deudas/proveedores [post]
func (h *DeudasHandler) CrearDeudaProveedor(c *gin.Context) {
	var req dto.CrearDeudaProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.proveedores.CrearDeuda(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarDeudasProveedor godoc
// @Summary      Listar deudas con proveedores
// @Tags         deudas
// @Produce      json
// @Security     BearerAuth
// @Param        estado   query string false "Pendiente | Pagado | Cancelado | all"
// @Param        acreedor query string false "Búsqueda parcial por acreedor"
// @Success      200 {object} dto.DeudaProveedorListResponse
// @Router       /v1/deudas/proveedores [get]
func (h *DeudasHandler) ListarDeudasProveedor(c *gin.Context) {
	var filter dto.DeudaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.proveedores.ListDeudas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar deudas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerDeudaProveedor godoc
// @Summary      Detalle de una deuda con proveedor
// @Tags         deudas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la deuda"
// @Success      200 {object} dto.DeudaProveedorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/deudas/proveedores/{id} [get]
func (h *DeudasHandler) ObtenerDeudaProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.proveedores.ObtenerDeuda(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPagoProveedor godoc
// @Summary      Registrar pago a proveedor
// @Tags         deudas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID de la deuda"
// @Param        body body dto.RegistrarAbonoRequest true "Pago"
// @Success      200 {object} dto.DeudaProveedorResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/deudas/proveedores/{id}/pagos [post]
func (h *DeudasHandler) RegistrarPagoProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.proveedores.RegistrarPago(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarDeudaProveedor godoc
// @Summary      Eliminar deuda con proveedor
// @Tags         deudas
// @Security     BearerAuth
// @Param        id path string true "UUID de la deuda"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/deudas/proveedores/{id} [delete]
func (h *DeudasHandler) EliminarDeudaProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.proveedores.EliminarDeuda(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
