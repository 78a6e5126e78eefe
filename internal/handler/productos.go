package handler

import (
	"net/http"

	"minegocio/internal/apierror"
	"minegocio/internal/dto"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// CrearProducto godoc
// @Summary      Crear producto
// @Description  Alta de producto, opcionalmente con sus tallas iniciales.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Producto"
// @Success      201  {object} dto.ProductoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) CrearProducto(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarProductos godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        referencia query string false "Referencia exacta"
// @Param        nombre     query string false "Búsqueda parcial por nombre"
// @Param        categoria  query string false "Categoría exacta"
// @Param        activo     query string false "vacío = activos, false = inactivos, all = todos"
// @Success      200 {object} dto.ProductoListResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) ListarProductos(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListProductos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerProducto godoc
// @Summary      Detalle de producto
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [get]
func (h *ProductosHandler) ObtenerProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerProducto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorReferencia godoc
// @Summary      Buscar producto por referencia
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        referencia path string true "Referencia del producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/referencia/{referencia} [get]
func (h *ProductosHandler) BuscarPorReferencia(c *gin.Context) {
	resp, err := h.svc.BuscarPorReferencia(c.Request.Context(), c.Param("referencia"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarProducto godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [put]
func (h *ProductosHandler) ActualizarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarProducto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesactivarProducto godoc
// @Summary      Desactivar producto
// @Description  Baja lógica: el producto deja de ser vendible pero sus ventas históricas quedan intactas.
// @Tags         productos
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [delete]
func (h *ProductosHandler) DesactivarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesactivarProducto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReactivarProducto godoc
// @Summary      Reactivar producto
// @Tags         productos
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/reactivar [post]
func (h *ProductosHandler) ReactivarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ReactivarProducto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AgregarVariante godoc
// @Summary      Agregar talla a un producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string              true "UUID del producto"
// @Param        body body dto.VarianteRequest true "Talla"
// @Success      201 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/variantes [post]
func (h *ProductosHandler) AgregarVariante(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.VarianteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarVariante(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarVariante godoc
// @Summary      Actualizar talla
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path string              true "UUID del producto"
// @Param        variante_id path string              true "UUID de la variante"
// @Param        body        body dto.VarianteRequest true "Talla"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/variantes/{variante_id} [put]
func (h *ProductosHandler) ActualizarVariante(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	vid, err := uuid.Parse(c.Param("variante_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de variante inválido"))
		return
	}
	var req dto.VarianteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarVariante(c.Request.Context(), id, vid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarVariante godoc
// @Summary      Eliminar talla
// @Tags         productos
// @Security     BearerAuth
// @Param        id          path string true "UUID del producto"
// @Param        variante_id path string true "UUID de la variante"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/variantes/{variante_id} [delete]
func (h *ProductosHandler) EliminarVariante(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	vid, err := uuid.Parse(c.Param("variante_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de variante inválido"))
		return
	}
	if err := h.svc.EliminarVariante(c.Request.Context(), id, vid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AjustarStock godoc
// @Summary      Ajuste manual de inventario
// @Description  Aplica un delta al stock de la talla o del producto. Nunca deja stock negativo.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID del producto"
// @Param        body body dto.AjustarStockRequest true "Ajuste"
// @Success      200 {object} dto.ProductoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/productos/{id}/stock [post]
func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
