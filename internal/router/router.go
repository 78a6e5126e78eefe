package router

import (
	"time"

	"minegocio/internal/config"
	"minegocio/internal/handler"
	"minegocio/internal/middleware"
	"minegocio/internal/repository"
	"minegocio/internal/service"
	"minegocio/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	opTimeout := time.Duration(cfg.StoreTimeoutSeconds) * time.Second

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	deudaClienteRepo := repository.NewDeudaClienteRepository(db)
	deudaProveedorRepo := repository.NewDeudaProveedorRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	estadisticaRepo := repository.NewEstadisticaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, opTimeout)
	clienteSvc := service.NewClienteService(clienteRepo, opTimeout)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, deudaClienteRepo, dispatcher, opTimeout)
	deudaClienteSvc := service.NewDeudaClienteService(deudaClienteRepo, opTimeout)
	deudaProveedorSvc := service.NewDeudaProveedorService(deudaProveedorRepo, opTimeout)
	gastoSvc := service.NewGastoService(gastoRepo, opTimeout)
	estadisticaSvc := service.NewEstadisticaService(estadisticaRepo, rdb, opTimeout)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	deudasH := handler.NewDeudasHandler(deudaClienteSvc, deudaProveedorSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	estadisticasH := handler.NewEstadisticasHandler(estadisticaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	ambos := middleware.RequireRole("cajero", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Ventas — la caja es el día a día del cajero
		v1.POST("/ventas", ambos, ventasH.RegistrarVenta)
		v1.GET("/ventas", ambos, ventasH.ListarVentas)
		v1.GET("/ventas/:id", ambos, ventasH.ObtenerVenta)
		v1.DELETE("/ventas/:id", admin, ventasH.AnularVenta)

		// Productos — lectura para todos, escritura para administrador
		v1.GET("/productos", ambos, productosH.ListarProductos)
		v1.GET("/productos/:id", ambos, productosH.ObtenerProducto)
		v1.GET("/productos/referencia/:referencia", ambos, productosH.BuscarPorReferencia)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.CrearProducto)
			prods.PUT("/:id", productosH.ActualizarProducto)
			prods.DELETE("/:id", productosH.DesactivarProducto)
			prods.POST("/:id/reactivar", productosH.ReactivarProducto)
			prods.POST("/:id/stock", productosH.AjustarStock)
			prods.POST("/:id/variantes", productosH.AgregarVariante)
			prods.PUT("/:id/variantes/:variante_id", productosH.ActualizarVariante)
			prods.DELETE("/:id/variantes/:variante_id", productosH.EliminarVariante)
		}

		// Clientes
		v1.GET("/clientes", ambos, clientesH.ListarClientes)
		v1.GET("/clientes/:id", ambos, clientesH.ObtenerCliente)
		v1.POST("/clientes", ambos, clientesH.CrearCliente)
		v1.PUT("/clientes/:id", ambos, clientesH.ActualizarCliente)
		v1.POST("/clientes/:id/recomputar", admin, clientesH.RecomputarAgregados)
		v1.DELETE("/clientes/:id", admin, clientesH.EliminarCliente)

		// Deudas
		deudas := v1.Group("/deudas")
		{
			deudas.GET("/clientes", ambos, deudasH.ListarDeudasCliente)
			deudas.GET("/clientes/:id", ambos, deudasH.ObtenerDeudaCliente)
			deudas.POST("/clientes/:id/abonos", ambos, deudasH.RegistrarAbono)

			deudas.POST("/proveedores", admin, deudasH.CrearDeudaProveedor)
			deudas.GET("/proveedores", ambos, deudasH.ListarDeudasProveedor)
			deudas.GET("/proveedores/:id", ambos, deudasH.ObtenerDeudaProveedor)
			deudas.POST("/proveedores/:id/pagos", admin, deudasH.RegistrarPagoProveedor)
			deudas.DELETE("/proveedores/:id", admin, deudasH.EliminarDeudaProveedor)
		}

		// Gastos — solo el administrador ve la contabilidad
		gastos := v1.Group("/gastos", admin)
		{
			gastos.POST("", gastosH.CrearGasto)
			gastos.GET("", gastosH.ListarGastos)
			gastos.GET("/:id", gastosH.ObtenerGasto)
			gastos.PUT("/:id", gastosH.ActualizarGasto)
			gastos.DELETE("/:id", gastosH.EliminarGasto)
		}

		// Estadísticas
		stats := v1.Group("/estadisticas", admin)
		{
			stats.GET("/resumen", estadisticasH.ResumenMensual)
			stats.GET("/top-productos", estadisticasH.TopProductos)
			stats.GET("/margenes", estadisticasH.Margenes)
			stats.GET("/gastos", estadisticasH.GastosPorCategoria)
			stats.GET("/deudas", estadisticasH.ResumenDeudas)
		}

		// Usuarios
		usuarios := v1.Group("/auth/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
