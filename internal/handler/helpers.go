package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"minegocio/internal/apierror"
	"minegocio/internal/repository"
	"minegocio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service sentinels to HTTP status codes. Conflicts with
// current state (insufficient stock, overpaid abono, double cancellation)
// are 409; missing rows are 404; everything else is a plain bad request.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, repository.ErrStockInsuficiente),
		errors.Is(err, service.ErrAbonoExcedeSaldo),
		errors.Is(err, service.ErrVentaYaAnulada),
		errors.Is(err, service.ErrDeudaNoAbierta),
		errors.Is(err, service.ErrClienteRequerido),
		errors.Is(err, service.ErrReferenciaDuplicada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// parseRangoFechas reads optional desde / hasta query params (YYYY-MM-DD).
// hasta is exclusive: the handler bumps it one day so "hasta=2026-03-31"
// includes the whole last day.
func parseRangoFechas(c *gin.Context) (time.Time, time.Time, bool) {
	var desde, hasta time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido, formato YYYY-MM-DD"))
			return desde, hasta, false
		}
		desde = t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta inválido, formato YYYY-MM-DD"))
			return desde, hasta, false
		}
		hasta = t.AddDate(0, 0, 1)
	}
	return desde, hasta, true
}
