package middleware

import (
	"net/http"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/pkg/logger"
	"github.com/yigit/camnote/internal/pkg/validation"
)

var (
	validate     = validator.New()
	registerOnce sync.Once
)

// RegisterValidators installs the custom rules on the standalone validator
// and on gin's binding validator
func RegisterValidators() {
	registerOnce.Do(func() {
		if err := validation.RegisterCustomRules(validate); err != nil {
			logger.Error().Err(err).Msg("Failed to register custom validation rules")
		}
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := validation.RegisterCustomRules(v); err != nil {
				logger.Error().Err(err).Msg("Failed to register binding validation rules")
			}
		}
	})
}

// ValidateRequest validates a request body against the provided model
func ValidateRequest(obj interface{}) gin.HandlerFunc {
	RegisterValidators()
	typ := reflect.TypeOf(obj)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return func(c *gin.Context) {
		// fresh value per request, obj only supplies the type
		body := reflect.New(typ).Interface()
		if err := c.ShouldBindJSON(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		if err := validate.Struct(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		c.Set("validatedBody", body)
		c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateRequest
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get("validatedBody")
	if !ok {
		return nil, false
	}
	body, ok := v.(*T)
	return body, ok
}
