package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jirani-app/app-jirani/internal/utils"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse reports per-field validation failures
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var (
	validationOnce sync.Once
	validationErr  error
)

// SetupValidation registers the custom binding tags and makes validation
// errors report JSON field names. Safe to call more than once.
func SetupValidation() error {
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validationErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validationErr = utils.RegisterValidators(v)
	})
	return validationErr
}

// bindJSON binds the request body into obj. On failure it writes a 400 and
// returns false.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = utils.ValidationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Invalid request", Fields: fields})
		return false
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	return false
}
