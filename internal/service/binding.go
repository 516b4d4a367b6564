package service

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
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// registerValidations teaches gin's validator the 'notblank' rule and makes it report fields by
// their form names.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
}

// requireBody rejects a request without a body before any handler or storage call runs.
func requireBody(c *gin.Context) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		abortWithMessage(c, http.StatusBadRequest, "request body is missing")
	}
}

// bindForm binds the posted form into obj. On failure it answers with BAD REQUEST and a message
// naming the offending fields.
func bindForm(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "invalid form data"
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(messages, "; ")
}
