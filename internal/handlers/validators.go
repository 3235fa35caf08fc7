package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	pnrFormat     = regexp.MustCompile(`^\d{10}$`)
	validatorOnce sync.Once
)

// registerCustomValidators adds the "pnr" tag to gin's binding engine so
// request DTOs can validate PNR fields declaratively.
func registerCustomValidators() {
	validatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("pnr", func(fl validator.FieldLevel) bool {
				return pnrFormat.MatchString(fl.Field().String())
			})
		}
	})
}
