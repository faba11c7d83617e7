package service

import (
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("known_mood", func(fl validator.FieldLevel) bool {
			return slices.Contains(KnownMoods, fl.Field().String())
		})
	})
}
