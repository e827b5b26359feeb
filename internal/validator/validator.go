// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var mobileRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("mobile", validateMobile)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("report_format", validateReportFormat)
		_ = v.RegisterValidation("date_preset", validateDatePreset)
		_ = v.RegisterValidation("date_string", validateDateString)
	}
}

func validateMobile(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "IN", "OUT":
		return true
	}
	return false
}

func validateReportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "excel", "pdf":
		return true
	}
	return false
}

func validateDatePreset(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "today", "yesterday", "this_month", "date", "range":
		return true
	}
	return false
}

func validateDateString(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
