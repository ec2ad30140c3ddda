package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	oneOf := func(tag string, allowed ...string) {
		validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			for _, a := range allowed {
				if v == a {
					return true
				}
			}
			return false
		})
	}

	oneOf("permission_category", "users", "campaigns", "programs", "wallet", "dashboard", "settings", "all_access")
	oneOf("permission_level", "read", "write", "admin", "full")
	oneOf("campaign_status", "draft", "active", "expired")
	oneOf("enrollment_status", "pending", "redeemed", "expired")
	oneOf("partner_status", "active", "inactive")
	oneOf("withdrawal_method", "mpesa", "bank", "paybill", "till")

	// Wallet PINs are exactly four digits.
	validate.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if len(v) != 4 {
			return false
		}
		for _, r := range v {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "uuid":
			errors[field] = "Invalid identifier"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "permission_category":
			errors[field] = "Invalid category. Must be: users, campaigns, programs, wallet, dashboard, settings, or all_access"
		case "permission_level":
			errors[field] = "Invalid level. Must be: read, write, admin, or full"
		case "campaign_status":
			errors[field] = "Invalid status. Must be: draft, active, or expired"
		case "enrollment_status":
			errors[field] = "Invalid status. Must be: pending, redeemed, or expired"
		case "partner_status":
			errors[field] = "Invalid status. Must be: active or inactive"
		case "withdrawal_method":
			errors[field] = "Invalid withdrawal method. Must be: mpesa, bank, paybill, or till"
		case "pin":
			errors[field] = "PIN must be exactly 4 digits"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
