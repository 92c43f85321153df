package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/fitgain-payments/api"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired       = "is required"
	ErrMoney          = "must be a positive amount with at most two decimal places"
	ErrAccountNumber  = "must be a bank account number of 6 to 34 letters or digits"
	ErrRefundAction   = "must be either approve or reject"
	ErrDefaultInvalid = "is invalid"
)

var accountNumberRgx = regexp.MustCompile(`^[A-Za-z0-9]{6,34}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	validator.RegisterValidation("money", validateMoney)
	validator.RegisterValidation("account_number", validateAccountNumber)
	validator.RegisterValidation("refund_action", validateRefundAction)

	return validator
}

func validateMoney(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return amount.IsPositive() && amount.Equal(amount.Truncate(2))
}

func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberRgx.MatchString(fl.Field().String())
}

func validateRefundAction(fl validator.FieldLevel) bool {
	action, ok := fl.Field().Interface().(api.RefundAction)
	if !ok {
		return false
	}

	return action == api.Approve || action == api.Reject
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "money":
		return ErrMoney
	case "account_number":
		return ErrAccountNumber
	case "refund_action":
		return ErrRefundAction
	default:
		return ErrDefaultInvalid
	}
}
