package importer

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Row is one loosely-typed spreadsheet row, column names matching the
// card field names. Everything arrives as a string; typed parsing
// happens only after the tag checks pass.
type Row struct {
	CardholderName    string `col:"cardholderName" validate:"min=2"`
	BankName          string `col:"bankName" validate:"min=2"`
	MobileNumber      string `col:"mobileNumber" validate:"len=10,number"`
	CardType          string `col:"cardType" validate:"oneof=RUPAY VISA MASTER AMEX"`
	CardVariant       string `col:"cardVariant" validate:"-"`
	CardNumber        string `col:"cardNumber" validate:"len=16,number"`
	ExpiryDate        string `col:"expiryDate" validate:"expiry"`
	CVV               string `col:"cvv" validate:"number,min=3,max=4"`
	CardLimit         string `col:"cardLimit" validate:"required,numeric"`
	BillAmount        string `col:"billAmount" validate:"required,numeric"`
	BillDate          string `col:"billDate" validate:"required"`
	DueDate           string `col:"dueDate" validate:"required"`
	BirthDate         string `col:"birthDate" validate:"-"`
	CardPIN           string `col:"cardPin" validate:"omitempty,len=4,number"`
	AppPIN            string `col:"appPin" validate:"omitempty,len=4,number"`
	IFSCCode          string `col:"ifscCode" validate:"-"`
	StatementPassword string `col:"statementPassword" validate:"-"`
}

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// newValidator builds the row validator: field names reported from the
// col tag, plus the MM/YY expiry check.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("col")
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	return v
}

// messageFor renders a field error in plain words.
func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "cardholderName":
		return "name must be at least 2 characters"
	case "bankName":
		return "bank name must be at least 2 characters"
	case "mobileNumber":
		return "mobile number must be exactly 10 digits"
	case "cardType":
		return "card type must be one of RUPAY, VISA, MASTER, AMEX"
	case "cardNumber":
		return "card number must be exactly 16 digits"
	case "expiryDate":
		return "expiry date must be in MM/YY format"
	case "cvv":
		return "cvv must be 3 or 4 digits"
	case "cardLimit":
		return "card limit must be a number"
	case "billAmount":
		return "bill amount must be a number"
	case "cardPin", "appPin":
		return "pin must be 4 digits"
	default:
		if fe.Tag() == "required" {
			return "is required"
		}
		return "is invalid"
	}
}
