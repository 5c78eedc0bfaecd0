package checkout

import (
	"github.com/go-playground/validator/v10"
)

// Form is the structured shipping and payment form submitted at checkout.
type Form struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,min=5"`
	City       string `json:"city" validate:"required,min=2"`
	ZipCode    string `json:"zipCode" validate:"required,min=4"`
	CardNumber string `json:"cardNumber" validate:"required,len=16,number"`
	ExpiryDate string `json:"expiryDate" validate:"required,datetime=01/06"`
	CVV        string `json:"cvv" validate:"required,number,min=3,max=4"`
}

// FieldErrors maps a form field to its human-readable validation message.
type FieldErrors map[string]string

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldMessages = map[string]string{
	"Name":       "Name must be at least 2 characters.",
	"Email":      "Please enter a valid email address.",
	"Address":    "Address must be at least 5 characters.",
	"City":       "City must be at least 2 characters.",
	"ZipCode":    "Zip code must be at least 4 characters.",
	"CardNumber": "Card number must be 16 digits.",
	"ExpiryDate": "Expiry date must be in MM/YY format.",
	"CVV":        "CVV must be 3 or 4 digits.",
}

var fieldJSONNames = map[string]string{
	"Name":       "name",
	"Email":      "email",
	"Address":    "address",
	"City":       "city",
	"ZipCode":    "zipCode",
	"CardNumber": "cardNumber",
	"ExpiryDate": "expiryDate",
	"CVV":        "cvv",
}

// Validate checks every field and returns all failing fields with specific
// messages, or nil when the form is valid.
func (f Form) Validate() FieldErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": "invalid submission"}
	}

	out := make(FieldErrors, len(errs))
	for _, fe := range errs {
		field := fe.StructField()
		out[fieldJSONNames[field]] = fieldMessages[field]
	}
	return out
}
