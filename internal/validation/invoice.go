package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CreateInvoiceInput is the shape accepted by the create operation. The id
// and issuance date are structurally absent: the store assigns the id and the
// pipeline stamps the date.
type CreateInvoiceInput struct {
	CustomerID string          `form:"customerId" validate:"required"`
	Amount     decimal.Decimal `form:"amount" validate:"-"`
	Status     string          `form:"status" validate:"required,oneof=pending paid"`
}

// UpdateInvoiceInput is the shape accepted by the update operation. The id
// arrives as a routing parameter and the issuance date is never updatable, so
// neither is representable here.
type UpdateInvoiceInput struct {
	CustomerID string          `form:"customerId" validate:"required"`
	Amount     decimal.Decimal `form:"amount" validate:"-"`
	Status     string          `form:"status" validate:"required,oneof=pending paid"`
}

// Error enumerates the form fields that failed validation and why.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid invoice input: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// ParseCreateInvoice checks a raw form-field mapping against the create shape
// and returns the typed input, or an *Error naming every invalid field.
func ParseCreateInvoice(raw map[string]string) (*CreateInvoiceInput, error) {
	in := &CreateInvoiceInput{
		CustomerID: raw["customerId"],
		Status:     raw["status"],
	}
	fields := make(map[string]string)
	in.Amount = parseAmount(raw["amount"], fields)
	collectFieldErrors(validate.Struct(in), fields)
	if len(fields) > 0 {
		return nil, &Error{Fields: fields}
	}
	return in, nil
}

// ParseUpdateInvoice checks a raw form-field mapping against the update shape.
func ParseUpdateInvoice(raw map[string]string) (*UpdateInvoiceInput, error) {
	in := &UpdateInvoiceInput{
		CustomerID: raw["customerId"],
		Status:     raw["status"],
	}
	fields := make(map[string]string)
	in.Amount = parseAmount(raw["amount"], fields)
	collectFieldErrors(validate.Struct(in), fields)
	if len(fields) > 0 {
		return nil, &Error{Fields: fields}
	}
	return in, nil
}

func parseAmount(raw string, fields map[string]string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		fields["amount"] = "must be a number"
		return decimal.Zero
	}
	return amount
}

func collectFieldErrors(err error, fields map[string]string) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["input"] = err.Error()
		return
	}
	for _, fe := range verrs {
		fields[fe.Field()] = reason(fe)
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return "is invalid"
	}
}
