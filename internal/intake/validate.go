package intake

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/alfazaa/intake/internal/model"
)

// Errors maps a field to its validation message. A field without an entry is valid.
type Errors map[Field]string

// Valid reports whether there are no errors.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// partyInfo carries the rules of the first wizard step. Tags run left to right
// and the first failing tag decides the field's message.
type partyInfo struct {
	DriverName    string `json:"driverName" validate:"notblank"`
	DriverID      string `json:"driverId" validate:"notblank,digits,len=11"`
	CustomerName  string `json:"customerName" validate:"notblank"`
	CustomerPhone string `json:"customerPhone" validate:"notblank,digits,len=8"`
	VehiclePlate  string `json:"vehiclePlate" validate:"notblank,digits,min=1,max=7"`
	VehicleColor  string `json:"vehicleColor" validate:"notblank"`
}

// messages holds the required message and the format message of each field.
var messages = map[Field][2]string{
	FieldDriverName:    {"Driver name is required", ""},
	FieldDriverID:      {"Driver ID is required", "Driver ID must be exactly 11 digits"},
	FieldCustomerName:  {"Customer name is required", ""},
	FieldCustomerPhone: {"Phone number is required", "Phone number must be exactly 8 digits"},
	FieldVehiclePlate:  {"Vehicle plate is required", "Plate must be numbers only, max 7 digits"},
	FieldVehicleColor:  {"Vehicle color is required", ""},
}

var digitsRe = regexp.MustCompile(`^[0-9]+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		})
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return digitsRe.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// Validate checks the party and vehicle fields collected on the first wizard step.
// It has no side effects.
func Validate(in model.Intake) Errors {
	out := Errors{}

	err := validatorInstance().Struct(partyInfo{
		DriverName:    in.DriverName,
		DriverID:      in.DriverID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		VehiclePlate:  in.VehiclePlate,
		VehicleColor:  in.VehicleColor,
	})
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a broken rule set.
		panic(err)
	}
	for _, fe := range verrs {
		field := Field(fe.Field())
		msg := messages[field]
		if fe.Tag() == "notblank" || msg[1] == "" {
			out[field] = msg[0]
		} else {
			out[field] = msg[1]
		}
	}
	return out
}
