package intake

import (
	"testing"

	"github.com/alfazaa/intake/internal/model"
)

func validIntake() model.Intake {
	return model.Intake{
		DriverName:    "Ahmed",
		DriverID:      "12345678901",
		CustomerName:  "Sara",
		CustomerPhone: "55512345",
		VehiclePlate:  "12345",
		VehicleColor:  "White",
		VehicleType:   model.VehicleSedan,
	}
}

func TestValidateValid(t *testing.T) {
	errs := Validate(validIntake())
	if !errs.Valid() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateAllEmpty(t *testing.T) {
	errs := Validate(model.Intake{})
	required := []Field{
		FieldDriverName, FieldDriverID, FieldCustomerName,
		FieldCustomerPhone, FieldVehiclePlate, FieldVehicleColor,
	}
	if len(errs) != len(required) {
		t.Errorf("expected %d errors, got %d: %v", len(required), len(errs), errs)
	}
	for _, f := range required {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected error for %s", f)
		}
	}
	if errs[FieldDriverID] != "Driver ID is required" {
		t.Errorf("unexpected driverId message %q", errs[FieldDriverID])
	}
}

func TestValidateWhitespaceIsBlank(t *testing.T) {
	in := validIntake()
	in.DriverName = "   "
	in.VehicleColor = "\t"
	errs := Validate(in)
	if errs[FieldDriverName] != "Driver name is required" {
		t.Errorf("driverName: got %q", errs[FieldDriverName])
	}
	if errs[FieldVehicleColor] != "Vehicle color is required" {
		t.Errorf("vehicleColor: got %q", errs[FieldVehicleColor])
	}
}

func TestValidateFieldFormats(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr string
	}{
		{"driver id 11 digits", FieldDriverID, "12345678901", ""},
		{"driver id 10 digits", FieldDriverID, "1234567890", "Driver ID must be exactly 11 digits"},
		{"driver id 12 digits", FieldDriverID, "123456789012", "Driver ID must be exactly 11 digits"},
		{"driver id letter", FieldDriverID, "1234567890a", "Driver ID must be exactly 11 digits"},
		{"driver id sign", FieldDriverID, "+1234567890", "Driver ID must be exactly 11 digits"},
		{"driver id empty", FieldDriverID, "", "Driver ID is required"},
		{"driver id padded", FieldDriverID, " 12345678901", "Driver ID must be exactly 11 digits"},

		{"phone 8 digits", FieldCustomerPhone, "12345678", ""},
		{"phone 9 digits", FieldCustomerPhone, "123456789", "Phone number must be exactly 8 digits"},
		{"phone 7 digits", FieldCustomerPhone, "1234567", "Phone number must be exactly 8 digits"},
		{"phone dashes", FieldCustomerPhone, "1234-567", "Phone number must be exactly 8 digits"},
		{"phone empty", FieldCustomerPhone, "", "Phone number is required"},

		{"plate 1 digit", FieldVehiclePlate, "7", ""},
		{"plate 7 digits", FieldVehiclePlate, "1234567", ""},
		{"plate 8 digits", FieldVehiclePlate, "12345678", "Plate must be numbers only, max 7 digits"},
		{"plate letters", FieldVehiclePlate, "AB123", "Plate must be numbers only, max 7 digits"},
		{"plate empty", FieldVehiclePlate, "", "Vehicle plate is required"},
		{"plate arabic-indic digits", FieldVehiclePlate, "١٢٣", "Plate must be numbers only, max 7 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validIntake()
			switch tt.field {
			case FieldDriverID:
				in.DriverID = tt.value
			case FieldCustomerPhone:
				in.CustomerPhone = tt.value
			case FieldVehiclePlate:
				in.VehiclePlate = tt.value
			}
			errs := Validate(in)
			if got := errs[tt.field]; got != tt.wantErr {
				t.Errorf("%s=%q: got %q, want %q", tt.field, tt.value, got, tt.wantErr)
			}
			if len(errs) > 1 {
				t.Errorf("expected errors only for %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidateDoesNotTouchOptionalFields(t *testing.T) {
	in := validIntake()
	in.GeneralComments = ""
	in.DamageNotes = nil
	if errs := Validate(in); !errs.Valid() {
		t.Errorf("optional fields must not produce errors: %v", errs)
	}
}
