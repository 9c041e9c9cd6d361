// Package intake holds the in-progress intake draft, its validation rules and
// the three-step wizard session that turns a draft into a persisted record.
package intake

import (
	"fmt"
	"strings"
	"time"

	"github.com/alfazaa/intake/internal/model"
)

// Field names a scalar draft field.
type Field string

// Draft fields that can be set with UpdateField.
const (
	FieldDriverName      Field = "driverName"
	FieldDriverID        Field = "driverId"
	FieldCustomerName    Field = "customerName"
	FieldCustomerPhone   Field = "customerPhone"
	FieldVehiclePlate    Field = "vehiclePlate"
	FieldVehicleColor    Field = "vehicleColor"
	FieldVehicleType     Field = "vehicleType"
	FieldGeneralComments Field = "generalComments"
)

// Fields lists the scalar draft fields in form order.
var Fields = []Field{
	FieldDriverName, FieldDriverID, FieldCustomerName, FieldCustomerPhone,
	FieldVehiclePlate, FieldVehicleColor, FieldVehicleType, FieldGeneralComments,
}

// ParseField returns the Field named by s.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Draft is the mutable intake form state of one wizard session.
// It changes only through its methods.
type Draft struct {
	fields    model.Intake
	timestamp time.Time
	now       func() time.Time
}

// NewDraft returns a draft with every field at its default.
// now supplies the draft timestamp; nil means time.Now.
func NewDraft(now func() time.Time) *Draft {
	if now == nil {
		now = time.Now
	}
	d := &Draft{now: now}
	d.Reset()
	return d
}

// Fields returns a copy of the draft's fields.
func (d *Draft) Fields() model.Intake {
	return d.fields.Clone()
}

// Timestamp returns when the draft was created or last reset.
func (d *Draft) Timestamp() time.Time {
	return d.timestamp
}

// Get returns the current value of a scalar field.
func (d *Draft) Get(field Field) string {
	switch field {
	case FieldDriverName:
		return d.fields.DriverName
	case FieldDriverID:
		return d.fields.DriverID
	case FieldCustomerName:
		return d.fields.CustomerName
	case FieldCustomerPhone:
		return d.fields.CustomerPhone
	case FieldVehiclePlate:
		return d.fields.VehiclePlate
	case FieldVehicleColor:
		return d.fields.VehicleColor
	case FieldVehicleType:
		return string(d.fields.VehicleType)
	case FieldGeneralComments:
		return d.fields.GeneralComments
	}
	return ""
}

// UpdateField sets one scalar field. Values are not validated here, except that
// the vehicle type must be a known type. The plate is stored upper-cased.
func (d *Draft) UpdateField(field Field, value string) error {
	switch field {
	case FieldDriverName:
		d.fields.DriverName = value
	case FieldDriverID:
		d.fields.DriverID = value
	case FieldCustomerName:
		d.fields.CustomerName = value
	case FieldCustomerPhone:
		d.fields.CustomerPhone = value
	case FieldVehiclePlate:
		d.fields.VehiclePlate = strings.ToUpper(value)
	case FieldVehicleColor:
		d.fields.VehicleColor = value
	case FieldVehicleType:
		vt, err := model.ParseVehicleType(value)
		if err != nil {
			return err
		}
		d.fields.VehicleType = vt
	case FieldGeneralComments:
		d.fields.GeneralComments = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// AddDamageNote appends note. The same part may receive any number of notes.
func (d *Draft) AddDamageNote(note model.DamageNote) {
	d.fields.DamageNotes = append(d.fields.DamageNotes, note)
}

// RemoveDamageNote removes the note at index. Out-of-range indexes are ignored.
func (d *Draft) RemoveDamageNote(index int) {
	notes := d.fields.DamageNotes
	if index < 0 || index >= len(notes) {
		return
	}
	out := make([]model.DamageNote, 0, len(notes)-1)
	out = append(out, notes[:index]...)
	out = append(out, notes[index+1:]...)
	d.fields.DamageNotes = out
}

// DamageNotes returns a copy of the draft's damage notes.
func (d *Draft) DamageNotes() []model.DamageNote {
	out := make([]model.DamageNote, len(d.fields.DamageNotes))
	copy(out, d.fields.DamageNotes)
	return out
}

// HasDamage reports whether the draft has a note for part.
func (d *Draft) HasDamage(part string) bool {
	return model.HasDamage(d.fields.DamageNotes, part)
}

// SetSignature sets the signature. nil clears it.
func (d *Draft) SetSignature(sig *string) {
	if sig == nil {
		d.fields.Signature = nil
		return
	}
	v := *sig
	d.fields.Signature = &v
}

// Reset restores every field to its default and stamps a new timestamp.
func (d *Draft) Reset() {
	d.fields = model.Intake{
		VehicleType: model.VehicleSedan,
		DamageNotes: []model.DamageNote{},
	}
	d.timestamp = d.now()
}
