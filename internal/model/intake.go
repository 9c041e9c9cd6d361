package model

import (
	"fmt"
	"time"
)

// TimeLayout is the ISO-8601 layout used for every persisted instant.
// Always UTC with millisecond precision so that text ordering matches time ordering.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime formats t in TimeLayout (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses an ISO-8601 instant. Both TimeLayout and RFC 3339 are accepted.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

// VehicleType is the body style selected on the first wizard step.
type VehicleType string

// Vehicle types.
const (
	VehicleSedan  VehicleType = "Sedan"
	VehicleSUV    VehicleType = "SUV"
	VehiclePickup VehicleType = "Pickup"
	VehicleVan    VehicleType = "Van"
	VehicleTruck  VehicleType = "Truck"
	VehicleOther  VehicleType = "Other"
)

// VehicleTypes lists the vehicle types in display order.
var VehicleTypes = []VehicleType{VehicleSedan, VehicleSUV, VehiclePickup, VehicleVan, VehicleTruck, VehicleOther}

// ParseVehicleType returns the VehicleType named by s.
func ParseVehicleType(s string) (VehicleType, error) {
	for _, vt := range VehicleTypes {
		if string(vt) == s {
			return vt, nil
		}
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// DamageKind is the kind of defect recorded against a part.
type DamageKind string

// Damage kinds.
const (
	DamageScratch DamageKind = "Scratch"
	DamageDent    DamageKind = "Dent"
	DamageBroken  DamageKind = "Broken"
	DamageMissing DamageKind = "Missing"
	DamageCracked DamageKind = "Cracked"
	DamagePaint   DamageKind = "Damaged Paint"
)

// DamageKinds lists the damage kinds in display order.
var DamageKinds = []DamageKind{DamageScratch, DamageDent, DamageBroken, DamageMissing, DamageCracked, DamagePaint}

// ParseDamageKind returns the DamageKind named by s.
func ParseDamageKind(s string) (DamageKind, error) {
	for _, k := range DamageKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown damage kind %q", s)
}

// DamageNote is one reported defect on a vehicle part.
type DamageNote struct {
	Part      string     `json:"part"`
	Damage    DamageKind `json:"damage"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// Intake holds the fields collected by the intake wizard.
// It is shared by the in-progress draft and the persisted record.
type Intake struct {
	DriverName      string       `json:"driverName"`
	DriverID        string       `json:"driverId"`
	CustomerName    string       `json:"customerName"`
	CustomerPhone   string       `json:"customerPhone"`
	VehiclePlate    string       `json:"vehiclePlate"`
	VehicleColor    string       `json:"vehicleColor"`
	VehicleType     VehicleType  `json:"vehicleType"`
	DamageNotes     []DamageNote `json:"damageNotes"`
	GeneralComments string       `json:"generalComments"`
	Signature       *string      `json:"signature"`
}

// Clone returns a deep copy of in.
func (in Intake) Clone() Intake {
	out := in
	if in.DamageNotes != nil {
		out.DamageNotes = make([]DamageNote, len(in.DamageNotes))
		copy(out.DamageNotes, in.DamageNotes)
	}
	if in.Signature != nil {
		sig := *in.Signature
		out.Signature = &sig
	}
	return out
}

// IntakeRecord is a finalized, persisted intake. Records are never modified.
type IntakeRecord struct {
	ID string `json:"id"`
	Intake
	CreatedAt time.Time `json:"createdAt"`
	Synced    bool      `json:"synced"`
}

// CreatedAtString returns CreatedAt in TimeLayout.
func (r IntakeRecord) CreatedAtString() string {
	return FormatTime(r.CreatedAt)
}

// ReportKind selects the time window of an aggregate report.
type ReportKind string

// Report kinds.
const (
	ReportToday    ReportKind = "today"
	ReportPastWeek ReportKind = "week"
	ReportFull     ReportKind = "full"
)

// ParseReportKind returns the ReportKind named by s.
func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case ReportToday, ReportPastWeek, ReportFull:
		return ReportKind(s), nil
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

// Title returns the report heading for k.
func (k ReportKind) Title() string {
	switch k {
	case ReportToday:
		return "Today Report"
	case ReportPastWeek:
		return "Past Week Report"
	default:
		return "Full Report"
	}
}
