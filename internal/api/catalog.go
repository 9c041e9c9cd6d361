package api

import (
	"net/http"

	"github.com/alfazaa/intake/internal/model"
)

type partResponse struct {
	Number int        `json:"number"`
	Name   string     `json:"name"`
	Screen model.Rect `json:"screen"`
	Print  model.Rect `json:"print"`
	Tire   bool       `json:"tire"`
}

type catalogResponse struct {
	Parts        []partResponse      `json:"parts"`
	AspectRatio  float64             `json:"aspectRatio"`
	DamageKinds  []model.DamageKind  `json:"damageKinds"`
	VehicleTypes []model.VehicleType `json:"vehicleTypes"`
}

// Catalog handles GET /api/catalog: the diagram parts and the choice lists.
func Catalog(w http.ResponseWriter, r *http.Request) {
	parts := model.Parts()
	resp := catalogResponse{
		Parts:        make([]partResponse, len(parts)),
		AspectRatio:  model.DiagramAspectRatio,
		DamageKinds:  model.DamageKinds,
		VehicleTypes: model.VehicleTypes,
	}
	for i, p := range parts {
		resp.Parts[i] = partResponse{Number: i + 1, Name: p.Name, Screen: p.Screen, Print: p.Print, Tire: p.Tire}
	}
	jsonResponse(w, http.StatusOK, resp)
}
