package survey

import (
	"strings"

	"survey-portal/survey-portal-backend/internal/survey/export"
)

// DefaultIssuedFor is printed under the disclaimer unless the form overrides it.
const DefaultIssuedFor = "M/S OMKAR Marine Services"

var standardObservations = []string{
	"Refrigeration Unit (Out Side)",
	"Outside Doors",
	"Status of Lock / Latch",
	"Right Side of Container (Exterior)",
	"Left Side of Container (Exterior)",
	"Any Rusting outside the container",
	"Right Side of Container (Interior)",
	"Left Side of Container (Interior)",
	"Water Dripping: Present/Absent",
	"Any Rusting Inside the container",
	"Ceiling/Roof (Exterior)",
	"Ceiling/Roof (Inside)",
	"Floor (Inside)",
	"Smell (Container Inside)",
	"Ventilation Unit",
	"Temperature & Humidity",
	"Internal Door",
}

// StandardObservations returns the checklist every empty container survey walks through.
func StandardObservations() []string {
	return append([]string(nil), standardObservations...)
}

// SurveyForm is the surveyor's input as submitted by the portal.
type SurveyForm struct {
	ContainerNo string `json:"container_no"`
	Payload     string `json:"payload"`
	// SurveyDate is what older clients send in place of Payload.
	SurveyDate string  `json:"survey_date,omitempty"`
	SetTemp    string  `json:"set_temp"`
	BookingNo  string  `json:"bkg_no"`
	MfgDate    string  `json:"mfg_date"`
	Shipper    string  `json:"shipper"`
	Account    string  `json:"ac"`
	IssuedFor  *string `json:"issued_for,omitempty"`
	Remarks    string  `json:"remarks"`

	Observations []export.Observation `json:"observations"`
}

// ReportData maps the form onto the report layout.
func (f SurveyForm) ReportData() *export.ReportData {
	payload := f.Payload
	if payload == "" {
		payload = f.SurveyDate
	}

	issuedFor := DefaultIssuedFor
	if f.IssuedFor != nil {
		issuedFor = strings.TrimSpace(*f.IssuedFor)
	}

	observations := f.Observations
	if len(observations) == 0 {
		observations = make([]export.Observation, len(standardObservations))
		for i, label := range standardObservations {
			observations[i] = export.Observation{Label: label}
		}
	}

	return &export.ReportData{
		Reference: strings.TrimSpace(f.ContainerNo),
		Fields: []export.Field{
			{Label: "CONTAINER NO.", Value: strings.TrimSpace(f.ContainerNo)},
			{Label: "CON PAYLOAD / TARE WT", Value: strings.TrimSpace(payload)},
			{Label: "SET TEMP / HUMIDITY", Value: strings.TrimSpace(f.SetTemp)},
			{Label: "BKG NO, M/LINE", Value: strings.TrimSpace(f.BookingNo)},
			{Label: "MFG DATE", Value: strings.TrimSpace(f.MfgDate)},
		},
		Observations: observations,
		Remarks:      f.Remarks,
		Footer: export.Footer{
			Shipper:    strings.TrimSpace(f.Shipper),
			Account:    strings.TrimSpace(f.Account),
			Disclaimer: export.DefaultDisclaimer,
			IssuedFor:  issuedFor,
		},
	}
}

// ReportRequest is one report to render with its uploaded photos.
type ReportRequest struct {
	Form   SurveyForm
	Images []export.AttachmentSource
}

// AssetPaths locates the fixed assets inside the configured source.
type AssetPaths struct {
	Background string `json:"background"`
	Signature  string `json:"signature"`
}
