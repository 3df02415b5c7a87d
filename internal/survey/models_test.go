package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-portal/survey-portal-backend/internal/survey/export"
)

func TestStandardObservations(t *testing.T) {
	labels := StandardObservations()
	require.Len(t, labels, 17)
	assert.Equal(t, "Refrigeration Unit (Out Side)", labels[0])
	assert.Equal(t, "Internal Door", labels[16])

	labels[0] = "changed"
	assert.Equal(t, "Refrigeration Unit (Out Side)", StandardObservations()[0])
}

func TestSurveyFormReportData(t *testing.T) {
	form := SurveyForm{
		ContainerNo: " MSKU 1234567 ",
		Payload:     "30480 / 3900 KG",
		SetTemp:     "-18C / 90%",
		BookingNo:   "BK-88, MAERSK",
		Shipper:     "ACME Exports",
		Remarks:     "Container found clean and dry.",
		Observations: []export.Observation{
			{Label: "Outside Doors", Status: "OK"},
		},
	}

	data := form.ReportData()
	assert.Equal(t, "MSKU 1234567", data.Reference)
	assert.Equal(t, []export.Field{
		{Label: "CONTAINER NO.", Value: "MSKU 1234567"},
		{Label: "CON PAYLOAD / TARE WT", Value: "30480 / 3900 KG"},
		{Label: "SET TEMP / HUMIDITY", Value: "-18C / 90%"},
		{Label: "BKG NO, M/LINE", Value: "BK-88, MAERSK"},
		{Label: "MFG DATE", Value: ""},
	}, data.Fields)
	assert.Equal(t, form.Observations, data.Observations)
	assert.Equal(t, "Container found clean and dry.", data.Remarks)
	assert.Equal(t, export.Footer{
		Shipper:    "ACME Exports",
		Disclaimer: export.DefaultDisclaimer,
		IssuedFor:  DefaultIssuedFor,
	}, data.Footer)
}

func TestSurveyFormDefaults(t *testing.T) {
	data := SurveyForm{SurveyDate: "2024-03-01"}.ReportData()

	require.Len(t, data.Observations, 17)
	for i, o := range data.Observations {
		assert.Equal(t, standardObservations[i], o.Label)
		assert.Empty(t, o.Status)
	}
	assert.Equal(t, "2024-03-01", data.Fields[1].Value)
	assert.Empty(t, data.Reference)
}

func TestSurveyFormIssuedFor(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"absent", `{"container_no":"X"}`, DefaultIssuedFor},
		{"explicit empty", `{"issued_for":""}`, ""},
		{"custom", `{"issued_for":" M/S Harbour Agency "}`, "M/S Harbour Agency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form SurveyForm
			require.NoError(t, json.Unmarshal([]byte(tt.body), &form))
			assert.Equal(t, tt.want, form.ReportData().Footer.IssuedFor)
		})
	}
}
