package export

// Field is one label/value pair of the identification block.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Observation is one row of the survey observation table.
type Observation struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// Blank reports whether the row carries no content and is left out of the table.
func (o Observation) Blank() bool {
	return o.Label == "" && o.Status == ""
}

// Footer closes the report body.
type Footer struct {
	Shipper    string `json:"shipper,omitempty"`
	Account    string `json:"account,omitempty"`
	Disclaimer string `json:"disclaimer"`
	IssuedFor  string `json:"issued_for,omitempty"`
}

// ReportData is the complete content of one survey report.
type ReportData struct {
	// Reference identifies the surveyed unit and names the output file.
	Reference    string        `json:"reference"`
	Fields       []Field       `json:"fields"`
	Observations []Observation `json:"observations"`
	Remarks      string        `json:"remarks"`
	Footer       Footer        `json:"footer"`
}

// GalleryImage is a decoded attachment with an optional caption.
type GalleryImage struct {
	Raster *Raster
	Title  string
}

// AssetSet holds every decoded image a report needs. Background is required
// and fixes the page size; Signature may be nil.
type AssetSet struct {
	Background  *Raster
	Signature   *Raster
	Attachments []GalleryImage
	Warnings    []string
}

// Document is the generated report.
type Document struct {
	ID       string
	Data     []byte
	FileName string
	Pages    int
	Warnings []string
}
