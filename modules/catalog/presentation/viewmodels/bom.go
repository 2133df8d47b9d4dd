package viewmodels

// The import session travels to the caller as JSON and comes back on the
// next step, so these structs are both the response body and the
// round-tripped session state.

type BomImportColumn struct {
	Index     int    `json:"index"`
	Header    string `json:"header"`
	Field     string `json:"field,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type BomImportCandidate struct {
	PartID uint   `json:"partId"`
	Label  string `json:"label"`
	Rank   int    `json:"rank"`
}

type BomImportRow struct {
	Index      int                  `json:"index"`
	Cells      []string             `json:"cells"`
	PartID     uint                 `json:"partId,omitempty"`
	PartName   string               `json:"partName,omitempty"`
	PartIPN    string               `json:"partIpn,omitempty"`
	Quantity   string               `json:"quantity"`
	Reference  string               `json:"reference,omitempty"`
	Overage    string               `json:"overage,omitempty"`
	Note       string               `json:"note,omitempty"`
	Candidates []BomImportCandidate `json:"candidates,omitempty"`
	Errors     map[string]string    `json:"errors,omitempty"`
}

type BomImportSession struct {
	ParentPartID  uint              `json:"parentPartId"`
	Stage         string            `json:"stage"`
	Columns       []BomImportColumn `json:"columns"`
	MissingFields []string          `json:"missingFields,omitempty"`
	Rows          []BomImportRow    `json:"rows"`
	FileError     string            `json:"fileError,omitempty"`
}

type BomCommitResult struct {
	Committed    bool `json:"committed"`
	ParentPartID uint `json:"parentPartId"`
	ItemCount    int  `json:"itemCount"`
}

type BomItem struct {
	ID           uint   `json:"id"`
	ParentPartID uint   `json:"parentPartId"`
	SubPartID    uint   `json:"subPartId"`
	SubPartName  string `json:"subPartName,omitempty"`
	Quantity     string `json:"quantity"`
	Overage      string `json:"overage,omitempty"`
	Reference    string `json:"reference,omitempty"`
	Note         string `json:"note,omitempty"`
}

type Part struct {
	ID           uint   `json:"id"`
	IPN          string `json:"ipn,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Units        string `json:"units,omitempty"`
	Trackable    bool   `json:"trackable"`
	Assembly     bool   `json:"assembly"`
	Component    bool   `json:"component"`
	Active       bool   `json:"active"`
	BomValidated bool   `json:"bomValidated"`
}
