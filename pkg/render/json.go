package render

import (
	"encoding/json"

	"github.com/teleprompter-plus/precheck/pkg/report"
)

// JSON renders a report as structured JSON for automation.
type JSON struct {
	Tool    string
	Version string
}

// NewJSON creates a JSON renderer.
func NewJSON(tool, version string) *JSON {
	return &JSON{Tool: tool, Version: version}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Tool    string         `json:"tool"`
	Version string         `json:"version,omitempty"`
	Status  string         `json:"status"`
	Banner  string         `json:"banner"`
	Report  *report.Report `json:"report"`
}

// Render formats the report as indented JSON.
func (j *JSON) Render(r *report.Report) string {
	out := jsonOutput{
		Tool:    j.Tool,
		Version: j.Version,
		Status:  r.Status(),
		Banner:  r.Banner(),
		Report:  r,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
