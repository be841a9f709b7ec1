package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Commands understood by the dispatcher.
const (
	CommandAnalyze        = "analyze"
	CommandGenerateReport = "generate_report"
	CommandMatchScore     = "match_score"
)

// Request is the single document read from the input. Command is untyped on
// purpose: callers send strings, but anything else must still produce a
// readable unknown-command reply instead of a parse failure. Data stays raw
// here so an unknown command never trips over a malformed data value.
type Request struct {
	Command any             `json:"command"`
	Data    json.RawMessage `json:"data"`
}

// RequestData carries the operation payloads. The dispatcher forwards them
// verbatim; each operation decides what it needs and how strictly to read it.
type RequestData struct {
	Creator  json.RawMessage `json:"creator"`
	Campaign json.RawMessage `json:"campaign"`
	Analysis json.RawMessage `json:"analysis"`
}

// DecodeData reads the data object. Absent and null both mean an empty data
// object; anything else must be an object.
func (r *Request) DecodeData() (*RequestData, error) {
	data := &RequestData{}

	trimmed := bytes.TrimSpace(r.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return data, nil
	}

	if err := json.Unmarshal(trimmed, data); err != nil {
		return nil, fmt.Errorf("parsing request data: %w", err)
	}

	return data, nil
}

// CommandLabel renders a command value for the unknown-command reply. An
// absent command reads "null", matching its JSON spelling.
func CommandLabel(command any) string {
	switch v := command.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(data)
	}
}
