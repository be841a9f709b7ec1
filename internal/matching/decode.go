package matching

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// CreatorFromJSON decodes a raw creator payload. Unknown fields are ignored
// and scalar types are coerced, since the payload crosses a runtime boundary
// where numbers may arrive as strings.
func CreatorFromJSON(raw []byte) (*Creator, error) {
	creator := &Creator{}
	if err := decodePayload("creator", raw, creator); err != nil {
		return nil, err
	}

	return creator, nil
}

// CampaignFromJSON decodes a raw campaign payload.
func CampaignFromJSON(raw []byte) (*Campaign, error) {
	campaign := &Campaign{}
	if err := decodePayload("campaign", raw, campaign); err != nil {
		return nil, err
	}

	return campaign, nil
}

// AnalysisFromJSON decodes a previously produced analysis payload.
func AnalysisFromJSON(raw []byte) (*Analysis, error) {
	analysis := &Analysis{}
	if err := decodePayload("analysis", raw, analysis); err != nil {
		return nil, err
	}

	return analysis, nil
}

func decodePayload(name string, raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%s payload is required", name)
	}

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("parsing %s payload: %w", name, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("building %s decoder: %w", name, err)
	}

	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("decoding %s payload: %w", name, err)
	}

	return nil
}
