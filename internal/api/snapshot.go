package api

import (
	"bytes"
	"encoding/json"
)

// GetSnapshot fetches the profile's raw state snapshot. ok is false when the
// remote has no snapshot yet: the reference server answers an empty JSON
// object in that case, and some deployments answer 404; both count as
// absent.
func (c *Client) GetSnapshot() (data json.RawMessage, ok bool, err error) {
	var raw json.RawMessage
	if err := c.get("/api/sync/"+c.profile, &raw); err != nil {
		if apiErr, isAPI := IsAPIError(err); isAPI && apiErr.IsNotFound() {
			return nil, false, nil
		}
		return nil, false, err
	}
	if isEmptyObject(raw) {
		return nil, false, nil
	}
	return raw, true, nil
}

// PutSnapshot stores the serialized state as the profile's snapshot,
// replacing whatever was there.
func (c *Client) PutSnapshot(data []byte) error {
	return c.post("/api/sync/"+c.profile, json.RawMessage(data), nil)
}

// FactoryResetResult reports how many persisted artifacts were deleted.
type FactoryResetResult struct {
	Deleted int `json:"deleted"`
}

// FactoryReset deletes every persisted artifact for the profile.
func (c *Client) FactoryReset() (FactoryResetResult, error) {
	var res FactoryResetResult
	if err := c.post("/api/sync/factory-reset", nil, &res); err != nil {
		return FactoryResetResult{}, err
	}
	return res, nil
}

// isEmptyObject reports whether raw is {}, modulo whitespace.
func isEmptyObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	if trimmed[0] != '{' {
		return false
	}
	inner := bytes.TrimSpace(trimmed[1 : len(trimmed)-1])
	return trimmed[len(trimmed)-1] == '}' && len(inner) == 0
}
