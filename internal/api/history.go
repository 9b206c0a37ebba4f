package api

import "github.com/sproutdesk/sproutdesk/internal/model"

// HistoryRecord is a converted todo as stored in the append-only history
// log, stamped with the moment of conversion.
type HistoryRecord struct {
	model.Todo
	ConvertedAt int64 `json:"convertedAt"`
}

// appendResult is the store's acknowledgement of a history append.
type appendResult struct {
	Added int `json:"added"`
}

// GetHistory fetches the profile's full conversion history.
func (c *Client) GetHistory() ([]HistoryRecord, error) {
	var records []HistoryRecord
	if err := c.get("/api/sync/recodes/"+c.profile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendHistory appends one record to the history log and returns how many
// records the store accepted.
func (c *Client) AppendHistory(rec HistoryRecord) (int, error) {
	var res appendResult
	if err := c.post("/api/sync/recodes/"+c.profile, rec, &res); err != nil {
		return 0, err
	}
	return res.Added, nil
}

// AppendHistoryBatch appends several records in one call.
func (c *Client) AppendHistoryBatch(recs []HistoryRecord) (int, error) {
	var res appendResult
	if err := c.post("/api/sync/recodes/"+c.profile, recs, &res); err != nil {
		return 0, err
	}
	return res.Added, nil
}
