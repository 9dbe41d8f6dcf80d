package application

import (
	"encoding/json"
	"io"
)

// decodeHitIDs extracts document ids from an Elasticsearch search response
// body. The id rides in the _id metadata field of each hit, not in _source.
func decodeHitIDs(r io.Reader) ([]string, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
