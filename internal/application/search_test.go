package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHitIDs(t *testing.T) {
	t.Run("reads the _id metadata field of each hit", func(t *testing.T) {
		body := `{
			"took": 2,
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_index": "discussions", "_id": "d1", "_score": 1.7, "_source": {"title": "Examen"}},
					{"_index": "discussions", "_id": "d2", "_score": 0.9, "_source": {"title": "Partiels"}}
				]
			}
		}`
		ids, err := decodeHitIDs(strings.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, []string{"d1", "d2"}, ids)
	})

	t.Run("no hits", func(t *testing.T) {
		ids, err := decodeHitIDs(strings.NewReader(`{"hits":{"hits":[]}}`))
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := decodeHitIDs(strings.NewReader(`{"hits":`))
		assert.Error(t, err)
	})
}
