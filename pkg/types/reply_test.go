package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestKind_Valid(t *testing.T) {
	assert.True(t, RequestSummary.Valid())
	assert.True(t, RequestEssence.Valid())
	assert.False(t, RequestKind("GET_TEXT").Valid())
	assert.False(t, RequestKind("").Valid())
}

func TestPopupReply_SummaryFieldCarriesText(t *testing.T) {
	t.Run("success has no error field", func(t *testing.T) {
		data, err := json.Marshal(OkReply("A greeting."))
		require.NoError(t, err)
		assert.JSONEq(t, `{"summary":"A greeting."}`, string(data))
	})

	t.Run("failure keeps the message in summary", func(t *testing.T) {
		reply := ErrReply(ErrorKindExtraction, "Error: no extractable text found")
		assert.True(t, reply.IsError())

		var legacy struct {
			Summary string `json:"summary"`
		}
		data, err := json.Marshal(reply)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &legacy))
		assert.Equal(t, "Error: no extractable text found", legacy.Summary)
	})
}

func TestPageTextReply_ExclusiveFields(t *testing.T) {
	data, err := json.Marshal(TextReply("Hello world."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Hello world."}`, string(data))

	data, err = json.Marshal(ErrorReply("no extractable text found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"no extractable text found"}`, string(data))
}
