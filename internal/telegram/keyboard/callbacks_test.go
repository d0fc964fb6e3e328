package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	data, err := ParseCallback(EncodeCallback(ActionDownload, "pdf"))
	require.NoError(t, err)
	assert.Equal(t, ActionDownload, data.Action)
	assert.Equal(t, "pdf", data.Value)

	_, err = ParseCallback("garbage")
	assert.Error(t, err)
}

func TestAnswerKeyboardCallbacksParse(t *testing.T) {
	kb := NewBuilder().AnswerKeyboard()
	require.Len(t, kb.InlineKeyboard, 1)

	for _, btn := range kb.InlineKeyboard[0] {
		require.NotNil(t, btn.CallbackData)
		data, err := ParseCallback(*btn.CallbackData)
		require.NoError(t, err)
		assert.Equal(t, ActionSession, data.Action)
	}
}
