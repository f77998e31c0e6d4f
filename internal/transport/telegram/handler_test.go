package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
	broadcastDomain "github.com/reshetovitsme/support-relay-bot/internal/modules/broadcast/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplySupported(t *testing.T) {
	tests := []struct {
		name string
		msg  *models.Message
		want bool
	}{
		{"text", &models.Message{Text: "hi"}, true},
		{"photo", &models.Message{Photo: []models.PhotoSize{{FileID: "p"}}}, true},
		{"video", &models.Message{Video: &models.Video{FileID: "v"}}, true},
		{"document", &models.Message{Document: &models.Document{FileID: "d"}}, true},
		{"sticker", &models.Message{Sticker: &models.Sticker{FileID: "s"}}, true},
		{"voice message", &models.Message{Voice: &models.Voice{FileID: "x"}}, false},
		{"empty", &models.Message{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, replySupported(tt.msg))
		})
	}
}

func TestParseTargetID(t *testing.T) {
	tests := []struct {
		text   string
		wantID int64
		wantOK bool
	}{
		{"/addadmin 4242", 4242, true},
		{"/deladmin 1", 1, true},
		{"/addadmin", 0, false},
		{"/addadmin abc", 0, false},
		{"/addadmin -5", 0, false},
		{"/addadmin 0", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseTargetID(tt.text)
		if ok != tt.wantOK || id != tt.wantID {
			t.Errorf("parseTargetID(%q) = (%d, %v), want (%d, %v)", tt.text, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestButtonMarkup(t *testing.T) {
	assert.Nil(t, buttonMarkup(nil))

	markup := buttonMarkup([]broadcastDomain.Button{
		{Label: "Shop", URL: "https://x.com"},
		{Label: "Support", URL: "https://y.com"},
	})

	keyboard, ok := markup.(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, keyboard.InlineKeyboard, 2)
	assert.Equal(t, "Shop", keyboard.InlineKeyboard[0][0].Text)
	assert.Equal(t, "https://y.com", keyboard.InlineKeyboard[1][0].URL)
}
