package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	broadcastDomain "github.com/reshetovitsme/support-relay-bot/internal/modules/broadcast/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Sender delivers broadcast content through the Telegram bot API. The
// bot is attached after construction because the bot itself is built
// with the handler already wired in.
type Sender struct {
	bot *bot.Bot
}

// NewSender creates a new broadcast sender
func NewSender() *Sender {
	return &Sender{}
}

// SetBot attaches the bot once it has been created
func (s *Sender) SetBot(b *bot.Bot) {
	s.bot = b
}

func (s *Sender) SendText(ctx context.Context, chatID int64, text string, buttons []broadcastDomain.Button) error {
	if s.bot == nil {
		return oops.Errorf("bot not initialized")
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: buttonMarkup(buttons),
	})
	return err
}

func (s *Sender) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, buttons []broadcastDomain.Button) error {
	if s.bot == nil {
		return oops.Errorf("bot not initialized")
	}

	_, err := s.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileString{Data: fileID},
		Caption:     caption,
		ReplyMarkup: buttonMarkup(buttons),
	})
	return err
}

// buttonMarkup renders button descriptors as an inline keyboard, one
// button per row. Returns nil markup for an empty set so plain sends
// carry no keyboard.
func buttonMarkup(buttons []broadcastDomain.Button) models.ReplyMarkup {
	if len(buttons) == 0 {
		return nil
	}

	rows := lo.Map(buttons, func(b broadcastDomain.Button, _ int) []models.InlineKeyboardButton {
		return []models.InlineKeyboardButton{{Text: b.Label, URL: b.URL}}
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
