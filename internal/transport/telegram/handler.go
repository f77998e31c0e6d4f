package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	adminService "github.com/reshetovitsme/support-relay-bot/internal/modules/admin/service"
	broadcastService "github.com/reshetovitsme/support-relay-bot/internal/modules/broadcast/service"
	relayRepo "github.com/reshetovitsme/support-relay-bot/internal/modules/relay/repository"
	userService "github.com/reshetovitsme/support-relay-bot/internal/modules/user/service"
	welcomeRepo "github.com/reshetovitsme/support-relay-bot/internal/modules/welcome/repository"
	"github.com/reshetovitsme/support-relay-bot/internal/shared/config"
	sharedErrors "github.com/reshetovitsme/support-relay-bot/internal/shared/errors"
)

// confirmationTTL is how long the "forwarded" acknowledgment stays
// visible before the bot deletes it.
const confirmationTTL = 3 * time.Second

// Handler routes every inbound update: commands first, then staff
// replies in the support chat, then end-user messages that need
// forwarding.
type Handler struct {
	cfg              *config.Config
	userService      *userService.Service
	adminService     *adminService.Service
	welcomeRepo      welcomeRepo.Repository
	anchors          relayRepo.Table
	broadcastService *broadcastService.Service
}

// New creates a new Telegram handler
func New(
	cfg *config.Config,
	userService *userService.Service,
	adminService *adminService.Service,
	welcomeRepo welcomeRepo.Repository,
	anchors relayRepo.Table,
	broadcastService *broadcastService.Service,
) *Handler {
	return &Handler{
		cfg:              cfg,
		userService:      userService,
		adminService:     adminService,
		welcomeRepo:      welcomeRepo,
		anchors:          anchors,
		broadcastService: broadcastService,
	}
}

// RegisterCommands registers bot commands. Registered handlers win over
// the default handler, so a command issued as a reply in the support
// chat is still dispatched as a command.
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypeExact, h.handleBroadcast)
	// Long-standing alias, kept for users trained on the typo
	b.RegisterHandler(bot.HandlerTypeMessageText, "/boardcast", bot.MatchTypeExact, h.handleBroadcast)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, h.handleCancel)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/adminlist", bot.MatchTypeExact, h.handleAdminList)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/addadmin", bot.MatchTypePrefix, h.handleAddAdmin)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/deladmin", bot.MatchTypePrefix, h.handleDelAdmin)
}

// HandleUpdate processes every non-command message
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	// Staff replies come from the support chat and target an anchor
	if msg.Chat.ID == h.cfg.SupportChatID {
		if msg.ReplyToMessage != nil {
			h.handleStaffReply(ctx, b, msg)
		}
		return
	}

	// An admin mid-wizard gets their messages routed into the wizard
	if msg.Chat.Type == "private" && h.broadcastService.Active(msg.From.ID) {
		h.handleWizardStep(ctx, b, msg)
		return
	}

	h.relayToSupport(ctx, b, msg)
}

// relayToSupport forwards an end-user message into the support chat,
// posts an anchor message naming the user, and registers the anchor so
// a staff reply can be routed back.
func (h *Handler) relayToSupport(ctx context.Context, b *bot.Bot, msg *models.Message) {
	userID := msg.From.ID
	h.userService.RecordUser(userID)

	if _, err := b.ForwardMessage(ctx, &bot.ForwardMessageParams{
		ChatID:     h.cfg.SupportChatID,
		FromChatID: msg.Chat.ID,
		MessageID:  msg.ID,
	}); err != nil {
		slog.Error("Failed to forward message to support chat", "error", err, "user_id", userID)
		return
	}

	anchor, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: h.cfg.SupportChatID,
		Text:   fmt.Sprintf("⬇️ Reply to this message to answer the user ⬇️\n(User ID: %d)", userID),
	})
	if err != nil {
		slog.Error("Failed to post anchor message", "error", err, "user_id", userID)
		return
	}

	h.anchors.Create(anchor.ID, userID)

	confirmation, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            "Your message has been forwarded.",
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		slog.Error("Failed to send forwarding confirmation", "error", err, "user_id", userID)
		return
	}

	// The acknowledgment is transient: delete it after a few seconds,
	// whether or not the delete succeeds
	go func() {
		time.Sleep(confirmationTTL)
		if _, err := b.DeleteMessage(context.Background(), &bot.DeleteMessageParams{
			ChatID:    confirmation.Chat.ID,
			MessageID: confirmation.ID,
		}); err != nil {
			slog.Warn("Could not delete confirmation message", "error", err, "user_id", userID)
		}
	}()
}

// handleStaffReply routes a staff reply back to the user whose anchor
// it targets, matching the reply's modality.
func (h *Handler) handleStaffReply(ctx context.Context, b *bot.Bot, msg *models.Message) {
	// Check modality before touching the table so an unsupported reply
	// leaves the mapping intact
	if !replySupported(msg) {
		h.replyToStaff(ctx, b, msg, "Unsupported reply type.")
		return
	}

	anchorID := msg.ReplyToMessage.ID
	userID, ok := h.anchors.ResolveAndConsume(anchorID)
	if !ok {
		h.replyToStaff(ctx, b, msg, "⚠️ Error: Could not find original user.")
		return
	}

	if err := sendReplyContent(ctx, b, userID, msg); err != nil {
		// Restore the mapping so staff can retry after a transient
		// failure (e.g. the user blocked the bot and unblocks later)
		h.anchors.Create(anchorID, userID)
		slog.Error("Failed to send reply to user", "error", err, "user_id", userID)
		h.replyToStaff(ctx, b, msg, fmt.Sprintf("❌ Failed to send message. Error: %v", err))
		return
	}

	h.replyToStaff(ctx, b, msg, "✅ Your reply has been sent.")
}

// replySupported reports whether a staff reply carries a modality the
// bot can forward to a user.
func replySupported(msg *models.Message) bool {
	return msg.Text != "" || len(msg.Photo) > 0 || msg.Video != nil || msg.Sticker != nil || msg.Document != nil
}

// sendReplyContent forwards the reply's content to the user, matching
// its modality: plain text, photo, video or document with caption, or a
// sticker.
func sendReplyContent(ctx context.Context, b *bot.Bot, userID int64, msg *models.Message) error {
	switch {
	case msg.Text != "":
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: userID,
			Text:   msg.Text,
		})
		return err
	case len(msg.Photo) > 0:
		_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  userID,
			Photo:   &models.InputFileString{Data: msg.Photo[len(msg.Photo)-1].FileID},
			Caption: msg.Caption,
		})
		return err
	case msg.Video != nil:
		_, err := b.SendVideo(ctx, &bot.SendVideoParams{
			ChatID:  userID,
			Video:   &models.InputFileString{Data: msg.Video.FileID},
			Caption: msg.Caption,
		})
		return err
	case msg.Sticker != nil:
		_, err := b.SendSticker(ctx, &bot.SendStickerParams{
			ChatID:  userID,
			Sticker: &models.InputFileString{Data: msg.Sticker.FileID},
		})
		return err
	case msg.Document != nil:
		_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   userID,
			Document: &models.InputFileString{Data: msg.Document.FileID},
			Caption:  msg.Caption,
		})
		return err
	}
	return nil
}

func (h *Handler) handleWizardStep(ctx context.Context, b *bot.Bot, msg *models.Message) {
	in := broadcastService.Incoming{
		Text:    msg.Text,
		Caption: msg.Caption,
	}
	if len(msg.Photo) > 0 {
		in.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
	}

	if reply := h.broadcastService.HandleMessage(ctx, msg.From.ID, in); reply != "" {
		h.sendText(ctx, b, msg.Chat.ID, reply)
	}
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := update.Message.From
	if user == nil {
		return
	}
	h.userService.RecordUser(user.ID)

	caption := fmt.Sprintf("👋 Welcome! How can we help you today? %s", user.FirstName)

	fileID, err := h.welcomeRepo.GetFileID()
	if err != nil {
		slog.Error("Failed to read welcome photo ID", "error", err)
	}

	if fileID != "" {
		_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  user.ID,
			Photo:   &models.InputFileString{Data: fileID},
			Caption: caption,
		})
		if err == nil {
			return
		}
		slog.Error("Failed to send cached welcome photo", "error", err, "user_id", user.ID)
		// Fall back to a plain-text greeting
		h.sendText(ctx, b, user.ID, caption)
		return
	}

	if err := h.uploadWelcomePhoto(ctx, b, user.ID, caption); err != nil {
		slog.Error("Failed to upload welcome photo", "error", err, "user_id", user.ID)
		h.sendText(ctx, b, user.ID, caption)
	}
}

// uploadWelcomePhoto sends the welcome image as raw bytes and caches
// the resulting file_id, so the upload happens at most once.
func (h *Handler) uploadWelcomePhoto(ctx context.Context, b *bot.Bot, chatID int64, caption string) error {
	f, err := os.Open(h.cfg.WelcomeImagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	sent, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: filepath.Base(h.cfg.WelcomeImagePath), Data: f},
		Caption: caption,
	})
	if err != nil {
		return err
	}

	if len(sent.Photo) > 0 {
		fileID := sent.Photo[len(sent.Photo)-1].FileID
		if err := h.welcomeRepo.SetFileID(fileID); err != nil {
			slog.Error("Failed to cache welcome photo ID", "error", err)
		}
	}
	return nil
}

func (h *Handler) handleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	adminID := update.Message.From.ID

	if err := h.adminService.RequireAdmin(adminID); err != nil {
		h.sendText(ctx, b, update.Message.Chat.ID, "You are not authorized to use this command.")
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, h.broadcastService.Start(adminID))
}

func (h *Handler) handleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendText(ctx, b, update.Message.Chat.ID, h.broadcastService.Cancel(update.Message.From.ID))
}

func (h *Handler) handleAdminList(ctx context.Context, b *bot.Bot, update *models.Update) {
	callerID := update.Message.From.ID

	if err := h.adminService.RequireAdmin(callerID); err != nil {
		h.sendText(ctx, b, update.Message.Chat.ID, "You are not authorized to use this command.")
		return
	}

	admins, err := h.adminService.LoadAdmins()
	if err != nil {
		slog.Error("Failed to load admins", "error", err)
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ Failed to load the admin list.")
		return
	}

	var text strings.Builder
	text.WriteString("👮 Admins:\n\n")
	for _, id := range admins {
		name := h.resolveDisplayName(ctx, b, id)
		if h.adminService.IsOwner(id) {
			text.WriteString(fmt.Sprintf("• %s — %d (owner)\n", name, id))
		} else {
			text.WriteString(fmt.Sprintf("• %s — %d\n", name, id))
		}
	}

	h.sendText(ctx, b, update.Message.Chat.ID, text.String())
}

// resolveDisplayName looks up a user's profile name, substituting a
// placeholder on lookup failure rather than failing the whole listing.
func (h *Handler) resolveDisplayName(ctx context.Context, b *bot.Bot, userID int64) string {
	chat, err := b.GetChat(ctx, &bot.GetChatParams{ChatID: userID})
	if err != nil {
		slog.Warn("Failed to resolve admin name", "error", err, "user_id", userID)
		return "name not found"
	}

	name := strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	if name == "" && chat.Username != "" {
		name = "@" + chat.Username
	}
	if name == "" {
		return "name not found"
	}
	return name
}

func (h *Handler) handleAddAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if err := h.adminService.RequireOwner(update.Message.From.ID); err != nil {
		h.sendText(ctx, b, chatID, "❌ Only the owner can manage admins.")
		return
	}

	targetID, ok := parseTargetID(update.Message.Text)
	if !ok {
		h.sendText(ctx, b, chatID, "❌ Invalid user ID.\nUsage: /addadmin <id>")
		return
	}

	added, err := h.adminService.AddAdmin(targetID)
	if err != nil {
		slog.Error("Failed to add admin", "error", err, "target_id", targetID)
		h.sendText(ctx, b, chatID, fmt.Sprintf("❌ Failed to add admin: %v", err))
		return
	}

	if !added {
		h.sendText(ctx, b, chatID, fmt.Sprintf("User %d is already an admin.", targetID))
		return
	}
	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ User %d added to admins.", targetID))
}

func (h *Handler) handleDelAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if err := h.adminService.RequireOwner(update.Message.From.ID); err != nil {
		h.sendText(ctx, b, chatID, "❌ Only the owner can manage admins.")
		return
	}

	targetID, ok := parseTargetID(update.Message.Text)
	if !ok {
		h.sendText(ctx, b, chatID, "❌ Invalid user ID.\nUsage: /deladmin <id>")
		return
	}

	removed, err := h.adminService.RemoveAdmin(targetID)
	if err != nil {
		if errors.Is(err, sharedErrors.ErrOwnerImmutable) {
			h.sendText(ctx, b, chatID, "❌ Cannot remove the owner.")
			return
		}
		slog.Error("Failed to remove admin", "error", err, "target_id", targetID)
		h.sendText(ctx, b, chatID, fmt.Sprintf("❌ Failed to remove admin: %v", err))
		return
	}

	if !removed {
		h.sendText(ctx, b, chatID, fmt.Sprintf("User %d is not an admin.", targetID))
		return
	}
	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ User %d removed from admins.", targetID))
}

// parseTargetID extracts the positive decimal user ID argument of an
// admin-management command.
func parseTargetID(text string) (int64, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return 0, false
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) replyToStaff(ctx context.Context, b *bot.Bot, msg *models.Message, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	}); err != nil {
		slog.Error("Failed to reply in support chat", "error", err)
	}
}

func (h *Handler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		slog.Error("Failed to send message", "error", err, "chat_id", chatID)
	}
}
