package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/reshetovitsme/support-relay-bot/internal/modules/broadcast/domain"
	"github.com/samber/lo"
)

// Sender delivers broadcast content to a single chat
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, buttons []domain.Button) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string, buttons []domain.Button) error
}

// UserLister returns the known-user IDs the broadcast fans out to
type UserLister interface {
	ListUsers() ([]int64, error)
}

// Service runs the broadcast wizard: collect content, collect optional
// button links, confirm, then fan out to every known user. Sessions are
// scoped per admin and cleared on completion or cancellation.
type Service struct {
	users  UserLister
	sender Sender
	delay  time.Duration

	sessions map[int64]*domain.Session
	mu       sync.Mutex
}

// New creates a new broadcast service
func New(users UserLister, sender Sender, delay time.Duration) *Service {
	return &Service{
		users:    users,
		sender:   sender,
		delay:    delay,
		sessions: make(map[int64]*domain.Session),
	}
}

// Incoming is the wizard-relevant slice of an inbound message
type Incoming struct {
	Text        string
	PhotoFileID string
	Caption     string
}

// Active reports whether the admin has a wizard session in progress
func (s *Service) Active(adminID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[adminID]
	return ok && session.State != domain.StateIdle
}

// Start opens a fresh wizard session for the admin, discarding any
// previous draft.
func (s *Service) Start(adminID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[adminID] = &domain.Session{State: domain.StateCollectingContent}
	return "📝 Send the broadcast content: a text message or a photo with a caption."
}

// Cancel clears the admin's session from any state
func (s *Service) Cancel(adminID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[adminID]; !ok || session.State == domain.StateIdle {
		return "Nothing to cancel."
	}

	delete(s.sessions, adminID)
	return "❌ Broadcast cancelled."
}

// HandleMessage advances the admin's wizard session by one step and
// returns the reply to show the admin. State transitions happen under
// s.mu; the preview and the fan-out run on a draft copy after the lock
// is released so network sends never block other sessions.
func (s *Service) HandleMessage(ctx context.Context, adminID int64, in Incoming) string {
	s.mu.Lock()
	session, ok := s.sessions[adminID]
	if !ok {
		s.mu.Unlock()
		return ""
	}

	var (
		reply   string
		preview bool
		deliver bool
		draft   domain.Draft
	)

	switch session.State {
	case domain.StateCollectingContent:
		reply = receiveContent(session, in)
	case domain.StateCollectingButtons:
		reply, preview = receiveButtons(session, in)
		draft = session.Draft
	case domain.StateAwaitingConfirmation:
		deliver = strings.EqualFold(strings.TrimSpace(in.Text), "yes")
		draft = session.Draft
		delete(s.sessions, adminID)
		if !deliver {
			reply = "❌ Broadcast cancelled."
		}
	}
	s.mu.Unlock()

	switch {
	case preview:
		return s.preview(ctx, adminID, draft)
	case deliver:
		sent, failed := s.fanOut(ctx, draft)
		return fmt.Sprintf("📣 Broadcast finished.\n\nSent: %d\nFailed: %d", sent, failed)
	}
	return reply
}

// receiveContent mutates the session; the caller holds s.mu.
func receiveContent(session *domain.Session, in Incoming) string {
	switch {
	case in.PhotoFileID != "":
		session.Draft.PhotoFileID = in.PhotoFileID
		session.Draft.Caption = in.Caption
		session.Draft.Text = ""
	case strings.TrimSpace(in.Text) != "":
		session.Draft.Text = in.Text
		session.Draft.PhotoFileID = ""
		session.Draft.Caption = ""
	default:
		return "Please send a text message or a photo with a caption."
	}

	session.State = domain.StateCollectingButtons
	return "🔗 Now send button links, one per line:\n\nShop - https://example.com\n\nSend 'no' to skip buttons."
}

// receiveButtons mutates the session; the caller holds s.mu. It
// reports whether the draft advanced to confirmation and a preview is
// due.
func receiveButtons(session *domain.Session, in Incoming) (string, bool) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "Send button lines, or 'no' for none.", false
	}

	if strings.EqualFold(text, "no") {
		session.Draft.Buttons = nil
	} else {
		buttons := ParseButtons(text)
		if len(buttons) == 0 {
			return "No valid button lines found. Use 'Label - https://example.com', one per line, or send 'no'.", false
		}
		session.Draft.Buttons = buttons
	}

	session.State = domain.StateAwaitingConfirmation
	return "", true
}

// preview sends the exact draft to the admin so they see what users
// will receive.
func (s *Service) preview(ctx context.Context, adminID int64, draft domain.Draft) string {
	var err error
	if draft.PhotoFileID != "" {
		err = s.sender.SendPhoto(ctx, adminID, draft.PhotoFileID, draft.Caption, draft.Buttons)
	} else {
		err = s.sender.SendText(ctx, adminID, draft.Text, draft.Buttons)
	}
	if err != nil {
		slog.Error("Failed to send broadcast preview", "error", err, "admin_id", adminID)
	}

	total := 0
	if ids, err := s.users.ListUsers(); err == nil {
		total = len(ids)
	}

	return fmt.Sprintf("👀 This is a preview of your broadcast.\n\nSend 'yes' to deliver it to %d users. Anything else cancels.", total)
}

// fanOut delivers the draft to every known user, one at a time, with a
// fixed delay between sends as rate-limit courtesy. Per-recipient
// failures are counted, never abort the loop.
func (s *Service) fanOut(ctx context.Context, draft domain.Draft) (sent, failed int) {
	ids, err := s.users.ListUsers()
	if err != nil {
		slog.Error("Failed to list users for broadcast", "error", err)
		return 0, 0
	}

	for _, id := range ids {
		var sendErr error
		if draft.PhotoFileID != "" {
			sendErr = s.sender.SendPhoto(ctx, id, draft.PhotoFileID, draft.Caption, draft.Buttons)
		} else {
			sendErr = s.sender.SendText(ctx, id, draft.Text, draft.Buttons)
		}

		if sendErr != nil {
			failed++
			slog.Warn("Broadcast delivery failed", "error", sendErr, "user_id", id)
		} else {
			sent++
		}

		time.Sleep(s.delay)
	}

	slog.Info("Broadcast finished", "total", len(ids), "sent", sent, "failed", failed)
	return sent, failed
}

// ParseButtons parses button lines of the form "Label - https://url",
// splitting each line on the first " - ". Lines that do not match are
// silently skipped.
func ParseButtons(text string) []domain.Button {
	lines := strings.Split(text, "\n")
	return lo.FilterMap(lines, func(line string, _ int) (domain.Button, bool) {
		label, url, found := strings.Cut(line, " - ")
		if !found {
			return domain.Button{}, false
		}

		label = strings.TrimSpace(label)
		url = strings.TrimSpace(url)
		if label == "" || url == "" {
			return domain.Button{}, false
		}

		return domain.Button{Label: label, URL: url}, true
	})
}
