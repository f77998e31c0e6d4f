package service

import (
	"context"
	"sync"
	"testing"

	"github.com/reshetovitsme/support-relay-bot/internal/modules/broadcast/domain"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID int64 = 555

type fakeLister struct {
	ids []int64
}

func (l *fakeLister) ListUsers() ([]int64, error) {
	return l.ids, nil
}

// fakeSender records every delivery and fails for chat IDs in failFor
type fakeSender struct {
	mu      sync.Mutex
	texts   []int64
	photos  []int64
	buttons map[int64][]domain.Button
	failFor map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		buttons: make(map[int64][]domain.Button),
		failFor: make(map[int64]bool),
	}
}

func (s *fakeSender) SendText(_ context.Context, chatID int64, _ string, buttons []domain.Button) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.texts = append(s.texts, chatID)
	s.buttons[chatID] = buttons
	if s.failFor[chatID] {
		return oops.Errorf("blocked by user")
	}
	return nil
}

func (s *fakeSender) SendPhoto(_ context.Context, chatID int64, _, _ string, buttons []domain.Button) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.photos = append(s.photos, chatID)
	s.buttons[chatID] = buttons
	if s.failFor[chatID] {
		return oops.Errorf("blocked by user")
	}
	return nil
}

func TestParseButtons(t *testing.T) {
	buttons := ParseButtons("Shop - https://x.com\nbad line\nSupport - https://y.com")

	require.Len(t, buttons, 2)
	assert.Equal(t, domain.Button{Label: "Shop", URL: "https://x.com"}, buttons[0])
	assert.Equal(t, domain.Button{Label: "Support", URL: "https://y.com"}, buttons[1])
}

func TestParseButtons_SplitsOnFirstSeparator(t *testing.T) {
	buttons := ParseButtons("Docs - https://x.com/a - b")

	require.Len(t, buttons, 1)
	assert.Equal(t, "Docs", buttons[0].Label)
	assert.Equal(t, "https://x.com/a - b", buttons[0].URL)
}

func TestWizard_TextBroadcastWithFailures(t *testing.T) {
	lister := &fakeLister{ids: []int64{1, 2, 3, 4}}
	sender := newFakeSender()
	sender.failFor[2] = true
	sender.failFor[4] = true
	svc := New(lister, sender, 0)

	svc.Start(adminID)
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "hello everyone"})
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "no"})
	summary := svc.HandleMessage(context.Background(), adminID, Incoming{Text: "YES"})

	assert.Contains(t, summary, "Sent: 2")
	assert.Contains(t, summary, "Failed: 2")
	// One preview to the admin plus one attempt per user, failures included
	assert.Equal(t, []int64{adminID, 1, 2, 3, 4}, sender.texts)
	assert.False(t, svc.Active(adminID), "session must be cleared after sending")
}

func TestWizard_PhotoContentWithButtons(t *testing.T) {
	lister := &fakeLister{ids: []int64{1}}
	sender := newFakeSender()
	svc := New(lister, sender, 0)

	svc.Start(adminID)
	prompt := svc.HandleMessage(context.Background(), adminID, Incoming{PhotoFileID: "photo123", Caption: "sale"})
	assert.Contains(t, prompt, "button")

	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "Shop - https://x.com"})
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "yes"})

	// Preview + one recipient, both as photos carrying the button
	require.Equal(t, []int64{adminID, 1}, sender.photos)
	require.Len(t, sender.buttons[1], 1)
	assert.Equal(t, "Shop", sender.buttons[1][0].Label)
}

func TestWizard_RejectsEmptyContent(t *testing.T) {
	svc := New(&fakeLister{}, newFakeSender(), 0)

	svc.Start(adminID)
	reply := svc.HandleMessage(context.Background(), adminID, Incoming{})

	assert.Contains(t, reply, "text message or a photo")
	assert.True(t, svc.Active(adminID), "rejection must keep the session in the same state")
}

func TestWizard_RepromptsOnUnparseableButtons(t *testing.T) {
	sender := newFakeSender()
	svc := New(&fakeLister{}, sender, 0)

	svc.Start(adminID)
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "content"})
	reply := svc.HandleMessage(context.Background(), adminID, Incoming{Text: "nothing that parses"})

	assert.Contains(t, reply, "No valid button lines")
	assert.Empty(t, sender.texts, "no preview before a valid buttons step")
}

func TestWizard_AnythingButYesCancels(t *testing.T) {
	lister := &fakeLister{ids: []int64{1, 2}}
	sender := newFakeSender()
	svc := New(lister, sender, 0)

	svc.Start(adminID)
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "content"})
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "no"})
	reply := svc.HandleMessage(context.Background(), adminID, Incoming{Text: "hmm let me think"})

	assert.Contains(t, reply, "cancelled")
	assert.False(t, svc.Active(adminID))
	// Preview went out, but no fan-out happened
	assert.Equal(t, []int64{adminID}, sender.texts)
}

func TestWizard_CancelClearsDraft(t *testing.T) {
	sender := newFakeSender()
	svc := New(&fakeLister{ids: []int64{1}}, sender, 0)

	svc.Start(adminID)
	svc.HandleMessage(context.Background(), adminID, Incoming{Text: "old draft"})
	svc.Cancel(adminID)
	assert.False(t, svc.Active(adminID))

	// A fresh session starts from content collection with no residue
	svc.Start(adminID)
	reply := svc.HandleMessage(context.Background(), adminID, Incoming{Text: "yes"})
	assert.Contains(t, reply, "button", "a fresh session treats 'yes' as content, not confirmation")
	assert.Empty(t, sender.texts)
}

// Handlers are dispatched in their own goroutines, so wizard steps and
// the router's session check can run concurrently for one admin. Run
// with -race.
func TestWizard_ConcurrentStepsAndActiveChecks(t *testing.T) {
	sender := newFakeSender()
	svc := New(&fakeLister{ids: []int64{1}}, sender, 0)

	for i := 0; i < 50; i++ {
		svc.Start(adminID)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			svc.HandleMessage(context.Background(), adminID, Incoming{Text: "content"})
		}()
		go func() {
			defer wg.Done()
			svc.HandleMessage(context.Background(), adminID, Incoming{Text: "no"})
		}()
		go func() {
			defer wg.Done()
			svc.Active(adminID)
		}()
		wg.Wait()

		svc.Cancel(adminID)
		assert.False(t, svc.Active(adminID))
	}
}

func TestCancel_WithoutSession(t *testing.T) {
	svc := New(&fakeLister{}, newFakeSender(), 0)

	assert.Equal(t, "Nothing to cancel.", svc.Cancel(adminID))
}
