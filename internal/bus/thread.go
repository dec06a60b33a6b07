package bus

import (
	"time"

	"github.com/google/uuid"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

// CreateThread opens a new active conversation thread and returns its ID.
func (b *Bus) CreateThread(name string, participants []string) string {
	th := &models.Thread{
		ID:           uuid.NewString(),
		Name:         name,
		Participants: append([]string(nil), participants...),
		Status:       models.ThreadActive,
		CreatedAt:    time.Now(),
	}

	b.threadMu.Lock()
	b.threads[th.ID] = th
	b.threadMu.Unlock()

	return th.ID
}

// PostToThread appends a post to a thread and returns the new message count.
// It returns (0, false) if the thread does not exist or is closed.
func (b *Bus) PostToThread(threadID, from, content string) (int, bool) {
	b.threadMu.Lock()
	defer b.threadMu.Unlock()

	th, ok := b.threads[threadID]
	if !ok || th.Status != models.ThreadActive {
		return 0, false
	}

	th.Messages = append(th.Messages, models.ThreadMessage{
		From:      from,
		Content:   content,
		Timestamp: time.Now(),
	})
	return len(th.Messages), true
}

// ThreadHistory returns a copy of the full thread, or (zero, false) if the
// thread does not exist.
func (b *Bus) ThreadHistory(threadID string) (models.Thread, bool) {
	b.threadMu.Lock()
	defer b.threadMu.Unlock()

	th, ok := b.threads[threadID]
	if !ok {
		return models.Thread{}, false
	}

	out := *th
	out.Participants = append([]string(nil), th.Participants...)
	out.Messages = append([]models.ThreadMessage(nil), th.Messages...)
	return out, true
}

// CloseThread marks a thread closed. Closed threads reject further posts but
// keep their history. Returns false if the thread does not exist.
func (b *Bus) CloseThread(threadID string) bool {
	b.threadMu.Lock()
	defer b.threadMu.Unlock()

	th, ok := b.threads[threadID]
	if !ok {
		return false
	}
	th.Status = models.ThreadClosed
	return true
}
