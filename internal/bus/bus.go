// Package bus provides in-process point-to-point and broadcast messaging
// between named participants, plus named conversation threads.
package bus

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

// Stats is a read-only snapshot of bus activity.
type Stats struct {
	// TotalMessages is the number of messages ever sent.
	TotalMessages int `json:"total_messages"`
	// PendingMessages is the number of messages not yet drained.
	PendingMessages int `json:"pending_messages"`
	// ActiveThreads is the number of threads still accepting posts.
	ActiveThreads int `json:"active_threads"`
	// RegisteredAgents is the number of registered participants.
	RegisteredAgents int `json:"registered_agents"`
}

// Bus is the shared message bus. The message queue and the thread map are
// guarded independently so that thread traffic does not serialize sends.
//
// The queue is an unbounded append-only log; callers that need bounded
// memory must add their own retention policy on top.
type Bus struct {
	mu       sync.Mutex
	messages []*models.Message
	registry map[string]bool

	threadMu sync.Mutex
	threads  map[string]*models.Thread
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		registry: make(map[string]bool),
		threads:  make(map[string]*models.Thread),
	}
}

// Register adds a participant name to the registry. Registered participants
// are the default recipient set for Broadcast.
func (b *Bus) Register(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registry[name] = true
}

// Send appends a message to the queue and returns its ID. Send always
// succeeds.
func (b *Bus) Send(from, to, msgType, content, priority string) string {
	return b.send(from, to, msgType, content, priority, nil)
}

// SendAssignment sends a task_assignment message carrying a typed payload.
func (b *Bus) SendAssignment(from, to string, a *models.TaskAssignment) string {
	content := "Task assignment: " + a.TaskName
	return b.send(from, to, models.MessageTypeAssignment, content, models.PriorityNormal, a)
}

func (b *Bus) send(from, to, msgType, content, priority string, a *models.TaskAssignment) string {
	if priority == "" {
		priority = models.PriorityNormal
	}
	msg := &models.Message{
		ID:         uuid.NewString(),
		From:       from,
		To:         to,
		Type:       msgType,
		Content:    content,
		Assignment: a,
		Priority:   priority,
		Timestamp:  time.Now(),
		Status:     models.MessagePending,
	}

	b.mu.Lock()
	b.messages = append(b.messages, msg)
	b.mu.Unlock()

	return msg.ID
}

// Drain returns all pending messages addressed to recipient and marks them
// delivered. A message appears in exactly one Drain result over its lifetime.
func (b *Bus) Drain(recipient string) []models.Message {
	return b.DrainMatching(recipient, nil)
}

// DrainMatching returns the pending messages addressed to recipient for which
// match returns true, marking only those delivered. Non-matching messages
// stay pending for a later drain, so concurrent consumers sharing a mailbox
// do not swallow each other's traffic. A nil match accepts everything.
func (b *Bus) DrainMatching(recipient string, match func(models.Message) bool) []models.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []models.Message
	for _, msg := range b.messages {
		if msg.To != recipient || msg.Status != models.MessagePending {
			continue
		}
		if match != nil && !match(*msg) {
			continue
		}
		msg.Status = models.MessageDelivered
		out = append(out, *msg)
	}
	return out
}

// Broadcast sends content to every registered participant except the sender.
// It returns the IDs of the messages sent, ordered by recipient name.
func (b *Bus) Broadcast(from, content string) []string {
	b.mu.Lock()
	var targets []string
	for name := range b.registry {
		if name != from {
			targets = append(targets, name)
		}
	}
	b.mu.Unlock()
	sort.Strings(targets)

	ids := make([]string, 0, len(targets))
	for _, target := range targets {
		ids = append(ids, b.Send(from, target, models.MessageTypeBroadcast, content, models.PriorityNormal))
	}

	log.Printf("[bus] broadcast from %s to %d recipients", from, len(ids))
	return ids
}

// Stats returns a snapshot of bus activity. It takes both locks, queue
// first, then threads.
func (b *Bus) Stats() Stats {
	b.mu.Lock()
	total := len(b.messages)
	pending := 0
	for _, msg := range b.messages {
		if msg.Status == models.MessagePending {
			pending++
		}
	}
	registered := len(b.registry)
	b.mu.Unlock()

	b.threadMu.Lock()
	active := 0
	for _, th := range b.threads {
		if th.Status == models.ThreadActive {
			active++
		}
	}
	b.threadMu.Unlock()

	return Stats{
		TotalMessages:    total,
		PendingMessages:  pending,
		ActiveThreads:    active,
		RegisteredAgents: registered,
	}
}
