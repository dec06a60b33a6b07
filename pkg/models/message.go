package models

import "time"

// MessageStatus represents the delivery state of a bus message.
type MessageStatus string

const (
	// MessagePending indicates the message has not been drained yet.
	MessagePending MessageStatus = "pending"
	// MessageDelivered indicates the message was returned by a drain call.
	MessageDelivered MessageStatus = "delivered"
)

// Message priorities. The bus does not reorder by priority; the value is
// carried for recipients to act on.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// MessageTypeAssignment is the message type used for task assignments.
const MessageTypeAssignment = "task_assignment"

// MessageTypeBroadcast is the message type used for fan-out messages.
const MessageTypeBroadcast = "broadcast"

// TaskAssignment is the typed payload carried by a task_assignment message.
// It is everything a specialist is allowed to see about a project: the
// task requirements and the results of its completed dependencies, never
// the project itself.
type TaskAssignment struct {
	// ProjectID identifies the owning project.
	ProjectID string `json:"project_id"`
	// TaskName is the assigned task.
	TaskName string `json:"task_name"`
	// Requirements is the task's requirement payload.
	Requirements string `json:"requirements"`
	// DependencyResults maps completed dependency task names to their results.
	DependencyResults map[string]string `json:"dependency_results,omitempty"`
}

// Message is a point-to-point message between named participants.
type Message struct {
	// ID is the unique message identifier.
	ID string `json:"id"`
	// From is the sender name.
	From string `json:"from"`
	// To is the recipient name.
	To string `json:"to"`
	// Type categorizes the message (task_assignment, broadcast, ...).
	Type string `json:"type"`
	// Content is the human-readable message body.
	Content string `json:"content"`
	// Assignment is the typed payload for task_assignment messages.
	Assignment *TaskAssignment `json:"assignment,omitempty"`
	// Priority is a carrier hint, normal or high.
	Priority string `json:"priority"`
	// Timestamp is when the message was sent.
	Timestamp time.Time `json:"timestamp"`
	// Status is pending until drained, delivered after.
	Status MessageStatus `json:"status"`
}

// ThreadStatus represents the lifecycle state of a conversation thread.
type ThreadStatus string

const (
	// ThreadActive indicates the thread accepts posts.
	ThreadActive ThreadStatus = "active"
	// ThreadClosed indicates the thread is read-only.
	ThreadClosed ThreadStatus = "closed"
)

// ThreadMessage is one post in a conversation thread.
type ThreadMessage struct {
	// From is the poster name.
	From string `json:"from"`
	// Content is the post body.
	Content string `json:"content"`
	// Timestamp is when the post was made.
	Timestamp time.Time `json:"timestamp"`
}

// Thread is a named conversation between a fixed set of participants.
// Posts append; nothing is ever deleted.
type Thread struct {
	// ID is the unique thread identifier.
	ID string `json:"id"`
	// Name is the human-readable thread name.
	Name string `json:"name"`
	// Participants is the set of participant names.
	Participants []string `json:"participants"`
	// Messages is the ordered post history.
	Messages []ThreadMessage `json:"messages"`
	// Status is active or closed.
	Status ThreadStatus `json:"status"`
	// CreatedAt is when the thread was opened.
	CreatedAt time.Time `json:"created_at"`
}
