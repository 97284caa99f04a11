package queue

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// QueueEntry maps to the queue_entry table. queue_number is assigned once at
// creation as max(existing)+1 and is never reused or renumbered.
type QueueEntry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	ArrivalTime time.Time `db:"arrival_time" json:"arrival_time"`
	EstWaitTime int       `db:"est_wait_time" json:"est_wait_time"`
	Status      string    `db:"status" json:"status"`
	Priority    string    `db:"priority" json:"priority"`
	QueueNumber int       `db:"queue_number" json:"queue_number"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	StatusWaiting    = "Waiting"
	StatusWithDoctor = "With Doctor"
	StatusCompleted  = "Completed"

	PriorityNormal = "Normal"
	PriorityUrgent = "Urgent"
)

var validStatuses = map[string]bool{
	StatusWaiting:    true,
	StatusWithDoctor: true,
	StatusCompleted:  true,
}

var validPriorities = map[string]bool{
	PriorityNormal: true,
	PriorityUrgent: true,
}

// rankedBefore reports whether a precedes b in the queue ordering:
// Urgent entries before Normal, then ascending arrival time, ties broken by
// ascending queue number. Status never affects rank.
func rankedBefore(a, b *QueueEntry) bool {
	if a.Priority != b.Priority {
		return a.Priority == PriorityUrgent
	}
	if !a.ArrivalTime.Equal(b.ArrivalTime) {
		return a.ArrivalTime.Before(b.ArrivalTime)
	}
	return a.QueueNumber < b.QueueNumber
}

// Rank sorts entries in place into queue order.
func Rank(entries []*QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rankedBefore(entries[i], entries[j])
	})
}

// PositionOf returns the 1-based rank of the entry with the given id, or 0
// if no entry has that id. An Urgent entry is ranked among urgent entries
// only; a Normal entry ranks after every urgent entry.
func PositionOf(entries []*QueueEntry, id uuid.UUID) int {
	var target *QueueEntry
	for _, e := range entries {
		if e.ID == id {
			target = e
			break
		}
	}
	if target == nil {
		return 0
	}

	pos := 1
	for _, e := range entries {
		if e.ID == target.ID {
			continue
		}
		if target.Priority == PriorityUrgent {
			if e.Priority == PriorityUrgent && rankedBefore(e, target) {
				pos++
			}
		} else {
			if e.Priority == PriorityUrgent || rankedBefore(e, target) {
				pos++
			}
		}
	}
	return pos
}

// CreateInput carries the fields accepted at walk-in registration.
type CreateInput struct {
	PatientName string `json:"patient_name"`
	EstWaitTime int    `json:"est_wait_time"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// UpdateInput carries the optional fields of a partial update. Nil fields
// are left untouched.
type UpdateInput struct {
	PatientName *string `json:"patient_name"`
	EstWaitTime *int    `json:"est_wait_time"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}
