package audit

import (
	"strings"
	"time"

	"github.com/enslabs/clubs-admin-api/internal/model"
)

// relatedWindow bounds how far apart a primary change and its triggered
// counter update may be to still count as one causal event.
const relatedWindow = time.Second

// GroupedEvent is one display-ready activity item: a primary audit entry,
// its precomputed field diff, and any trigger-driven sub-events it caused.
type GroupedEvent struct {
	Entry     *model.AuditLog
	Changes   []FieldChange
	Triggered []GroupedEvent
}

// Group folds a page of raw audit entries (sorted newest-first by the
// store) into human-meaningful events, preserving order:
//
//   - a membership INSERT/DELETE claims the club-row UPDATE its counter
//     trigger produced (same club, same actor, within one second,
//     bookkeeping-only) as a nested sub-event, at most one, since one
//     membership change causes exactly one counter update;
//   - club UPDATEs whose only changed fields are bookkeeping columns are
//     suppressed unless claimed, so counter bumps never show up as empty
//     "updated club" events;
//   - club UPDATEs with real changes always stand alone, and every other
//     entry passes through untouched.
//
// Pure transform: each input entry appears at most once in the output.
func Group(entries []*model.AuditLog) []GroupedEvent {
	changes := make([][]FieldChange, len(entries))
	for i, entry := range entries {
		changes[i] = Changes(entry)
	}

	consumed := make([]bool, len(entries))
	triggered := make(map[int]int, len(entries))

	// membership changes claim their counter updates first, so a
	// bookkeeping update is attributed to its cause rather than dropped
	for i, entry := range entries {
		if entry.Table != model.AuditTableClubMembers {
			continue
		}

		clubName := clubOfRecordKey(entry.RecordKey)
		for j, candidate := range entries {
			if i == j || consumed[j] {
				continue
			}
			if candidate.Table != model.AuditTableClubs || candidate.Operation != model.AuditUpdate {
				continue
			}
			if len(changes[j]) > 0 {
				continue // a real edit is never absorbed
			}
			if candidate.RecordKey != clubName {
				continue
			}
			if !sameActor(entry, candidate) {
				continue
			}
			if !withinWindow(entry.CreatedAt, candidate.CreatedAt) {
				continue
			}

			consumed[j] = true
			triggered[i] = j
			break
		}
	}

	events := make([]GroupedEvent, 0, len(entries))
	for i, entry := range entries {
		if consumed[i] {
			continue
		}

		// unclaimed bookkeeping-only club updates are pure noise
		if entry.Table == model.AuditTableClubs &&
			entry.Operation == model.AuditUpdate &&
			len(changes[i]) == 0 {
			continue
		}

		event := GroupedEvent{Entry: entry, Changes: changes[i]}
		if j, ok := triggered[i]; ok {
			event.Triggered = []GroupedEvent{{Entry: entries[j], Changes: changes[j]}}
		}
		events = append(events, event)
	}

	return events
}

// clubOfRecordKey extracts the club name from a membership record key of the
// form "club:name". Club entries use the bare club name.
func clubOfRecordKey(recordKey string) string {
	if i := strings.IndexByte(recordKey, ':'); i >= 0 {
		return recordKey[:i]
	}
	return recordKey
}

func sameActor(a, b *model.AuditLog) bool {
	if a.ActorAddress == nil || b.ActorAddress == nil {
		return a.ActorAddress == nil && b.ActorAddress == nil
	}
	return strings.EqualFold(*a.ActorAddress, *b.ActorAddress)
}

func withinWindow(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= relatedWindow
}
