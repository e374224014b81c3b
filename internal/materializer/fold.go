package materializer

import (
	"sort"

	"orderpulse.app/pulse/internal/model"
)

// SelectWinners folds a batch of events down to one winning update per
// order. The winner is the event with the greatest event timestamp; when
// two events carry the same timestamp, the one appended to the log later
// wins. The fold depends only on the set of events, so scanning the same
// batch twice, or in a different arrival order, picks the same winners.
func SelectWinners(events []model.Event) []model.StatusUpdate {
	if len(events) == 0 {
		return nil
	}

	winners := make(map[string]model.Event, len(events))
	for _, event := range events {
		current, ok := winners[event.OrderID]
		if !ok || beats(event, current) {
			winners[event.OrderID] = event
		}
	}

	updates := make([]model.StatusUpdate, 0, len(winners))
	for _, event := range winners {
		updates = append(updates, model.StatusUpdate{
			OrderID:    event.OrderID,
			NewStatus:  event.NewStatus,
			CustomerID: event.CustomerID,
			EventTS:    event.EventTS,
			Position:   event.Position,
		})
	}

	// Apply in a stable order so concurrent readers see deterministic
	// progress and cycle logs are comparable across runs.
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].OrderID < updates[j].OrderID
	})

	return updates
}

func beats(a, b model.Event) bool {
	if !a.EventTS.Equal(b.EventTS) {
		return a.EventTS.After(b.EventTS)
	}
	return a.Position > b.Position
}
