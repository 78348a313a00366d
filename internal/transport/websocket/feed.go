package websocket

import (
	"context"
	"time"
)

const EventStatusUpdate = "status_update"

// SnapshotFunc builds the payload pushed to watchers of a flight number.
type SnapshotFunc func(ctx context.Context, flightNumber string) interface{}

// RunFeed pushes a fresh snapshot to every watched flight on each tick until
// ctx is done.
func RunFeed(ctx context.Context, hub *Hub, interval time.Duration, snapshot SnapshotFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			PushSnapshots(ctx, hub, snapshot)
		}
	}
}

func PushSnapshots(ctx context.Context, hub *Hub, snapshot SnapshotFunc) {
	for _, number := range hub.WatchedFlights() {
		hub.Broadcast(number, EventStatusUpdate, snapshot(ctx, number))
	}
}
