package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
)

// NotifyChannel is the Postgres channel the clients trigger publishes on
const NotifyChannel = "focuswork_clients"

type notification struct {
	ID      string               `json:"id"`
	Op      string               `json:"op"`
	OwnerID string               `json:"owner_id"`
	Record  *domain.RemoteClient `json:"record"`
}

// decodeNotification parses a trigger payload into a change event
func decodeNotification(payload string) (domain.ChangeEvent, error) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("decode notification: %w", err)
	}

	var t domain.ChangeType
	switch strings.ToUpper(n.Op) {
	case "INSERT":
		t = domain.ChangeInsert
	case "UPDATE":
		t = domain.ChangeUpdate
	case "DELETE":
		t = domain.ChangeDelete
	default:
		return domain.ChangeEvent{}, fmt.Errorf("unknown notification op %q", n.Op)
	}

	id := n.ID
	if id == "" && n.Record != nil {
		id = n.Record.ID
	}
	if id == "" {
		return domain.ChangeEvent{}, errors.New("notification without id")
	}

	ev := domain.ChangeEvent{ID: id, OwnerID: n.OwnerID, Type: t}
	if t != domain.ChangeDelete {
		ev.Record = n.Record
	}
	return ev, nil
}

// Subscribe listens on a dedicated connection and delivers events of ownerID.
// Oversized notifications arrive without a record; the row is fetched instead.
// Returns nil when ctx is cancelled, an error when the connection fails.
func (s *PostgresStore) Subscribe(ctx context.Context, ownerID string, handler func(domain.ChangeEvent)) error {
	conn, err := pgx.Connect(ctx, s.databaseURL)
	if err != nil {
		return fmt.Errorf("connect change feed: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}
	logging.Logger.Info("Change feed subscribed", "channel", NotifyChannel, "owner", ownerID)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}

		ev, err := decodeNotification(n.Payload)
		if err != nil {
			logging.Logger.Warn("Ignoring malformed notification", "error", err)
			continue
		}
		if ev.OwnerID != ownerID {
			continue
		}
		if ev.Type != domain.ChangeDelete && ev.Record == nil {
			rec, err := s.FetchClient(ctx, ownerID, ev.ID)
			if err != nil {
				logging.Logger.Warn("Failed to fetch announced client", "id", ev.ID, "error", err)
				continue
			}
			if rec == nil {
				continue
			}
			ev.Record = rec
		}
		handler(ev)
	}
}
