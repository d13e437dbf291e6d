package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/carecircle/internal/model"
)

// Sender delivers one payload to one subscription.
type Sender interface {
	Send(sub *model.PushSubscription, payload Payload) error
}

// SubscriptionStore is the part of the subscription store the notifier needs.
type SubscriptionStore interface {
	ListByCircle(ctx context.Context, circleID string) ([]model.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

// Notifier fans a ping out to every device in the circle except the sender's.
type Notifier struct {
	sender Sender
	subs   SubscriptionStore
	logger *slog.Logger
}

func NewNotifier(sender Sender, subs SubscriptionStore, logger *slog.Logger) *Notifier {
	return &Notifier{sender: sender, subs: subs, logger: logger}
}

// NotifyPing pushes p to the circle and returns how many devices accepted it.
// Expired subscriptions are removed as they are found.
func (n *Notifier) NotifyPing(ctx context.Context, p model.Ping) int {
	subs, err := n.subs.ListByCircle(ctx, p.CircleID)
	if err != nil {
		n.logger.Error("ping notification list subs", "circle", p.CircleID, "error", err)
		return 0
	}

	payload := Payload{
		Title: "Thinking of you",
		Body:  fmt.Sprintf("%s is thinking of you", p.FromName),
		URL:   "/",
		Tag:   "ping-" + p.ID,
	}

	sent := 0
	for _, sub := range subs {
		if sub.UserID == p.FromUserID {
			continue
		}
		if err := n.sender.Send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := n.subs.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
					n.logger.Warn("delete expired subscription", "error", err)
				}
			} else {
				n.logger.Warn("send ping notification", "circle", p.CircleID, "error", err)
			}
			continue
		}
		sent++
	}
	return sent
}
