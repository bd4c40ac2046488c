package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewPlanEventBus()

	var got []PlanEvent
	unsubscribe := bus.Subscribe(PostScheduled, func(ctx context.Context, event PlanEvent) error {
		got = append(got, event)
		return nil
	})
	defer unsubscribe()

	err := bus.Publish(context.Background(), PostScheduled, PlanEvent{Type: PostScheduled, PostID: "POST_1"})
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 1 || got[0].PostID != "POST_1" {
		t.Fatalf("unexpected events: %+v", got)
	}

	// Other event types do not reach this subscriber.
	if err := bus.Publish(context.Background(), PostDeleted, PlanEvent{Type: PostDeleted, PostID: "POST_2"}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("subscriber received foreign event: %+v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewPlanEventBus()

	calls := 0
	unsubscribe := bus.Subscribe(PostUpdated, func(ctx context.Context, event PlanEvent) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), PostUpdated, PlanEvent{Type: PostUpdated, PostID: "POST_1"})
	unsubscribe()
	bus.Publish(context.Background(), PostUpdated, PlanEvent{Type: PostUpdated, PostID: "POST_1"})

	if calls != 1 {
		t.Fatalf("expected 1 delivery, got %d", calls)
	}
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	bus := NewPlanEventBus()
	boom := errors.New("boom")

	bus.Subscribe(PostDeleted, func(ctx context.Context, event PlanEvent) error {
		return boom
	})

	err := bus.Publish(context.Background(), PostDeleted, PlanEvent{Type: PostDeleted, PostID: "POST_1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
