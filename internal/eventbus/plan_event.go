package eventbus

type PlanEventType string

const (
	PostScheduled PlanEventType = "Scheduled"
	PostUpdated   PlanEventType = "Updated"
	PostDeleted   PlanEventType = "Deleted"
)

// PlanEvent describes one mutation of the content plan.
type PlanEvent struct {
	Type   PlanEventType
	PostID string
}

type PlanEventHandler = Handler[PlanEvent]
type PlanEventBus = Bus[PlanEventType, PlanEvent]

func NewPlanEventBus() *PlanEventBus {
	return NewBus[PlanEventType, PlanEvent]()
}
