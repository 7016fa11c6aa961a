package order

// Status is the closed order lifecycle enumeration. It is stored as text but
// every write goes through the transition table below, so the column never
// holds a value outside this set.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusAssigned, StatusReady, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// transitions encodes the forward-only state machine:
// pending → assigned → ready → delivered, with cancelled reachable from any
// non-terminal state. delivered and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition reports whether from→to is a legal edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool { return len(transitions[s]) == 0 }
