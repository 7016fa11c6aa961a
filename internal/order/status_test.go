package order

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "assigned", "ready", "delivered", "cancelled"} {
		if _, ok := ParseStatus(s); !ok {
			t.Errorf("ParseStatus(%q) should succeed", s)
		}
	}
	for _, s := range []string{"", "PENDING", "shipped", "wtf"} {
		if _, ok := ParseStatus(s); ok {
			t.Errorf("ParseStatus(%q) should fail", s)
		}
	}
}

func TestCanTransition_ForwardPath(t *testing.T) {
	path := []Status{StatusPending, StatusAssigned, StatusReady, StatusDelivered}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Errorf("%s -> %s should be legal", path[i], path[i+1])
		}
	}
}

func TestCanTransition_CancelledFromNonTerminal(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusAssigned, StatusReady} {
		if !CanTransition(from, StatusCancelled) {
			t.Errorf("%s -> cancelled should be legal", from)
		}
	}
	if CanTransition(StatusDelivered, StatusCancelled) {
		t.Error("delivered is terminal; -> cancelled should be illegal")
	}
	if CanTransition(StatusCancelled, StatusPending) {
		t.Error("cancelled is terminal; -> pending should be illegal")
	}
}

func TestCanTransition_NoBackwardOrSkippedEdges(t *testing.T) {
	illegal := [][2]Status{
		{StatusAssigned, StatusPending},
		{StatusReady, StatusAssigned},
		{StatusDelivered, StatusReady},
		{StatusPending, StatusReady},
		{StatusPending, StatusDelivered},
		{StatusAssigned, StatusDelivered},
		{StatusPending, StatusPending},
	}
	for _, e := range illegal {
		if CanTransition(e[0], e[1]) {
			t.Errorf("%s -> %s should be illegal", e[0], e[1])
		}
	}
}

func TestTerminal(t *testing.T) {
	if !StatusDelivered.Terminal() || !StatusCancelled.Terminal() {
		t.Error("delivered and cancelled must be terminal")
	}
	if StatusPending.Terminal() || StatusAssigned.Terminal() || StatusReady.Terminal() {
		t.Error("pending/assigned/ready must not be terminal")
	}
}
