package match

import (
	"errors"
	"testing"

	"coinflip-arena/internal/room"
)

func TestCreateRoomDebitsStake(t *testing.T) {
	c, rec := newTestCoordinator(Config{Timing: slowTiming})
	p := c.Register("alice")

	view, err := c.CreateRoom(p.ID, 100, "")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if view.Status != room.StatusWaiting {
		t.Fatalf("status = %s, want waiting", view.Status)
	}
	if len(view.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(view.Players))
	}
	if s := view.Players[0].Side; s != room.SideHeads && s != room.SideTails {
		t.Fatalf("side = %q", s)
	}
	if view.Players[0].Name != "alice" {
		t.Fatalf("name = %q, want alice (fallback to registered name)", view.Players[0].Name)
	}

	got, ok := c.Participant(p.ID)
	if !ok {
		t.Fatal("participant vanished")
	}
	if got.Balance != 9900 {
		t.Fatalf("balance = %d, want 9900", got.Balance)
	}
	if got.RoomID != view.ID {
		t.Fatalf("room assignment = %q, want %s", got.RoomID, view.ID)
	}
	if rec.count("roomCreated") != 1 || rec.count("roomsUpdated") != 1 {
		t.Fatalf("events = %v", rec.eventNames())
	}
}

func TestCreateRoomInsufficientFunds(t *testing.T) {
	c, rec := newTestCoordinator(Config{StartingBalance: 50, Timing: slowTiming})
	p := c.Register("poor")

	_, err := c.CreateRoom(p.ID, 100, "")
	if !IsInsufficientFunds(err) {
		t.Fatalf("CreateRoom() error = %v, want insufficient funds", err)
	}
	got, _ := c.Participant(p.ID)
	if got.Balance != 50 {
		t.Fatalf("balance = %d, want 50 (no mutation on failure)", got.Balance)
	}
	if len(c.Rooms()) != 0 {
		t.Fatal("room created despite failed debit")
	}
	if len(rec.eventNames()) != 0 {
		t.Fatalf("unexpected events %v", rec.eventNames())
	}
}

func TestCreateRoomInvalidStake(t *testing.T) {
	c, _ := newTestCoordinator(Config{Timing: slowTiming})
	p := c.Register("zero")
	if _, err := c.CreateRoom(p.ID, 0, ""); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("CreateRoom(0) error = %v, want ErrInvalidStake", err)
	}
	if _, err := c.CreateRoom("ghost", 100, ""); !errors.Is(err, ErrParticipantUnknown) {
		t.Fatalf("CreateRoom(ghost) error = %v, want ErrParticipantUnknown", err)
	}
}

func TestJoinRoomComplementarySides(t *testing.T) {
	c, _ := newTestCoordinator(Config{Timing: slowTiming})
	a := c.Register("alice")
	b := c.Register("bob")

	created, err := c.CreateRoom(a.ID, 100, "")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	joined, err := c.JoinRoom(b.ID, created.ID, "")
	if err != nil {
		t.Fatalf("JoinRoom() error = %v", err)
	}
	if joined.Status != room.StatusStarting {
		t.Fatalf("status = %s, want starting", joined.Status)
	}
	if len(joined.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(joined.Players))
	}
	if joined.Players[0].Side != joined.Players[1].Side.Other() {
		t.Fatalf("sides not complementary: %s vs %s", joined.Players[0].Side, joined.Players[1].Side)
	}
	gotB, _ := c.Participant(b.ID)
	if gotB.Balance != 9900 {
		t.Fatalf("joiner balance = %d, want 9900", gotB.Balance)
	}
	if gotB.RoomID != created.ID {
		t.Fatalf("joiner room = %q, want %s", gotB.RoomID, created.ID)
	}
}

func TestSwapSidesKeepsComplementAndIsScoped(t *testing.T) {
	c, _ := newTestCoordinator(Config{Timing: slowTiming})
	a := c.Register("alice")
	b := c.Register("bob")
	created, _ := c.CreateRoom(a.ID, 100, "")
	joined, _ := c.JoinRoom(b.ID, created.ID, "")
	firstSide := joined.Players[0].Side

	for i := 0; i < 3; i++ {
		c.SwapSides(created.ID)
		r, _ := c.rooms.Get(created.ID)
		if r.Seats[0].Side != r.Seats[1].Side.Other() {
			t.Fatalf("swap %d broke complement", i)
		}
	}
	r, _ := c.rooms.Get(created.ID)
	if r.Seats[0].Side != firstSide.Other() {
		t.Fatalf("after 3 swaps side = %s, want %s", r.Seats[0].Side, firstSide.Other())
	}

	// Once in progress, swapping is a silent no-op.
	r.Status = room.StatusInProgress
	before := r.Seats[0].Side
	c.SwapSides(created.ID)
	if r.Seats[0].Side != before {
		t.Fatal("swap mutated an in_progress room")
	}

	// Unknown rooms too.
	c.SwapSides("NOPE1234")
}

func TestJoinRoomErrors(t *testing.T) {
	c, _ := newTestCoordinator(Config{Timing: slowTiming})
	a := c.Register("alice")
	b := c.Register("bob")
	d := c.Register("carol")

	if _, err := c.JoinRoom(b.ID, "MISSING1", ""); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("join missing: error = %v, want ErrRoomNotFound", err)
	}

	created, _ := c.CreateRoom(a.ID, 100, "")
	if _, err := c.JoinRoom(b.ID, created.ID, ""); err != nil {
		t.Fatalf("JoinRoom() error = %v", err)
	}
	if _, err := c.JoinRoom(d.ID, created.ID, ""); !errors.Is(err, ErrRoomNotJoinable) {
		t.Fatalf("join full: error = %v, want ErrRoomNotJoinable", err)
	}

	second, _ := c.CreateRoom(d.ID, 100, "")
	e := c.Register("dave")
	if err := c.ledger.Debit(e.ID, 9950); err != nil {
		t.Fatalf("drain balance: %v", err)
	}
	if _, err := c.JoinRoom(e.ID, second.ID, ""); !IsInsufficientFunds(err) {
		t.Fatalf("join broke: error = %v, want insufficient funds", err)
	}
	r, _ := c.rooms.Get(second.ID)
	if len(r.Seats) != 1 || r.Status != room.StatusWaiting {
		t.Fatalf("failed join mutated room: %d seats, status %s", len(r.Seats), r.Status)
	}
}

func TestDisconnectWhileWaitingRefundsAndRemoves(t *testing.T) {
	c, rec := newTestCoordinator(Config{Timing: slowTiming})
	a := c.Register("alice")
	created, _ := c.CreateRoom(a.ID, 100, "")

	c.Disconnect(a.ID)

	if _, ok := c.rooms.Get(created.ID); ok {
		t.Fatal("waiting room survived disconnect")
	}
	if _, ok := c.Participant(a.ID); ok {
		t.Fatal("participant record survived disconnect")
	}
	if rec.count("playerDisconnected") != 1 {
		t.Fatalf("events = %v", rec.eventNames())
	}

	// Second disconnect for the same id is a silent no-op; the refund is
	// never applied to an already-removed room.
	before := len(rec.eventNames())
	c.Disconnect(a.ID)
	if len(rec.eventNames()) != before {
		t.Fatalf("duplicate disconnect emitted events: %v", rec.eventNames())
	}
}

func TestDisconnectWhileStartingKeepsRoomRunning(t *testing.T) {
	c, rec := newTestCoordinator(Config{Timing: slowTiming})
	a := c.Register("alice")
	b := c.Register("bob")
	created, _ := c.CreateRoom(a.ID, 100, "")
	if _, err := c.JoinRoom(b.ID, created.ID, ""); err != nil {
		t.Fatalf("JoinRoom() error = %v", err)
	}

	c.Disconnect(b.ID)

	r, ok := c.rooms.Get(created.ID)
	if !ok {
		t.Fatal("starting room removed by disconnect")
	}
	if r.Status != room.StatusStarting {
		t.Fatalf("status = %s, want starting", r.Status)
	}
	seat := r.SeatOf(b.ID)
	if seat == nil || !seat.Disconnected {
		t.Fatalf("seat not marked disconnected: %+v", seat)
	}
	// The ledger record survives so settlement can still pay out.
	if _, ok := c.Participant(b.ID); !ok {
		t.Fatal("ledger record removed while match pending")
	}
	if rec.count("playerDisconnected") != 1 {
		t.Fatalf("events = %v", rec.eventNames())
	}
}

func TestRegisterGeneratesName(t *testing.T) {
	c, _ := newTestCoordinator(Config{Timing: slowTiming})
	p := c.Register("")
	if p.Name == "" {
		t.Fatal("expected generated display name")
	}
	if p.Balance != 10000 {
		t.Fatalf("balance = %d, want default 10000", p.Balance)
	}
	if p.ID == "" {
		t.Fatal("expected participant id")
	}
	q := c.Register("")
	if q.ID == p.ID {
		t.Fatal("participant ids must be unique")
	}
}

func TestWaitingRoomsSnapshot(t *testing.T) {
	c, _ := newTestCoordinator(Config{Timing: slowTiming})
	a := c.Register("alice")
	b := c.Register("bob")
	d := c.Register("carol")

	first, _ := c.CreateRoom(a.ID, 100, "")
	second, _ := c.CreateRoom(b.ID, 200, "")
	if _, err := c.JoinRoom(d.ID, first.ID, ""); err != nil {
		t.Fatalf("JoinRoom() error = %v", err)
	}

	waiting := c.WaitingRooms()
	if len(waiting) != 1 || waiting[0].ID != second.ID {
		t.Fatalf("WaitingRooms() = %+v, want only %s", waiting, second.ID)
	}
	if len(c.Rooms()) != 2 {
		t.Fatalf("Rooms() = %d, want 2", len(c.Rooms()))
	}
}
