package session

import (
	"sync"
	"testing"

	"github.com/K4elthaz/readify/internal/utils"
)

func newTestClient(userID string) *Client {
	return NewClient(nil, utils.Identity{UserID: userID, Email: userID + "@example.com", FullName: userID}, 8)
}

func TestRegistryJoinLeaveMembers(t *testing.T) {
	reg := NewRegistry()
	c1 := newTestClient("alice")
	c2 := newTestClient("bob")

	reg.Join("room", c1)
	reg.Join("room", c2)
	if members := reg.Members("room"); len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	reg.Leave("room", c1)
	members := reg.Members("room")
	if len(members) != 1 || members[0] != c2 {
		t.Fatalf("expected only c2 joined, got %d members", len(members))
	}

	reg.Leave("room", c2)
	if members := reg.Members("room"); len(members) != 0 {
		t.Fatalf("expected empty room, got %d members", len(members))
	}
	if reg.RoomCount() != 0 {
		t.Fatalf("expected empty room to be gone, got %d rooms", reg.RoomCount())
	}
}

func TestRegistryJoinIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	c := newTestClient("alice")

	reg.Join("room", c)
	reg.Join("room", c)
	if members := reg.Members("room"); len(members) != 1 {
		t.Fatalf("a connection must appear at most once per room, got %d", len(members))
	}
}

func TestRegistryLeaveUnknownIsNoOp(t *testing.T) {
	reg := NewRegistry()
	c := newTestClient("alice")

	reg.Leave("missing-room", c)
	reg.Join("room", c)
	reg.Leave("room", newTestClient("stranger"))
	if members := reg.Members("room"); len(members) != 1 {
		t.Fatalf("unexpected membership: %d", len(members))
	}
}

func TestRegistryMembersIsSnapshot(t *testing.T) {
	reg := NewRegistry()
	c1 := newTestClient("alice")
	reg.Join("room", c1)

	snapshot := reg.Members("room")
	reg.Leave("room", c1)
	if len(snapshot) != 1 {
		t.Fatalf("snapshot must not change after leave, got %d", len(snapshot))
	}
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newTestClient("user")
			reg.Join("room", c)
			if len(reg.Members("room")) == 0 {
				t.Error("joined connection missing from members")
			}
			reg.Leave("room", c)
		}()
	}
	wg.Wait()

	if count := reg.RoomCount(); count != 0 {
		t.Fatalf("expected all rooms drained, got %d", count)
	}
}
