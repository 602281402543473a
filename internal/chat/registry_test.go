package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopReceiver is a registry member that swallows deliveries. The name field
// keeps instances distinct as map keys.
type nopReceiver struct{ name string }

func (*nopReceiver) DeliverMessage(Message)   {}
func (*nopReceiver) DeliverHistory([]Message) {}
func (*nopReceiver) DeliverError(string)      {}

func TestJoinLeavesPreviousRoom(t *testing.T) {
	reg := NewRegistry()
	conn := &nopReceiver{}

	reg.Join(conn, "a")
	reg.Join(conn, "b")

	assert.Empty(t, reg.Members("a"))
	require.Len(t, reg.Members("b"), 1)

	room, ok := reg.Room(conn)
	require.True(t, ok)
	assert.Equal(t, "b", room)
}

func TestLeaveClearsMembership(t *testing.T) {
	reg := NewRegistry()
	conn := &nopReceiver{}

	reg.Join(conn, "a")
	reg.Leave(conn)

	assert.Empty(t, reg.Members("a"))
	_, ok := reg.Room(conn)
	assert.False(t, ok)
}

func TestLeaveWithoutJoinIsNoop(t *testing.T) {
	reg := NewRegistry()
	reg.Leave(&nopReceiver{})

	_, ok := reg.Room(&nopReceiver{})
	assert.False(t, ok)
}

func TestMembersIsASnapshot(t *testing.T) {
	reg := NewRegistry()
	a, b := &nopReceiver{}, &nopReceiver{}
	reg.Join(a, "r")
	reg.Join(b, "r")

	snapshot := reg.Members("r")
	reg.Leave(b)

	// The earlier snapshot is unaffected by the later leave.
	assert.Len(t, snapshot, 2)
	assert.Len(t, reg.Members("r"), 1)
}

func TestEmptyRoomStaysAddressable(t *testing.T) {
	reg := NewRegistry()
	conn := &nopReceiver{}
	reg.Join(conn, "r")
	reg.Leave(conn)

	assert.NotNil(t, reg.Members("r"))
	assert.Empty(t, reg.Members("r"))
}

func TestConcurrentJoinLeave(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := &nopReceiver{}
			reg.Join(conn, "a")
			reg.Join(conn, "b")
			reg.Leave(conn)
		}()
	}
	wg.Wait()

	assert.Empty(t, reg.Members("a"))
	assert.Empty(t, reg.Members("b"))
}
