package realtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent   [][]byte
	failed bool
}

func (f *fakeSender) Send(data []byte) error {
	if f.failed {
		return errors.New("connection closed")
	}
	f.sent = append(f.sent, data)
	return nil
}

func newTestRegistry() *Registry {
	return NewRegistry(zap.NewNop())
}

func TestJoinIsIdempotent(t *testing.T) {
	r := newTestRegistry()
	s := &fakeSender{}
	r.Register("c1", s)

	r.Join("c1", UserGroup("u1"))
	r.Join("c1", UserGroup("u1"))

	assert.Equal(t, 1, r.GroupSize(UserGroup("u1")))
}

func TestJoinUnregisteredConnectionIsNoOp(t *testing.T) {
	r := newTestRegistry()

	r.Join("ghost", UserGroup("u1"))

	assert.Zero(t, r.GroupSize(UserGroup("u1")))
}

func TestPublishReachesOnlyTargetGroup(t *testing.T) {
	r := newTestRegistry()
	alice := &fakeSender{}
	bob := &fakeSender{}
	r.Register("c1", alice)
	r.Register("c2", bob)
	r.Join("c1", UserGroup("alice"))
	r.Join("c2", UserGroup("bob"))

	r.PublishToUser("alice", map[string]string{"message": "hi"})

	assert.Len(t, alice.sent, 1)
	assert.JSONEq(t, `{"message":"hi"}`, string(alice.sent[0]))
	assert.Empty(t, bob.sent)
}

func TestPublishReachesAllSessionsOfSubject(t *testing.T) {
	r := newTestRegistry()
	tab1 := &fakeSender{}
	tab2 := &fakeSender{}
	r.Register("c1", tab1)
	r.Register("c2", tab2)
	r.Join("c1", UserGroup("alice"))
	r.Join("c2", UserGroup("alice"))

	r.PublishToUser("alice", map[string]string{"message": "hi"})

	assert.Len(t, tab1.sent, 1)
	assert.Len(t, tab2.sent, 1)
}

func TestAdminPublishSkipsNonAdmins(t *testing.T) {
	r := newTestRegistry()
	admin := &fakeSender{}
	user := &fakeSender{}
	r.Register("c1", admin)
	r.Register("c2", user)
	r.Join("c1", AdminGroup)
	r.Join("c2", UserGroup("bob"))

	r.PublishToAdmins(map[string]string{"message": "new registration"})

	assert.Len(t, admin.sent, 1)
	assert.Empty(t, user.sent)
}

func TestPublishSkipsDeadConnections(t *testing.T) {
	r := newTestRegistry()
	dead := &fakeSender{failed: true}
	live := &fakeSender{}
	r.Register("c1", dead)
	r.Register("c2", live)
	r.Join("c1", UserGroup("alice"))
	r.Join("c2", UserGroup("alice"))

	r.PublishToUser("alice", map[string]string{"message": "hi"})

	assert.Len(t, live.sent, 1)
}

func TestPublishOrderWithinGroup(t *testing.T) {
	r := newTestRegistry()
	s := &fakeSender{}
	r.Register("c1", s)
	r.Join("c1", UserGroup("alice"))

	r.PublishToUser("alice", map[string]int{"seq": 1})
	r.PublishToUser("alice", map[string]int{"seq": 2})
	r.PublishToUser("alice", map[string]int{"seq": 3})

	assert.Len(t, s.sent, 3)
	assert.JSONEq(t, `{"seq":1}`, string(s.sent[0]))
	assert.JSONEq(t, `{"seq":2}`, string(s.sent[1]))
	assert.JSONEq(t, `{"seq":3}`, string(s.sent[2]))
}

func TestLeaveIsIdempotent(t *testing.T) {
	r := newTestRegistry()
	s := &fakeSender{}
	r.Register("c1", s)
	r.Join("c1", UserGroup("alice"))
	r.Join("c1", AdminGroup)

	r.Leave("c1")
	r.Leave("c1")
	r.Leave("never-joined")

	assert.Zero(t, r.GroupSize(UserGroup("alice")))
	assert.Zero(t, r.GroupSize(AdminGroup))

	r.PublishToUser("alice", map[string]string{"message": "hi"})
	assert.Empty(t, s.sent)
}
