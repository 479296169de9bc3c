package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// AdminGroup is the broadcast group shared by all authenticated admins.
const AdminGroup = "admin-channel"

// UserGroup returns the per-subject broadcast group name.
func UserGroup(subjectID string) string {
	return "user-" + subjectID
}

// Sender delivers an already-marshaled payload to one live connection.
type Sender interface {
	Send(data []byte) error
}

// Publisher is the interface request handlers use to push notification
// events to connected clients. Delivery is best effort, at most once; there
// is no queuing or replay for offline subjects.
type Publisher interface {
	PublishToUser(subjectID string, payload any)
	PublishToAdmins(payload any)
}

// Registry maps live connections to broadcast groups. Membership is mutated
// only by the gateway's handshake and disconnect paths; publish callers only
// read it. Constructed once at startup and passed by handle, never a global.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]Sender
	groups map[string]map[string]struct{}
	joined map[string]map[string]struct{}

	// publishMu serializes publishes so delivery order within a group
	// follows publish call order.
	publishMu sync.Mutex

	logger *zap.Logger
}

// NewRegistry builds an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]Sender),
		groups: make(map[string]map[string]struct{}),
		joined: make(map[string]map[string]struct{}),
		logger: logger,
	}
}

// Register tracks a new connection. The connection belongs to no group until
// the gateway joins it after a successful handshake.
func (r *Registry) Register(connID string, sender Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[connID] = sender
}

// Join adds the connection to the named group. Idempotent; joining the same
// group twice is a no-op. Unknown connections are ignored so membership is
// never added speculatively.
func (r *Registry) Join(connID, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[connID]; !ok {
		return
	}

	if r.groups[group] == nil {
		r.groups[group] = make(map[string]struct{})
	}
	r.groups[group][connID] = struct{}{}

	if r.joined[connID] == nil {
		r.joined[connID] = make(map[string]struct{})
	}
	r.joined[connID][group] = struct{}{}
}

// Leave removes the connection from every group it belongs to and forgets
// it. Idempotent; calling it for an unknown connection has no effect.
func (r *Registry) Leave(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for group := range r.joined[connID] {
		delete(r.groups[group], connID)
		if len(r.groups[group]) == 0 {
			delete(r.groups, group)
		}
	}
	delete(r.joined, connID)
	delete(r.conns, connID)
}

// Publish delivers the payload to every connection currently in the group.
// Connections whose transport has failed are skipped silently.
func (r *Registry) Publish(group string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("marshal publish payload", zap.Error(err), zap.String("group", group))
		return
	}

	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	r.mu.RLock()
	members := make([]Sender, 0, len(r.groups[group]))
	for connID := range r.groups[group] {
		if sender, ok := r.conns[connID]; ok {
			members = append(members, sender)
		}
	}
	r.mu.RUnlock()

	for _, sender := range members {
		if err := sender.Send(data); err != nil {
			r.logger.Debug("skipping dead connection", zap.String("group", group), zap.Error(err))
		}
	}
}

// PublishToUser pushes a payload to every open session of one subject.
func (r *Registry) PublishToUser(subjectID string, payload any) {
	r.Publish(UserGroup(subjectID), payload)
}

// PublishToAdmins pushes a payload to every connected admin session.
func (r *Registry) PublishToAdmins(payload any) {
	r.Publish(AdminGroup, payload)
}

// GroupSize reports current membership of a group.
func (r *Registry) GroupSize(group string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[group])
}
