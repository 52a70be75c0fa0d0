// Package ws relays chat messages and presence changes over websockets.
// Sockets are grouped by organization and by room; a room is the user id
// of the socket owner, so every tab of a user receives the same frames.
package ws

import (
	"sync"

	"github.com/google/uuid"
)

type roomKey struct {
	organizationID uuid.UUID
	room           string
}

// Hub tracks connected clients. All operations are safe for concurrent use.
type Hub struct {
	mu    sync.RWMutex
	rooms map[roomKey]map[*Client]struct{}
	orgs  map[uuid.UUID]map[*Client]struct{}
	all   map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[roomKey]map[*Client]struct{}),
		orgs:  make(map[uuid.UUID]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
	}
}

// Register adds the client to its organization and its initial rooms
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}

	orgID := client.Scope.OrganizationID
	if h.orgs[orgID] == nil {
		h.orgs[orgID] = make(map[*Client]struct{})
	}
	h.orgs[orgID][client] = struct{}{}

	for _, room := range client.rooms {
		h.addToRoom(client, room)
	}
}

// Unregister removes the client everywhere and closes its Send channel
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	orgID := client.Scope.OrganizationID
	for _, room := range client.rooms {
		key := roomKey{organizationID: orgID, room: room}
		if members, ok := h.rooms[key]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, key)
			}
		}
	}
	if members, ok := h.orgs[orgID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.orgs, orgID)
		}
	}

	delete(h.all, client)
	close(client.Send)
}

// Join adds an already registered client to a room of its organization
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for _, r := range client.rooms {
		if r == room {
			return
		}
	}
	h.addToRoom(client, room)
	client.rooms = append(client.rooms, room)
}

func (h *Hub) addToRoom(client *Client, room string) {
	key := roomKey{organizationID: client.Scope.OrganizationID, room: room}
	if h.rooms[key] == nil {
		h.rooms[key] = make(map[*Client]struct{})
	}
	h.rooms[key][client] = struct{}{}
}

// PublishToRooms sends the frame once to every client in any of the rooms
func (h *Hub) PublishToRooms(organizationID uuid.UUID, rooms []string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := make(map[*Client]struct{})
	for _, room := range rooms {
		for client := range h.rooms[roomKey{organizationID: organizationID, room: room}] {
			if _, done := sent[client]; done {
				continue
			}
			sent[client] = struct{}{}
			client.enqueue(frame)
		}
	}
}

// PublishToOrganization sends the frame to every client of the organization
func (h *Hub) PublishToOrganization(organizationID uuid.UUID, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.orgs[organizationID] {
		client.enqueue(frame)
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients joined to a room.
func (h *Hub) RoomCount(organizationID uuid.UUID, room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomKey{organizationID: organizationID, room: room}])
}
