package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennylimz/anime-character-guessr/models"
)

func TestRoomManagerCreateAndGet(t *testing.T) {
	rm := NewRoomManager()

	room, err := rm.CreateRoom("r1", "p1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "r1", room.ID)
	assert.True(t, room.IsPublic)

	got, err := rm.GetRoom("r1")
	require.NoError(t, err)
	assert.Same(t, room, got)

	_, err = rm.CreateRoom("r1", "p2", "bob")
	assert.ErrorIs(t, err, ErrRoomExists)

	_, err = rm.GetRoom("nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomManagerCapacity(t *testing.T) {
	rm := NewRoomManager()

	for i := 0; i < MaxRooms; i++ {
		_, err := rm.CreateRoom("room-"+strconv.Itoa(i), "p", "alice")
		require.NoError(t, err)
	}

	_, err := rm.CreateRoom("one-too-many", "p", "alice")
	assert.ErrorIs(t, err, ErrServerFull)
	assert.Equal(t, MaxRooms, rm.RoomCount())
}

func TestRoomManagerDeleteIsIdempotent(t *testing.T) {
	rm := NewRoomManager()
	_, err := rm.CreateRoom("r1", "p1", "alice")
	require.NoError(t, err)

	rm.DeleteRoom("r1")
	rm.DeleteRoom("r1")
	assert.Equal(t, 0, rm.RoomCount())
}

func TestQuickJoin(t *testing.T) {
	rm := NewRoomManager()

	_, ok := rm.QuickJoin()
	assert.False(t, ok, "没有房间时无可加入")

	locked, _ := rm.CreateRoom("locked", "p1", "alice")
	locked.IsPublic = false
	playing, _ := rm.CreateRoom("playing", "p2", "bob")
	playing.CurrentGame = &models.CurrentGame{}
	_, _ = rm.CreateRoom("open", "p3", "carol")

	roomID, ok := rm.QuickJoin()
	require.True(t, ok)
	assert.Equal(t, "open", roomID, "锁定和进行中的房间都不可快速加入")
}

func TestExpiredRooms(t *testing.T) {
	rm := NewRoomManager()
	now := time.Now()

	stale, _ := rm.CreateRoom("stale", "p1", "alice")
	stale.LastActive = now.Add(-10 * time.Minute)

	fresh, _ := rm.CreateRoom("fresh", "p2", "bob")
	fresh.LastActive = now

	// 超时但在游戏中的房间不清理
	busy, _ := rm.CreateRoom("busy", "p3", "carol")
	busy.LastActive = now.Add(-10 * time.Minute)
	busy.CurrentGame = &models.CurrentGame{}

	expired := rm.ExpiredRooms(now, RoomInactiveTimeout)
	assert.Equal(t, []string{"stale"}, expired)
}

func TestRoomHasUsername(t *testing.T) {
	room := &models.Room{Players: []*models.Player{
		{ID: "p1", Username: "Alice"},
	}}

	assert.True(t, room.HasUsername("alice"))
	assert.True(t, room.HasUsername("ALICE"))
	assert.False(t, room.HasUsername("bob"))
}
