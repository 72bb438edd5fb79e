package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/kennylimz/anime-character-guessr/models"
)

// MaxRooms 全局房间数量上限
const MaxRooms = 259

// RoomInactiveTimeout 房间无活动超过该时长且没有进行中的游戏时会被清理
const RoomInactiveTimeout = 5 * time.Minute

// RoomManager 房间注册表，独占持有所有房间
type RoomManager struct {
	rooms map[string]*models.Room
	mutex sync.RWMutex
}

// NewRoomManager 创建房间注册表实例
func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*models.Room),
	}
}

// CreateRoom 创建新房间，创建者成为唯一的房主玩家
func (rm *RoomManager) CreateRoom(roomID, playerID, username string) (*models.Room, error) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	if _, exists := rm.rooms[roomID]; exists {
		return nil, ErrRoomExists
	}
	if len(rm.rooms) >= MaxRooms {
		return nil, ErrServerFull
	}

	room := &models.Room{
		ID:       roomID,
		HostID:   playerID,
		IsPublic: true,
		Players: []*models.Player{{
			ID:       playerID,
			Username: username,
			IsHost:   true,
		}},
		LastActive: time.Now(),
	}
	rm.rooms[roomID] = room

	return room, nil
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(roomID string) (*models.Room, error) {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// DeleteRoom 删除房间，重复删除是无害的空操作
func (rm *RoomManager) DeleteRoom(roomID string) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	delete(rm.rooms, roomID)
}

// RoomCount 当前房间数量
func (rm *RoomManager) RoomCount() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	return len(rm.rooms)
}

// ListRooms 获取所有房间列表
func (rm *RoomManager) ListRooms() []*models.Room {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	rooms := make([]*models.Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// QuickJoin 随机挑选一个公开且未开局的房间
func (rm *RoomManager) QuickJoin() (string, bool) {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	candidates := make([]string, 0)
	for id, room := range rm.rooms {
		if room.IsPublic && !room.InProgress() {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// ExpiredRooms 列出超时且没有进行中游戏的房间ID，由调用方负责通知并删除
func (rm *RoomManager) ExpiredRooms(now time.Time, timeout time.Duration) []string {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	expired := lo.PickBy(rm.rooms, func(_ string, room *models.Room) bool {
		return !room.InProgress() && now.Sub(room.LastActive) > timeout
	})
	return lo.Keys(expired)
}
