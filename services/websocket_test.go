package services

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennylimz/anime-character-guessr/models"
)

// newTestGateway 按main.go的方式把网关和状态机互相接好
func newTestGateway() (*WebSocketManager, *GameService) {
	wm := NewWebSocketManager(zerolog.Nop())
	svc := NewGameService(NewRoomManager(), wm, plainSealer{}, nopStats{}, zerolog.Nop())
	wm.SetGameService(svc)
	return wm, svc
}

// newTestClient 注册一条没有底层连接的客户端，测试只操作send队列
func newTestClient(wm *WebSocketManager, id string) *Client {
	client := &Client{
		ID:   id,
		send: make(chan models.ServerMessage, sendBufferSize),
	}
	wm.mutex.Lock()
	wm.clients[client.ID] = client
	wm.mutex.Unlock()
	return client
}

func mustMessage(t *testing.T, event string, payload any) models.ClientMessage {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return models.ClientMessage{Type: event, Payload: raw}
}

func drain(client *Client) []models.ServerMessage {
	msgs := make([]models.ServerMessage, 0)
	for {
		select {
		case msg, ok := <-client.send:
			if !ok {
				return msgs
			}
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestPushAfterUnregisterDoesNotPanic(t *testing.T) {
	wm, _ := newTestGateway()
	client := newTestClient(wm, "p1")
	wm.joinGroup("r1", client)

	// 广播先快照目标再逐个投递，目标可能在投递前已注销
	wm.unregister(client)

	assert.NotPanics(t, func() {
		wm.push(client, models.EventUpdatePlayers, nil)
		wm.BroadcastToRoom("r1", models.EventUpdatePlayers, nil)
	})
}

func TestBroadcastConcurrentWithUnregister(t *testing.T) {
	wm, _ := newTestGateway()

	for i := 0; i < 200; i++ {
		client := newTestClient(wm, "p1")
		wm.joinGroup("r1", client)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				wm.BroadcastToRoom("r1", models.EventUpdatePlayers, nil)
			}
		}()
		go func() {
			defer wg.Done()
			wm.unregister(client)
		}()
		wg.Wait()
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	wm, _ := newTestGateway()
	client := newTestClient(wm, "p1")

	assert.NotPanics(t, func() {
		wm.unregister(client)
		wm.unregister(client)
		client.shutdown()
	})
}

func TestRejoinFailureKeepsBroadcastGroup(t *testing.T) {
	wm, _ := newTestGateway()
	host := newTestClient(wm, "p1")
	guest := newTestClient(wm, "p2")

	wm.dispatch(host, mustMessage(t, models.EventCreateRoom, models.CreateRoomPayload{RoomID: "r1", Username: "alice"}))
	wm.dispatch(guest, mustMessage(t, models.EventJoinRoom, models.JoinRoomPayload{RoomID: "r1", Username: "bob"}))
	drain(host)
	drain(guest)

	// 已在房间里的连接再次joinRoom被拒绝，但不能因此被移出广播组
	wm.dispatch(guest, mustMessage(t, models.EventJoinRoom, models.JoinRoomPayload{RoomID: "r1", Username: "alice"}))

	msgs := drain(guest)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.EventError, msgs[0].Type)
	assert.Equal(t, ErrUsernameTaken.Error(), msgs[0].Payload.(models.ErrorPayload).Message)

	wm.BroadcastToRoom("r1", models.EventUpdatePlayers, nil)
	assert.Len(t, drain(guest), 1, "拒绝后的成员仍能收到房间广播")
	assert.Len(t, drain(host), 1)
}

func TestCreateRoomFailureDetachesNewcomerOnly(t *testing.T) {
	wm, _ := newTestGateway()
	host := newTestClient(wm, "p1")
	stranger := newTestClient(wm, "p3")

	wm.dispatch(host, mustMessage(t, models.EventCreateRoom, models.CreateRoomPayload{RoomID: "r1", Username: "alice"}))
	drain(host)

	// 外来连接创建已存在的房间失败，它本次新加入的组成员资格被回滚
	wm.dispatch(stranger, mustMessage(t, models.EventCreateRoom, models.CreateRoomPayload{RoomID: "r1", Username: "carol"}))
	msgs := drain(stranger)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.EventError, msgs[0].Type)

	wm.BroadcastToRoom("r1", models.EventUpdatePlayers, nil)
	assert.Empty(t, drain(stranger), "创建失败的外来连接不在广播组里")
	assert.Len(t, drain(host), 1)
}
