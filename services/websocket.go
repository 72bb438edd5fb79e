package services

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/kennylimz/anime-character-guessr/models"
)

// maxMessageSize 入站消息大小上限
const maxMessageSize = 512 * 1024

// sendBufferSize 每个连接的发送队列长度，写满时丢弃消息而不是阻塞状态机
const sendBufferSize = 32

// Client 一条WebSocket连接。send通道只会在shutdown里关闭一次，
// mu保证关闭后不会再有投递写入已关闭的通道
type Client struct {
	ID     string
	conn   *websocket.Conn
	send   chan models.ServerMessage
	mu     sync.Mutex
	closed bool
}

// shutdown 关闭发送队列，重复调用是空操作
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// WebSocketManager 会话网关：把入站事件翻译成状态机调用，
// 并把状态机的广播按迁移顺序下发给房间成员
type WebSocketManager struct {
	clients map[string]*Client
	rooms   map[string]map[string]*Client // roomID -> playerID -> client
	game    *GameService
	logger  zerolog.Logger
	mutex   sync.RWMutex
}

// NewWebSocketManager 创建会话网关实例
func NewWebSocketManager(logger zerolog.Logger) *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  logger,
	}
}

// SetGameService 注入状态机（网关与状态机互相引用，构造后再绑定）
func (wm *WebSocketManager) SetGameService(game *GameService) {
	wm.game = game
}

// HandleConnection 接管一条新连接，阻塞直到连接关闭
func (wm *WebSocketManager) HandleConnection(conn *websocket.Conn) {
	client := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan models.ServerMessage, sendBufferSize),
	}

	wm.mutex.Lock()
	wm.clients[client.ID] = client
	wm.mutex.Unlock()

	wm.logger.Info().Str("player", client.ID).Msg("新连接")

	go client.writePump()
	wm.readPump(client)
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (wm *WebSocketManager) readPump(client *Client) {
	defer func() {
		wm.game.Disconnect(client.ID)
		wm.unregister(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wm.logger.Debug().Err(err).Str("player", client.ID).Msg("连接异常断开")
			}
			return
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			wm.sendError(client.ID, ErrInvalidPayload)
			continue
		}
		wm.dispatch(client, msg)
	}
}

// dispatch 在网关边界把动态载荷解码成各事件的类型化结构，
// 状态机永远不会见到畸形输入
func (wm *WebSocketManager) dispatch(client *Client, msg models.ClientMessage) {
	var err error

	switch msg.Type {
	case models.EventCreateRoom:
		var p models.CreateRoomPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			// 先入组再迁移，保证创建成功的第一条广播就能送达自己；
			// 失败时只回滚本次新加入，不影响已是成员的连接
			joined := wm.joinGroup(p.RoomID, client)
			if err = wm.game.CreateRoom(client.ID, p); err != nil && joined {
				wm.DetachFromRoom(p.RoomID, client.ID)
			}
		}

	case models.EventJoinRoom:
		var p models.JoinRoomPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			joined := wm.joinGroup(p.RoomID, client)
			if err = wm.game.JoinRoom(client.ID, p); err != nil && joined {
				wm.DetachFromRoom(p.RoomID, client.ID)
			}
		}

	case models.EventToggleReady:
		var p models.RoomOnlyPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.ToggleReady(client.ID, p.RoomID)
		}

	case models.EventUpdateGameSettings:
		var p models.UpdateSettingsPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.UpdateSettings(client.ID, p)
		}

	case models.EventRequestGameSettings:
		var p models.RoomOnlyPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.RequestGameSettings(client.ID, p.RoomID)
		}

	case models.EventGameStart:
		var p models.GameStartPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.StartGame(client.ID, p)
		}

	case models.EventEnterManualMode:
		var p models.RoomOnlyPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.EnterManualMode(client.ID, p.RoomID)
		}

	case models.EventSetAnswerSetter:
		var p models.SetAnswerSetterPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.SetAnswerSetter(client.ID, p)
		}

	case models.EventSetAnswer:
		var p models.SetAnswerPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.SetAnswer(client.ID, p)
		}

	case models.EventPlayerGuess:
		var p models.PlayerGuessPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.PlayerGuess(client.ID, p)
		}

	case models.EventGameEnd:
		var p models.GameEndPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.GameEnd(client.ID, p)
		}

	case models.EventKickPlayer:
		var p models.KickPlayerPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.KickPlayer(client.ID, p)
		}

	case models.EventTransferHost:
		var p models.TransferHostPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.TransferHost(client.ID, p)
		}

	case models.EventToggleRoomVisibility:
		var p models.RoomOnlyPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = wm.game.ToggleVisibility(client.ID, p.RoomID)
		}

	default:
		wm.logger.Warn().Str("type", msg.Type).Msg("未知的消息类型")
		return
	}

	if err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			err = ErrInvalidPayload
		}
		wm.sendError(client.ID, err)
	}
}

// joinGroup 把连接加入房间广播组，返回本次是否真的新加入。
// 已在组内的成员重复加入是空操作，调用方据此决定失败时要不要回滚
func (wm *WebSocketManager) joinGroup(roomID string, client *Client) bool {
	wm.mutex.Lock()
	defer wm.mutex.Unlock()

	group, exists := wm.rooms[roomID]
	if !exists {
		group = make(map[string]*Client)
		wm.rooms[roomID] = group
	}
	if _, member := group[client.ID]; member {
		return false
	}
	group[client.ID] = client
	return true
}

// DetachFromRoom 把连接移出房间广播组
func (wm *WebSocketManager) DetachFromRoom(roomID, playerID string) {
	wm.mutex.Lock()
	defer wm.mutex.Unlock()

	if group, exists := wm.rooms[roomID]; exists {
		delete(group, playerID)
		if len(group) == 0 {
			delete(wm.rooms, roomID)
		}
	}
}

// SendToPlayer 向指定玩家发送事件
func (wm *WebSocketManager) SendToPlayer(playerID, event string, payload any) {
	wm.mutex.RLock()
	client, exists := wm.clients[playerID]
	wm.mutex.RUnlock()

	if !exists {
		return
	}
	wm.push(client, event, payload)
}

// BroadcastToRoom 向房间内所有连接广播事件
func (wm *WebSocketManager) BroadcastToRoom(roomID, event string, payload any) {
	wm.BroadcastToRoomExcept(roomID, "", event, payload)
}

// BroadcastToRoomExcept 向房间内除exceptID外的所有连接广播事件
func (wm *WebSocketManager) BroadcastToRoomExcept(roomID, exceptID, event string, payload any) {
	wm.mutex.RLock()
	group := wm.rooms[roomID]
	targets := make([]*Client, 0, len(group))
	for id, client := range group {
		if id == exceptID {
			continue
		}
		targets = append(targets, client)
	}
	wm.mutex.RUnlock()

	for _, client := range targets {
		wm.push(client, event, payload)
	}
}

// push 非阻塞投递：连接已注销时静默丢弃，发送队列写满说明客户端读得太慢。
// 广播在快照目标后才逐个投递，期间目标可能已经注销，所以必须在client锁内检查
func (wm *WebSocketManager) push(client *Client, event string, payload any) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed {
		return
	}
	select {
	case client.send <- models.ServerMessage{Type: event, Payload: payload}:
	default:
		wm.logger.Warn().Str("player", client.ID).Str("event", event).Msg("发送队列已满，消息被丢弃")
	}
}

func (wm *WebSocketManager) sendError(playerID string, err error) {
	wm.SendToPlayer(playerID, models.EventError, models.ErrorPayload{Message: err.Error()})
}

// unregister 连接关闭后的清理
func (wm *WebSocketManager) unregister(client *Client) {
	wm.mutex.Lock()
	defer wm.mutex.Unlock()

	if _, exists := wm.clients[client.ID]; !exists {
		return
	}
	delete(wm.clients, client.ID)
	client.shutdown()

	for roomID, group := range wm.rooms {
		delete(group, client.ID)
		if len(group) == 0 {
			delete(wm.rooms, roomID)
		}
	}
}
