package models

import "encoding/json"

// 客户端到服务端的事件名
const (
	EventCreateRoom           = "createRoom"
	EventJoinRoom             = "joinRoom"
	EventToggleReady          = "toggleReady"
	EventUpdateGameSettings   = "updateGameSettings"
	EventGameStart            = "gameStart"
	EventEnterManualMode      = "enterManualMode"
	EventSetAnswerSetter      = "setAnswerSetter"
	EventSetAnswer            = "setAnswer"
	EventPlayerGuess          = "playerGuess"
	EventGameEnd              = "gameEnd"
	EventKickPlayer           = "kickPlayer"
	EventTransferHost         = "transferHost"
	EventToggleRoomVisibility = "toggleRoomVisibility"
	EventRequestGameSettings  = "requestGameSettings"
)

// 服务端到客户端的事件名
const (
	EventUpdatePlayers      = "updatePlayers"
	EventWaitForAnswer      = "waitForAnswer"
	EventGuessHistoryUpdate = "guessHistoryUpdate"
	EventGameEnded          = "gameEnded"
	EventResetReadyStatus   = "resetReadyStatus"
	EventPlayerKicked       = "playerKicked"
	EventHostTransferred    = "hostTransferred"
	EventRoomClosed         = "roomClosed"
	EventError              = "error"
)

// ClientMessage WebSocket入站消息的统一外层结构
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage WebSocket出站消息的统一外层结构
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// 各事件的入站载荷，在网关边界校验后才会进入状态机

type CreateRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type RoomOnlyPayload struct {
	RoomID string `json:"roomId"`
}

type UpdateSettingsPayload struct {
	RoomID   string      `json:"roomId"`
	Settings *GameConfig `json:"settings"`
}

type GameStartPayload struct {
	RoomID    string      `json:"roomId"`
	Character *Character  `json:"character"`
	Settings  *GameConfig `json:"settings"`
}

type SetAnswerSetterPayload struct {
	RoomID   string `json:"roomId"`
	SetterID string `json:"setterId"`
}

type SetAnswerPayload struct {
	RoomID    string     `json:"roomId"`
	Character *Character `json:"character"`
	Hints     []string   `json:"hints"`
}

type PlayerGuessPayload struct {
	RoomID      string      `json:"roomId"`
	GuessResult GuessRecord `json:"guessResult"`
}

type GameEndPayload struct {
	RoomID string `json:"roomId"`
	Result string `json:"result"`
}

type KickPlayerPayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type TransferHostPayload struct {
	RoomID    string `json:"roomId"`
	NewHostID string `json:"newHostId"`
}

// 各事件的出站载荷

// UpdatePlayersPayload 玩家列表广播。AnswerSetterID有三种状态：
// 不携带（普通更新）、携带ID（已指定出题人）、显式null（清除出题人）
type UpdatePlayersPayload struct {
	Players        []*Player `json:"players"`
	IsPublic       *bool     `json:"isPublic,omitempty"`
	AnswerSetterID any       `json:"answerSetterId,omitempty"`
}

type WaitForAnswerPayload struct {
	AnswerSetterID string `json:"answerSetterId"`
	SetterUsername string `json:"setterUsername"`
}

// GameStartBroadcast 开局广播。Character为密文，出题人视角的消息额外带明文
type GameStartBroadcast struct {
	Character       string      `json:"character"` // 封装后的谜底
	AnswerCharacter *Character  `json:"answerCharacter,omitempty"`
	Settings        *GameConfig `json:"settings"`
	Players         []*Player   `json:"players"`
	IsPublic        bool        `json:"isPublic"`
	Hints           []string    `json:"hints,omitempty"`
	IsAnswerSetter  bool        `json:"isAnswerSetter"`
}

type GuessHistoryPayload struct {
	Guesses []*PlayerGuesses `json:"guesses"`
}

type GameEndedPayload struct {
	Message string           `json:"message"`
	Guesses []*PlayerGuesses `json:"guesses"`
}

type PlayerKickedPayload struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
}

type HostTransferredPayload struct {
	OldHostName string `json:"oldHostName"`
	NewHostID   string `json:"newHostId"`
	NewHostName string `json:"newHostName"`
}

type RoomClosedPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type SettingsPayload struct {
	Settings *GameConfig `json:"settings"`
}
