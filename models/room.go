package models

import (
	"strings"
	"time"
)

// 玩家战绩字符串中使用的符号
const (
	GlyphCorrect   = "✔"
	GlyphWrong     = "❌"
	GlyphWin       = "✌"
	GlyphLose      = "💀"
	GlyphSurrender = "🏳️"
	GlyphTimeout   = "⏱️"
)

// 一局游戏的结束方式
const (
	ResultWin       = "win"
	ResultLose      = "lose"
	ResultSurrender = "surrender"
	ResultTimeout   = "timeout"
)

// Player 房间内的一名玩家
type Player struct {
	ID             string `json:"id"` // 连接ID
	Username       string `json:"username"`
	IsHost         bool   `json:"isHost"`
	Ready          bool   `json:"ready"`
	Score          int    `json:"score"`
	Guesses        string `json:"guesses"` // 本轮战绩符号序列
	Disconnected   bool   `json:"disconnected,omitempty"`
	IsAnswerSetter bool   `json:"isAnswerSetter,omitempty"`
	Team           string `json:"team,omitempty"`
	Message        string `json:"message,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// GuessRecord 一次已提交的猜测
type GuessRecord struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName"`
	IsCorrect  bool           `json:"isCorrect"`
	GuessData  map[string]any `json:"guessData,omitempty"`
}

// PlayerGuesses 某名玩家在本轮的全部猜测
type PlayerGuesses struct {
	Username string        `json:"username"`
	Guesses  []GuessRecord `json:"guesses"`
}

// CurrentGame 正在进行的一轮游戏，轮次结束后清空
type CurrentGame struct {
	Settings          *GameConfig      `json:"settings"`
	Guesses           []*PlayerGuesses `json:"guesses"`
	AnswerCharacterID int              `json:"-"`
}

// FindGuesses 按用户名查找猜测记录槽位
func (g *CurrentGame) FindGuesses(username string) *PlayerGuesses {
	for _, pg := range g.Guesses {
		if pg.Username == username {
			return pg
		}
	}
	return nil
}

// Room 一个多人游戏房间
type Room struct {
	ID               string       `json:"id"`
	HostID           string       `json:"hostId"`
	IsPublic         bool         `json:"isPublic"`
	Players          []*Player    `json:"players"`
	Settings         *GameConfig  `json:"settings,omitempty"`
	CurrentGame      *CurrentGame `json:"currentGame,omitempty"`
	ManualMode       bool         `json:"manualMode,omitempty"`
	AnswerSetterID   string       `json:"answerSetterId,omitempty"`
	WaitingForAnswer bool         `json:"waitingForAnswer,omitempty"`
	LastActive       time.Time    `json:"lastActive"`
}

// FindPlayer 按连接ID查找玩家
func (r *Room) FindPlayer(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// HasUsername 检查用户名是否已被占用（忽略大小写）
func (r *Room) HasUsername(username string) bool {
	for _, p := range r.Players {
		if strings.EqualFold(p.Username, username) {
			return true
		}
	}
	return false
}

// Touch 刷新房间最后活跃时间
func (r *Room) Touch(now time.Time) {
	r.LastActive = now
}

// InProgress 判断是否有一轮游戏正在进行
func (r *Room) InProgress() bool {
	return r.CurrentGame != nil
}

// Snapshot 生成可在锁外安全读取和序列化的深拷贝。
// Settings在更新时整体替换、从不原地修改，浅拷贝指针即可
func (r *Room) Snapshot() *Room {
	clone := *r
	clone.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		pc := *p
		clone.Players[i] = &pc
	}
	if r.CurrentGame != nil {
		game := *r.CurrentGame
		game.Guesses = make([]*PlayerGuesses, len(r.CurrentGame.Guesses))
		for i, pg := range r.CurrentGame.Guesses {
			pgc := *pg
			pgc.Guesses = append([]GuessRecord(nil), pg.Guesses...)
			game.Guesses[i] = &pgc
		}
		clone.CurrentGame = &game
	}
	return &clone
}
