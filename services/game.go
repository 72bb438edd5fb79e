package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/kennylimz/anime-character-guessr/models"
)

// KickGraceDelay 踢人时先单独通知被踢玩家，等待该时长后再把它移出广播组，
// 保证通知先于移除送达
const KickGraceDelay = 500 * time.Millisecond

// setterBonusThreshold 手动出题模式下，赢家的战绩符号超过该数量时出题人得1分
const setterBonusThreshold = 6

// Broadcaster 状态机向房间成员下发事件的能力
type Broadcaster interface {
	BroadcastToRoom(roomID, event string, payload any)
	BroadcastToRoomExcept(roomID, exceptID, event string, payload any)
	SendToPlayer(playerID, event string, payload any)
	DetachFromRoom(roomID, playerID string)
}

// GameService 房间状态机。所有状态迁移由同一把互斥锁串行化，
// 每次迁移要么完整生效并广播，要么原样拒绝只通知发起方
type GameService struct {
	registry *RoomManager
	ws       Broadcaster
	sealer   AnswerSealer
	stats    StatsReporter
	logger   zerolog.Logger
	mutex    sync.Mutex
}

// NewGameService 创建状态机实例
func NewGameService(registry *RoomManager, ws Broadcaster, sealer AnswerSealer, stats StatsReporter, logger zerolog.Logger) *GameService {
	return &GameService{
		registry: registry,
		ws:       ws,
		sealer:   sealer,
		stats:    stats,
		logger:   logger,
	}
}

// CreateRoom 创建房间，创建者成为房主
func (s *GameService) CreateRoom(playerID string, p models.CreateRoomPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	username := strings.TrimSpace(p.Username)
	if username == "" {
		return ErrEmptyUsername
	}

	room, err := s.registry.CreateRoom(p.RoomID, playerID, username)
	if err != nil {
		return err
	}

	s.broadcastPlayers(room, true, false)
	s.logger.Info().Str("room", room.ID).Str("username", username).Msg("房间已创建")
	return nil
}

// JoinRoom 加入房间。房间不存在时加入者隐式成为新房间的房主，
// 房间被清理后通过旧链接进入的玩家因此可以直接重建房间
func (s *GameService) JoinRoom(playerID string, p models.JoinRoomPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	username := strings.TrimSpace(p.Username)
	if username == "" {
		return ErrEmptyUsername
	}

	room, err := s.registry.GetRoom(p.RoomID)
	if err == ErrRoomNotFound {
		room, err = s.registry.CreateRoom(p.RoomID, playerID, username)
		if err != nil {
			return err
		}
		s.broadcastPlayers(room, true, false)
		s.logger.Info().Str("room", room.ID).Str("username", username).Msg("房间不存在，加入者成为新房主")
		return nil
	}
	if err != nil {
		return err
	}

	if !room.IsPublic {
		return ErrRoomLocked
	}
	if room.InProgress() {
		return ErrGameInProgress
	}
	if room.HasUsername(username) {
		return ErrUsernameTaken
	}

	room.Players = append(room.Players, &models.Player{
		ID:       playerID,
		Username: username,
	})
	room.Touch(time.Now())

	s.broadcastPlayers(room, true, false)
	s.logger.Info().Str("room", room.ID).Str("username", username).Msg("玩家加入房间")
	return nil
}

// ToggleReady 切换准备状态，房主不参与准备
func (s *GameService) ToggleReady(playerID, roomID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(roomID, playerID)
	if err != nil {
		return err
	}
	if player.IsHost {
		return ErrHostCannotReady
	}

	player.Ready = !player.Ready
	room.Touch(time.Now())

	s.broadcastPlayers(room, false, false)
	return nil
}

// UpdateSettings 房主更新游戏设置并原样同步给所有成员
func (s *GameService) UpdateSettings(playerID string, p models.UpdateSettingsPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}
	if err := validateSettings(p.Settings); err != nil {
		return err
	}

	room.Settings = p.Settings
	room.Touch(time.Now())

	s.ws.BroadcastToRoom(room.ID, models.EventUpdateGameSettings, models.SettingsPayload{Settings: p.Settings})
	return nil
}

// RequestGameSettings 把当前设置回发给请求方
func (s *GameService) RequestGameSettings(playerID, roomID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, _, err := s.roomAndPlayer(roomID, playerID)
	if err != nil {
		return err
	}

	if room.Settings != nil {
		s.ws.SendToPlayer(playerID, models.EventUpdateGameSettings, models.SettingsPayload{Settings: room.Settings})
	}
	return nil
}

// StartGame 房主开局。要求所有未断线的非房主玩家已准备
func (s *GameService) StartGame(playerID string, p models.GameStartPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}
	if p.Character == nil {
		return ErrInvalidPayload
	}
	if err := validateSettings(p.Settings); err != nil {
		return err
	}

	allReady := lo.EveryBy(room.Players, func(pl *models.Player) bool {
		return pl.IsHost || pl.Ready || pl.Disconnected
	})
	if !allReady {
		return ErrNotAllReady
	}

	sealed, err := s.sealer.Seal(p.Character)
	if err != nil {
		return err
	}

	room.IsPublic = false
	room.Settings = p.Settings
	s.purgeDisconnected(room)
	s.beginRound(room, p.Character, p.Settings, nil)

	s.ws.BroadcastToRoom(room.ID, models.EventGameStart, models.GameStartBroadcast{
		Character: sealed,
		Settings:  p.Settings,
		Players:   room.Players,
		IsPublic:  false,
	})

	s.stats.ReportAnswerCharacter(p.Character.ID, answerName(p.Character))
	s.logger.Info().Str("room", room.ID).Msg("游戏开始")
	return nil
}

// EnterManualMode 房主进入出题模式，所有非房主玩家自动置为准备
// （准备的含义是"可以被选为出题人"，并不开局）
func (s *GameService) EnterManualMode(playerID, roomID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(roomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}

	room.ManualMode = true
	for _, pl := range room.Players {
		if !pl.IsHost {
			pl.Ready = true
		}
	}
	room.Touch(time.Now())

	s.broadcastPlayers(room, true, false)
	s.logger.Info().Str("room", room.ID).Msg("进入出题模式")
	return nil
}

// SetAnswerSetter 房主指定出题人，房间进入等待出题状态
func (s *GameService) SetAnswerSetter(playerID string, p models.SetAnswerSetterPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}
	if !room.ManualMode {
		return ErrNotManualMode
	}
	setter := room.FindPlayer(p.SetterID)
	if setter == nil {
		return ErrTargetNotFound
	}

	room.IsPublic = false
	room.AnswerSetterID = p.SetterID
	room.WaitingForAnswer = true
	room.Touch(time.Now())

	s.broadcastPlayers(room, true, true)
	s.ws.BroadcastToRoom(room.ID, models.EventWaitForAnswer, models.WaitForAnswerPayload{
		AnswerSetterID: p.SetterID,
		SetterUsername: setter.Username,
	})
	s.logger.Info().Str("room", room.ID).Str("setter", setter.Username).Msg("已指定出题人")
	return nil
}

// SetAnswer 被指定的出题人提交谜底，等待出题状态转为开局。
// 出题人收到带明文谜底的特权视角，其他玩家只收到密文
func (s *GameService) SetAnswer(playerID string, p models.SetAnswerPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, err := s.registry.GetRoom(p.RoomID)
	if err != nil {
		return err
	}
	if !room.WaitingForAnswer || playerID != room.AnswerSetterID {
		return ErrNotAnswerSetter
	}
	if p.Character == nil {
		return ErrInvalidPayload
	}

	sealed, err := s.sealer.Seal(p.Character)
	if err != nil {
		return err
	}

	s.purgeDisconnected(room)
	setter := room.FindPlayer(playerID)
	if setter == nil {
		return ErrPlayerNotFound
	}

	room.WaitingForAnswer = false
	room.AnswerSetterID = ""
	room.ManualMode = false
	s.beginRound(room, p.Character, room.Settings, setter)

	// 先给出题人空的猜测历史，随后每次猜测都会单独推送给它
	s.ws.SendToPlayer(playerID, models.EventGuessHistoryUpdate, models.GuessHistoryPayload{
		Guesses: room.CurrentGame.Guesses,
	})

	s.ws.BroadcastToRoomExcept(room.ID, playerID, models.EventGameStart, models.GameStartBroadcast{
		Character: sealed,
		Settings:  room.Settings,
		Players:   room.Players,
		Hints:     p.Hints,
	})
	s.ws.SendToPlayer(playerID, models.EventGameStart, models.GameStartBroadcast{
		Character:       sealed,
		AnswerCharacter: p.Character,
		Settings:        room.Settings,
		Players:         room.Players,
		Hints:           p.Hints,
		IsAnswerSetter:  true,
	})

	s.stats.ReportAnswerCharacter(p.Character.ID, answerName(p.Character))
	s.logger.Info().Str("room", room.ID).Str("setter", setter.Username).Msg("出题人已提交谜底，游戏开始")
	return nil
}

// PlayerGuess 记录一次猜测。若本局有出题人，把实时猜测历史只推送给出题人，
// 避免向其他猜测者泄露进度
func (s *GameService) PlayerGuess(playerID string, p models.PlayerGuessPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !room.InProgress() {
		return ErrNoCurrentGame
	}

	if slot := room.CurrentGame.FindGuesses(player.Username); slot != nil {
		record := p.GuessResult
		record.PlayerID = playerID
		record.PlayerName = player.Username
		slot.Guesses = append(slot.Guesses, record)

		if setter := s.findAnswerSetter(room); setter != nil {
			s.ws.SendToPlayer(setter.ID, models.EventGuessHistoryUpdate, models.GuessHistoryPayload{
				Guesses: room.CurrentGame.Guesses,
			})
		}
	}

	if p.GuessResult.IsCorrect {
		player.Guesses += models.GlyphCorrect
	} else {
		player.Guesses += models.GlyphWrong
	}
	room.Touch(time.Now())

	s.broadcastPlayers(room, false, false)
	return nil
}

// GameEnd 玩家报告自己的一局结果。当所有参与猜测的玩家都到达终态
// （或断线）时本轮结束并结算
func (s *GameService) GameEnd(playerID string, p models.GameEndPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !room.InProgress() {
		return ErrNoCurrentGame
	}

	switch p.Result {
	case models.ResultWin:
		player.Guesses += models.GlyphWin
	case models.ResultSurrender:
		player.Guesses += models.GlyphSurrender
	case models.ResultTimeout:
		player.Guesses += models.GlyphTimeout
	case models.ResultLose:
		player.Guesses += models.GlyphLose
	default:
		return ErrInvalidGameResult
	}
	room.Touch(time.Now())

	active := lo.Filter(room.Players, func(pl *models.Player, _ int) bool {
		return !pl.IsAnswerSetter
	})
	winner, _ := lo.Find(active, func(pl *models.Player) bool {
		return strings.Contains(pl.Guesses, models.GlyphWin)
	})
	allEnded := lo.EveryBy(active, func(pl *models.Player) bool {
		return pl.Disconnected || hasTerminalGlyph(pl.Guesses)
	})

	if winner == nil && !allEnded {
		s.broadcastPlayers(room, false, false)
		return nil
	}

	if winner != nil {
		winner.Score++
	}
	s.finishRound(room, winner)
	return nil
}

// finishRound 结算并回到大厅状态
func (s *GameService) finishRound(room *models.Room, winner *models.Player) {
	setter := s.findAnswerSetter(room)

	var message string
	switch {
	case setter != nil && winner != nil:
		if len([]rune(winner.Guesses)) > setterBonusThreshold {
			setter.Score++
			message = fmt.Sprintf("赢家是: %s！出题人 %s 获得1分！", winner.Username, setter.Username)
		} else {
			message = fmt.Sprintf("赢家是: %s！", winner.Username)
		}
	case setter != nil:
		setter.Score--
		message = fmt.Sprintf("已经结束咧🙄！没人猜中，出题人 %s 扣1分！", setter.Username)
	case winner != nil:
		message = fmt.Sprintf("赢家是: %s", winner.Username)
	default:
		message = "已经结束咧🙄！没人猜中"
	}

	s.ws.BroadcastToRoom(room.ID, models.EventGameEnded, models.GameEndedPayload{
		Message: message,
		Guesses: room.CurrentGame.Guesses,
	})

	for _, pl := range room.Players {
		pl.IsAnswerSetter = false
		if !pl.IsHost {
			pl.Ready = false
		}
	}
	room.CurrentGame = nil
	room.ManualMode = false

	s.ws.BroadcastToRoom(room.ID, models.EventResetReadyStatus, nil)
	s.broadcastPlayers(room, true, true)
	s.logger.Info().Str("room", room.ID).Str("message", message).Msg("本轮结束")
}

// KickPlayer 房主踢出玩家。先单独通知被踢者，宽限期过后才移出广播组，
// 避免它先从玩家列表更新里看到自己消失
func (s *GameService) KickPlayer(playerID string, p models.KickPlayerPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}
	if p.PlayerID == playerID {
		return ErrKickSelf
	}
	target := room.FindPlayer(p.PlayerID)
	if target == nil {
		return ErrTargetNotFound
	}

	room.Players = lo.Reject(room.Players, func(pl *models.Player, _ int) bool {
		return pl.ID == p.PlayerID
	})
	room.Touch(time.Now())

	kicked := models.PlayerKickedPayload{PlayerID: target.ID, Username: target.Username}
	s.ws.SendToPlayer(target.ID, models.EventPlayerKicked, kicked)
	s.ws.BroadcastToRoomExcept(room.ID, target.ID, models.EventPlayerKicked, kicked)
	s.ws.BroadcastToRoomExcept(room.ID, target.ID, models.EventUpdatePlayers, models.UpdatePlayersPayload{
		Players:  room.Players,
		IsPublic: lo.ToPtr(room.IsPublic),
	})

	roomID, targetID := room.ID, target.ID
	time.AfterFunc(KickGraceDelay, func() {
		s.ws.DetachFromRoom(roomID, targetID)
	})

	s.logger.Info().Str("room", room.ID).Str("username", target.Username).Msg("玩家被踢出房间")
	return nil
}

// TransferHost 房主把房主身份转交给另一名在线玩家
func (s *GameService) TransferHost(playerID string, p models.TransferHostPayload) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(p.RoomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}
	target := room.FindPlayer(p.NewHostID)
	if target == nil {
		return ErrTargetNotFound
	}
	if target.Disconnected {
		return ErrTargetDisconnect
	}

	player.IsHost = false
	target.IsHost = true
	room.HostID = target.ID
	room.Touch(time.Now())

	s.ws.BroadcastToRoom(room.ID, models.EventHostTransferred, models.HostTransferredPayload{
		OldHostName: player.Username,
		NewHostID:   target.ID,
		NewHostName: target.Username,
	})
	s.broadcastPlayers(room, false, false)
	s.logger.Info().Str("room", room.ID).Str("newHost", target.Username).Msg("房主已转移")
	return nil
}

// ToggleVisibility 房主切换房间公开/私密
func (s *GameService) ToggleVisibility(playerID, roomID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, player, err := s.roomAndPlayer(roomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return ErrNotHost
	}

	room.IsPublic = !room.IsPublic
	room.Touch(time.Now())

	s.broadcastPlayers(room, true, false)
	return nil
}

// Disconnect 连接断开是一等公民的状态迁移：房主断线时房主身份顺位
// 转移给第一个在线玩家，无人可接任则关闭房间；非房主有分数则保留
// 记分牌（标记断线），零分则直接移除
func (s *GameService) Disconnect(playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, room := range s.registry.ListRooms() {
		player := room.FindPlayer(playerID)
		if player == nil {
			continue
		}

		if player.IsHost {
			s.handleHostLeave(room, player)
		} else {
			s.removeOrMark(room, player)
			s.broadcastPlayers(room, false, false)
		}
		return
	}
}

// handleHostLeave 房主离开时的顺位继承
func (s *GameService) handleHostLeave(room *models.Room, host *models.Player) {
	successor, found := lo.Find(room.Players, func(pl *models.Player) bool {
		return pl.ID != host.ID && !pl.Disconnected
	})
	if !found {
		s.ws.BroadcastToRoom(room.ID, models.EventRoomClosed, models.RoomClosedPayload{Message: "房主已断开连接"})
		s.registry.DeleteRoom(room.ID)
		s.logger.Info().Str("room", room.ID).Msg("房主断线且无人可接任，房间已关闭")
		return
	}

	host.IsHost = false
	successor.IsHost = true
	room.HostID = successor.ID
	room.Touch(time.Now())

	s.ws.BroadcastToRoom(room.ID, models.EventHostTransferred, models.HostTransferredPayload{
		OldHostName: host.Username,
		NewHostID:   successor.ID,
		NewHostName: successor.Username,
	})

	s.removeOrMark(room, host)
	s.broadcastPlayers(room, false, false)
	s.logger.Info().Str("room", room.ID).Str("newHost", successor.Username).Msg("房主断线，已顺位转移")
}

// removeOrMark 零分玩家直接移除，有分数的只标记断线以保留记分牌
func (s *GameService) removeOrMark(room *models.Room, player *models.Player) {
	if player.Score == 0 {
		room.Players = lo.Reject(room.Players, func(pl *models.Player, _ int) bool {
			return pl.ID == player.ID
		})
	} else {
		player.Disconnected = true
	}
}

// RoomCount 当前房间数量，供HTTP接口读取
func (s *GameService) RoomCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.registry.RoomCount()
}

// QuickJoin 随机挑选一个可加入的公开房间
func (s *GameService) QuickJoin() (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.registry.QuickJoin()
}

// RoomSnapshots 所有房间的只读快照。房间状态只在本状态机的锁内变化，
// 快照也必须在锁内生成，锁外序列化才不会读到写了一半的数据
func (s *GameService) RoomSnapshots() []*models.Room {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rooms := s.registry.ListRooms()
	snapshots := make([]*models.Room, 0, len(rooms))
	for _, room := range rooms {
		snapshots = append(snapshots, room.Snapshot())
	}
	return snapshots
}

// RoomSnapshot 单个房间的只读快照
func (s *GameService) RoomSnapshot(roomID string) (*models.Room, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	return room.Snapshot(), nil
}

// SweepRooms 清理超时且未开局的房间，返回清理数量。
// 由外部定时器周期触发，也可通过HTTP手动触发
func (s *GameService) SweepRooms(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	expired := s.registry.ExpiredRooms(now, RoomInactiveTimeout)
	for _, roomID := range expired {
		s.ws.BroadcastToRoom(roomID, models.EventRoomClosed, models.RoomClosedPayload{Message: "房间因长时间无活动已关闭"})
		s.registry.DeleteRoom(roomID)
		s.logger.Info().Str("room", roomID).Msg("房间因长时间无活动已关闭")
	}
	return len(expired)
}

// beginRound 创建CurrentGame并重置所有玩家的本轮状态。
// setter非空时为手动出题模式：出题人不参与猜测也没有猜测槽位
func (s *GameService) beginRound(room *models.Room, character *models.Character, settings *models.GameConfig, setter *models.Player) {
	game := &models.CurrentGame{
		Settings:          settings,
		Guesses:           make([]*models.PlayerGuesses, 0, len(room.Players)),
		AnswerCharacterID: character.ID,
	}

	for _, pl := range room.Players {
		pl.Guesses = ""
		pl.IsAnswerSetter = setter != nil && pl.ID == setter.ID
		if pl.IsAnswerSetter {
			continue
		}
		if setter == nil && pl.IsHost {
			continue
		}
		game.Guesses = append(game.Guesses, &models.PlayerGuesses{
			Username: pl.Username,
			Guesses:  make([]models.GuessRecord, 0),
		})
	}

	room.CurrentGame = game
	room.Touch(time.Now())
}

// purgeDisconnected 开局前清掉断线且零分的玩家
func (s *GameService) purgeDisconnected(room *models.Room) {
	room.Players = lo.Filter(room.Players, func(pl *models.Player, _ int) bool {
		return !pl.Disconnected || pl.Score > 0
	})
}

func (s *GameService) findAnswerSetter(room *models.Room) *models.Player {
	setter, _ := lo.Find(room.Players, func(pl *models.Player) bool {
		return pl.IsAnswerSetter
	})
	return setter
}

func (s *GameService) roomAndPlayer(roomID, playerID string) (*models.Room, *models.Player, error) {
	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return nil, nil, err
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, nil, ErrPlayerNotFound
	}
	return room, player, nil
}

// broadcastPlayers 广播最新的玩家列表，客户端以最近一次广播为准
func (s *GameService) broadcastPlayers(room *models.Room, withPublic, withSetter bool) {
	payload := models.UpdatePlayersPayload{Players: room.Players}
	if withPublic {
		payload.IsPublic = lo.ToPtr(room.IsPublic)
	}
	if withSetter {
		if room.AnswerSetterID == "" {
			// 非空接口包裹nil指针，序列化为显式null而不是被omitempty略去
			payload.AnswerSetterID = (*string)(nil)
		} else {
			payload.AnswerSetterID = room.AnswerSetterID
		}
	}
	s.ws.BroadcastToRoom(room.ID, models.EventUpdatePlayers, payload)
}

// hasTerminalGlyph 检查战绩字符串是否包含终态符号
func hasTerminalGlyph(guesses string) bool {
	for _, glyph := range []string{models.GlyphWin, models.GlyphLose, models.GlyphSurrender, models.GlyphTimeout} {
		if strings.Contains(guesses, glyph) {
			return true
		}
	}
	return false
}

// answerName 中文名优先的展示名
func answerName(c *models.Character) string {
	if c.NameCN != "" {
		return c.NameCN
	}
	return c.Name
}

// validateSettings 在进入状态机之前拒绝非法设置
func validateSettings(cfg *models.GameConfig) error {
	if cfg == nil {
		return ErrInvalidSettings
	}
	if cfg.MaxAttempts < 1 || cfg.MaxAttempts > 15 {
		return ErrInvalidSettings
	}
	if cfg.StartYear > cfg.EndYear {
		return ErrInvalidSettings
	}
	if len(cfg.MetaTags) > 3 {
		return ErrInvalidSettings
	}
	if cfg.TimeLimit != nil && *cfg.TimeLimit <= 0 {
		return ErrInvalidSettings
	}
	// 提示解锁阈值必须严格递减且不超过最大尝试次数
	prev := cfg.MaxAttempts + 1
	for _, threshold := range cfg.UseHints {
		if threshold <= 0 || threshold > cfg.MaxAttempts || threshold >= prev {
			return ErrInvalidSettings
		}
		prev = threshold
	}
	return nil
}
