package services

import "errors"

// 状态机的错误只回传给发起方，房间状态保持不变
var (
	ErrRoomNotFound      = errors.New("房间不存在")
	ErrRoomExists        = errors.New("房间已存在？但为什么？")
	ErrServerFull        = errors.New("服务器已满，请稍后再试")
	ErrEmptyUsername     = errors.New("用户名呢")
	ErrRoomLocked        = errors.New("房间已锁定，无法加入")
	ErrGameInProgress    = errors.New("游戏正在进行中，无法加入")
	ErrUsernameTaken     = errors.New("换个名字吧")
	ErrPlayerNotFound    = errors.New("玩家不在房间中")
	ErrHostCannotReady   = errors.New("房主不需要准备")
	ErrNotHost           = errors.New("只有房主可以执行该操作")
	ErrNotAllReady       = errors.New("所有玩家必须准备好才能开始游戏")
	ErrNotManualMode     = errors.New("当前不在出题模式")
	ErrNotAnswerSetter   = errors.New("你不是指定的出题人")
	ErrNoCurrentGame     = errors.New("游戏尚未开始")
	ErrTargetNotFound    = errors.New("找不到选中的玩家")
	ErrKickSelf          = errors.New("不能踢出自己")
	ErrTargetDisconnect  = errors.New("目标玩家已断开连接")
	ErrInvalidGameResult = errors.New("无效的游戏结果")
	ErrInvalidSettings   = errors.New("无效的游戏设置")
	ErrInvalidPayload    = errors.New("无效的消息格式")
)
