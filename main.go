package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kennylimz/anime-character-guessr/services"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // 跨域校验交给CORS中间件，这里放行
		},
	}

	cfg          *Config
	roomRegistry *services.RoomManager
	webSocketMgr *services.WebSocketManager
	gameService  *services.GameService
	statsDB      *services.SQLiteStats
)

func main() {
	cfg = loadConfig()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Logger = logger

	statsDB, err = services.OpenSQLiteStats(cfg.StatsDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("dsn", cfg.StatsDSN).Msg("统计数据库打开失败")
	}
	defer statsDB.Close()

	reporter := services.NewAsyncStatsReporter(statsDB, logger)
	defer reporter.Close()

	sealer, err := services.NewAnswerSealer(cfg.AnswerSealSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("答案加密器初始化失败")
	}

	roomRegistry = services.NewRoomManager()
	webSocketMgr = services.NewWebSocketManager(logger)
	gameService = services.NewGameService(roomRegistry, webSocketMgr, sealer, reporter, logger)
	webSocketMgr.SetGameService(gameService)

	// 定时清理长时间无活动的房间
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n := gameService.SweepRooms(time.Now()); n > 0 {
				logger.Info().Int("count", n).Msg("已清理过期房间")
			}
		}
	}()

	r := gin.Default()
	r.Use(corsMiddleware(cfg.ClientURL))
	r.Use(rateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from the server!")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is active")
	})

	// 房间相关
	r.GET("/quick-join", quickJoin)
	r.GET("/room-count", roomCount)
	r.GET("/clean-rooms", cleanRooms)
	r.GET("/list-rooms", listRooms)
	r.GET("/room-info/:id", getRoomInfo)

	// 统计相关
	api := r.Group("/api")
	{
		api.POST("/character-tags", submitCharacterTags)
		api.POST("/tag-feedback", submitTagFeedback)
		api.POST("/answer-character-count", incrementAnswerCount)
		api.GET("/character-usage/:id", getCharacterUsage)
	}

	// WebSocket连接处理
	r.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("升级WebSocket连接失败")
			return
		}
		webSocketMgr.HandleConnection(conn)
	})

	logger.Info().Str("port", cfg.Port).Msg("服务器启动")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("服务器启动失败")
	}
}

// quickJoin 随机返回一个可加入的公开房间链接
func quickJoin(c *gin.Context) {
	roomID, ok := gameService.QuickJoin()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "没有可用的公开房间"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": cfg.ClientURL + "/multiplayer/" + roomID})
}

func roomCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": gameService.RoomCount()})
}

// cleanRooms 手动触发一次过期房间清理
func cleanRooms(c *gin.Context) {
	n := gameService.SweepRooms(time.Now())
	c.JSON(http.StatusOK, gin.H{"message": "已清理" + strconv.Itoa(n) + "个房间"})
}

// listRooms 返回房间快照，序列化发生在状态机锁外
func listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": gameService.RoomSnapshots()})
}

func getRoomInfo(c *gin.Context) {
	room, err := gameService.RoomSnapshot(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

func submitCharacterTags(c *gin.Context) {
	var req struct {
		CharacterID int      `json:"characterId" binding:"required"`
		Tags        []string `json:"tags" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statsDB.IncrementTagVotes(req.CharacterID, req.Tags); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "标签提交失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "标签提交成功"})
}

func submitTagFeedback(c *gin.Context) {
	var req struct {
		CharacterID int      `json:"characterId" binding:"required"`
		Upvotes     []string `json:"upvotes"`
		Downvotes   []string `json:"downvotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statsDB.AdjustTagVotes(req.CharacterID, req.Upvotes, req.Downvotes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "反馈提交失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "反馈提交成功"})
}

func incrementAnswerCount(c *gin.Context) {
	var req struct {
		CharacterID   int    `json:"characterId" binding:"required"`
		CharacterName string `json:"characterName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statsDB.IncrementAnswerCount(req.CharacterID, req.CharacterName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计数更新失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "计数更新成功"})
}

func getCharacterUsage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的角色ID"})
		return
	}

	count, err := statsDB.CharacterUsage(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"characterId": id, "count": count})
}
