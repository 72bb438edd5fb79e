package services

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// StatsSink 计数器持久化能力。只接收单调递增/递减的写入，
// 游戏逻辑从不依赖它的读取结果
type StatsSink interface {
	IncrementAnswerCount(characterID int, characterName string) error
	IncrementTagVotes(characterID int, tags []string) error
	AdjustTagVotes(characterID int, upvotes, downvotes []string) error
	CharacterUsage(characterID int) (int, error)
	Close() error
}

// SQLiteStats 基于SQLite的计数器实现
type SQLiteStats struct {
	db *sql.DB
}

// OpenSQLiteStats 打开（必要时创建）计数器数据库
func OpenSQLiteStats(dsn string) (*SQLiteStats, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS answer_count (
		character_id   INTEGER PRIMARY KEY,
		character_name TEXT NOT NULL,
		count          INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS weekly_count (
		character_id   INTEGER PRIMARY KEY,
		character_name TEXT NOT NULL,
		count          INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS character_tags (
		character_id INTEGER NOT NULL,
		tag          TEXT NOT NULL,
		votes        INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (character_id, tag)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化统计表失败: %w", err)
	}

	return &SQLiteStats{db: db}, nil
}

// IncrementAnswerCount 谜底角色被使用一次，周榜和总榜各加1
func (s *SQLiteStats) IncrementAnswerCount(characterID int, characterName string) error {
	for _, table := range []string{"answer_count", "weekly_count"} {
		query := fmt.Sprintf(`INSERT INTO %s (character_id, character_name, count) VALUES (?, ?, 1)
			ON CONFLICT(character_id) DO UPDATE SET count = count + 1, character_name = excluded.character_name`, table)
		if _, err := s.db.Exec(query, characterID, characterName); err != nil {
			return err
		}
	}
	return nil
}

// IncrementTagVotes 为角色的每个标签投一票
func (s *SQLiteStats) IncrementTagVotes(characterID int, tags []string) error {
	return s.adjust(characterID, tags, nil)
}

// AdjustTagVotes 批量处理标签的赞成票和反对票
func (s *SQLiteStats) AdjustTagVotes(characterID int, upvotes, downvotes []string) error {
	return s.adjust(characterID, upvotes, downvotes)
}

func (s *SQLiteStats) adjust(characterID int, upvotes, downvotes []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `INSERT INTO character_tags (character_id, tag, votes) VALUES (?, ?, ?)
		ON CONFLICT(character_id, tag) DO UPDATE SET votes = votes + excluded.votes`
	for _, tag := range upvotes {
		if _, err := tx.Exec(query, characterID, tag, 1); err != nil {
			return err
		}
	}
	for _, tag := range downvotes {
		if _, err := tx.Exec(query, characterID, tag, -1); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CharacterUsage 查询角色作为谜底被使用的总次数
func (s *SQLiteStats) CharacterUsage(characterID int) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT count FROM answer_count WHERE character_id = ?`, characterID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}

// Close 关闭数据库
func (s *SQLiteStats) Close() error {
	return s.db.Close()
}

// StatsReporter 状态机使用的异步上报入口，调用后立即返回
type StatsReporter interface {
	ReportAnswerCharacter(characterID int, characterName string)
}

// AsyncStatsReporter 把计数写入排队到后台执行。
// 写入失败只记录日志，绝不回滚房间状态
type AsyncStatsReporter struct {
	sink   StatsSink
	jobs   chan func() error
	done   chan struct{}
	logger zerolog.Logger
}

// NewAsyncStatsReporter 创建异步上报器并启动后台协程
func NewAsyncStatsReporter(sink StatsSink, logger zerolog.Logger) *AsyncStatsReporter {
	r := &AsyncStatsReporter{
		sink:   sink,
		jobs:   make(chan func() error, 256),
		done:   make(chan struct{}),
		logger: logger,
	}
	go r.run()
	return r
}

func (r *AsyncStatsReporter) run() {
	defer close(r.done)
	for job := range r.jobs {
		if err := job(); err != nil {
			r.logger.Warn().Err(err).Msg("统计写入失败，已丢弃")
		}
	}
}

// ReportAnswerCharacter 上报谜底角色使用次数
func (r *AsyncStatsReporter) ReportAnswerCharacter(characterID int, characterName string) {
	r.enqueue(func() error {
		return r.sink.IncrementAnswerCount(characterID, characterName)
	})
}

func (r *AsyncStatsReporter) enqueue(job func() error) {
	select {
	case r.jobs <- job:
	default:
		r.logger.Warn().Msg("统计队列已满，丢弃本次写入")
	}
}

// Close 等待排队中的写入完成
func (r *AsyncStatsReporter) Close() {
	close(r.jobs)
	<-r.done
}
