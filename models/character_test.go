package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHintVisible(t *testing.T) {
	cfg := &GameConfig{MaxAttempts: 10, UseHints: []int{5, 2}}

	// 剩余次数降到阈值时提示解锁
	assert.False(t, cfg.HintVisible(0, 6))
	assert.True(t, cfg.HintVisible(0, 5))
	assert.True(t, cfg.HintVisible(0, 1))

	assert.False(t, cfg.HintVisible(1, 3))
	assert.True(t, cfg.HintVisible(1, 2))

	// 越界索引永不解锁
	assert.False(t, cfg.HintVisible(2, 1))
	assert.False(t, cfg.HintVisible(-1, 1))
}

func TestHintVisibleWithoutHints(t *testing.T) {
	cfg := &GameConfig{MaxAttempts: 10}
	assert.False(t, cfg.HintVisible(0, 1))
}
