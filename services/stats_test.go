package services

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStats(t *testing.T) *SQLiteStats {
	t.Helper()
	stats, err := OpenSQLiteStats(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { stats.Close() })
	return stats
}

func TestIncrementAnswerCount(t *testing.T) {
	stats := newTestStats(t)

	require.NoError(t, stats.IncrementAnswerCount(42, "蕾姆"))
	require.NoError(t, stats.IncrementAnswerCount(42, "蕾姆"))
	require.NoError(t, stats.IncrementAnswerCount(7, "爱蜜莉雅"))

	count, err := stats.CharacterUsage(42)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = stats.CharacterUsage(7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCharacterUsageUnknown(t *testing.T) {
	stats := newTestStats(t)

	count, err := stats.CharacterUsage(999)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTagVotes(t *testing.T) {
	stats := newTestStats(t)

	require.NoError(t, stats.IncrementTagVotes(42, []string{"女仆", "蓝发"}))
	require.NoError(t, stats.IncrementTagVotes(42, []string{"女仆"}))
	require.NoError(t, stats.AdjustTagVotes(42, []string{"蓝发"}, []string{"女仆"}))

	rows, err := stats.db.Query(`SELECT tag, votes FROM character_tags WHERE character_id = ? ORDER BY tag`, 42)
	require.NoError(t, err)
	defer rows.Close()

	votes := map[string]int{}
	for rows.Next() {
		var tag string
		var n int
		require.NoError(t, rows.Scan(&tag, &n))
		votes[tag] = n
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]int{"女仆": 1, "蓝发": 2}, votes)
}

func TestAsyncReporterFlushesOnClose(t *testing.T) {
	stats := newTestStats(t)
	reporter := NewAsyncStatsReporter(stats, zerolog.Nop())

	reporter.ReportAnswerCharacter(42, "蕾姆")
	reporter.ReportAnswerCharacter(42, "蕾姆")
	reporter.Close()

	count, err := stats.CharacterUsage(42)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
