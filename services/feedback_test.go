package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kennylimz/anime-character-guessr/models"
)

func TestComparePopularity(t *testing.T) {
	tests := []struct {
		name   string
		guess  int
		answer int
		want   string
	}{
		{"相等", 1000, 1000, models.FeedbackEqual},
		{"低但在10%以内", 905, 1000, models.FeedbackHigher},
		{"恰好在边界上", 900, 1000, models.FeedbackHigher},
		{"低且超出10%", 899, 1000, models.FeedbackMuchHi},
		{"高但在10%以内", 1100, 1000, models.FeedbackLower},
		{"高且超出10%", 1101, 1000, models.FeedbackMuchLo},
		{"猜测无数据", models.NoData, 1000, models.FeedbackUnknown},
		{"谜底无数据", 1000, models.NoData, models.FeedbackUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, comparePopularity(tt.guess, tt.answer))
		})
	}
}

func TestCompareRating(t *testing.T) {
	tests := []struct {
		name   string
		guess  float64
		answer float64
		want   string
	}{
		{"相等", 8.0, 8.0, models.FeedbackEqual},
		{"低0.5以内", 7.5, 8.0, models.FeedbackHigher},
		{"低超过0.5", 7.4, 8.0, models.FeedbackMuchHi},
		{"高0.5以内", 8.5, 8.0, models.FeedbackLower},
		{"高超过0.5", 8.6, 8.0, models.FeedbackMuchLo},
		{"无数据", models.NoData, 8.0, models.FeedbackUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareRating(tt.guess, tt.answer))
		})
	}
}

func TestCompareYear(t *testing.T) {
	tests := []struct {
		name   string
		guess  int
		answer int
		want   string
	}{
		{"相等", 2020, 2020, models.FeedbackEqual},
		{"早2年", 2018, 2020, models.FeedbackHigher},
		{"早3年", 2017, 2020, models.FeedbackMuchHi},
		{"晚2年", 2022, 2020, models.FeedbackLower},
		{"晚3年", 2023, 2020, models.FeedbackMuchLo},
		{"无数据", models.NoData, 2020, models.FeedbackUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareYear(tt.guess, tt.answer))
		})
	}
}

func TestCompareAppearancesCount(t *testing.T) {
	assert.Equal(t, models.FeedbackEqual, compareAppearancesCount(3, 3))
	assert.Equal(t, models.FeedbackHigher, compareAppearancesCount(1, 3))
	assert.Equal(t, models.FeedbackMuchHi, compareAppearancesCount(0, 3))
	assert.Equal(t, models.FeedbackLower, compareAppearancesCount(5, 3))
	assert.Equal(t, models.FeedbackMuchLo, compareAppearancesCount(6, 3))
}

func TestSharedAppearances(t *testing.T) {
	guess := &models.Character{Appearances: []models.Appearance{
		{ID: 1, Name: "作品A"},
		{ID: 2, Name: "作品B"},
		{ID: 3, Name: "作品C"},
	}}
	answer := &models.Character{Appearances: []models.Appearance{
		{ID: 2, Name: "作品B"},
		{ID: 3, Name: "作品C"},
		{ID: 4, Name: "作品D"},
	}}

	shared := sharedAppearances(guess, answer)
	assert.Equal(t, "作品B", shared.First)
	assert.Equal(t, 2, shared.Count)

	none := sharedAppearances(guess, &models.Character{})
	assert.Equal(t, "", none.First)
	assert.Equal(t, 0, none.Count)
}

func TestSharedTags(t *testing.T) {
	guess := &models.Character{Tags: map[string]int{
		"傲娇": 5, "双马尾": 1, "学生": 3, "红发": 4,
	}}
	answer := &models.Character{Tags: map[string]int{
		"傲娇": 2, "双马尾": 9, "学生": 8, "蓝发": 6,
	}}

	t.Run("默认包含所有共同标签", func(t *testing.T) {
		got := sharedTags(guess, answer, &models.GameConfig{CharacterTagNum: 6})
		assert.Equal(t, []string{"双马尾", "学生", "傲娇"}, got)
	})

	t.Run("开启共同标签过滤后剔除低票数标签", func(t *testing.T) {
		got := sharedTags(guess, answer, &models.GameConfig{CommonTags: true, CharacterTagNum: 6})
		// 双马尾在猜测侧只有1票，被过滤
		assert.Equal(t, []string{"学生", "傲娇"}, got)
	})

	t.Run("结果数量受上限约束", func(t *testing.T) {
		got := sharedTags(guess, answer, &models.GameConfig{CharacterTagNum: 1})
		assert.Equal(t, []string{"双马尾"}, got)
	})
}

func TestGenerateFeedback(t *testing.T) {
	guess := &models.Character{
		Gender:             models.GenderFemale,
		Popularity:         950,
		HighestRating:      7.8,
		EarliestAppearance: 2019,
		LatestAppearance:   2021,
		Appearances:        []models.Appearance{{ID: 1, Name: "作品A"}},
		MetaTags:           []string{"TV", "原创"},
		Tags:               map[string]int{"傲娇": 3},
	}
	answer := &models.Character{
		Gender:             models.GenderFemale,
		Popularity:         1000,
		HighestRating:      8.0,
		EarliestAppearance: 2019,
		LatestAppearance:   2023,
		Appearances:        []models.Appearance{{ID: 1, Name: "作品A"}, {ID: 2, Name: "作品B"}},
		MetaTags:           []string{"TV", "漫画改"},
		Tags:               map[string]int{"傲娇": 7},
	}

	fb := GenerateFeedback(guess, answer, &models.GameConfig{CharacterTagNum: 6})

	assert.Equal(t, "yes", fb.GenderFeedback)
	assert.Equal(t, models.FeedbackHigher, fb.PopularityFeedback)
	assert.Equal(t, models.FeedbackHigher, fb.RatingFeedback)
	assert.Equal(t, models.FeedbackEqual, fb.EarliestAppearanceFeedback)
	assert.Equal(t, models.FeedbackHigher, fb.LatestAppearanceFeedback)
	assert.Equal(t, models.FeedbackHigher, fb.AppearancesCountFeedback)
	assert.Equal(t, "作品A", fb.SharedAppearances.First)
	assert.Equal(t, 1, fb.SharedAppearances.Count)
	assert.Equal(t, []string{"TV"}, fb.SharedMetaTags)
	assert.Equal(t, []string{"傲娇"}, fb.SharedTags)
}

func TestGenerateFeedbackGenderMismatch(t *testing.T) {
	fb := GenerateFeedback(
		&models.Character{Gender: models.GenderMale},
		&models.Character{Gender: models.GenderFemale},
		nil,
	)
	assert.Equal(t, "", fb.GenderFeedback)
}
