package services

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/kennylimz/anime-character-guessr/models"
)

// 数值属性的"接近"判定带宽，越界则给出强信号（++/--）
const (
	popularityNearRatio = 0.10 // 相对谜底值的比例
	ratingNearDelta     = 0.5
	yearNearDelta       = 2
	appearancesNearDiff = 2
)

// commonTagMinVotes 启用"优先共同标签"时，低于该票数的标签不参与共同标签计算
const commonTagMinVotes = 2

// GenerateFeedback 比较一次猜测与谜底，纯函数，不做任何I/O
func GenerateFeedback(guess, answer *models.Character, config *models.GameConfig) *models.FeedbackResult {
	result := &models.FeedbackResult{
		PopularityFeedback:         comparePopularity(guess.Popularity, answer.Popularity),
		RatingFeedback:             compareRating(guess.HighestRating, answer.HighestRating),
		EarliestAppearanceFeedback: compareYear(guess.EarliestAppearance, answer.EarliestAppearance),
		LatestAppearanceFeedback:   compareYear(guess.LatestAppearance, answer.LatestAppearance),
		AppearancesCountFeedback:   compareAppearancesCount(len(guess.Appearances), len(answer.Appearances)),
		SharedAppearances:          sharedAppearances(guess, answer),
		SharedMetaTags:             lo.Intersect(guess.MetaTags, answer.MetaTags),
		SharedTags:                 sharedTags(guess, answer, config),
	}

	// 性别只有相等与否，没有方向信号
	if guess.Gender == answer.Gender {
		result.GenderFeedback = "yes"
	}

	return result
}

// comparePopularity 人气值按相对谜底值±10%划分强弱信号
func comparePopularity(guess, answer int) string {
	if guess < 0 || answer < 0 {
		return models.FeedbackUnknown
	}
	if guess == answer {
		return models.FeedbackEqual
	}

	near := math.Abs(float64(guess-answer)) <= popularityNearRatio*float64(answer)
	return directional(guess < answer, near)
}

// compareRating 最高评分，-1表示无数据
func compareRating(guess, answer float64) string {
	if guess == models.NoData || answer == models.NoData {
		return models.FeedbackUnknown
	}
	if guess == answer {
		return models.FeedbackEqual
	}

	near := math.Abs(guess-answer) <= ratingNearDelta
	return directional(guess < answer, near)
}

// compareYear 登场年份，-1表示无数据
func compareYear(guess, answer int) string {
	if guess == models.NoData || answer == models.NoData {
		return models.FeedbackUnknown
	}
	if guess == answer {
		return models.FeedbackEqual
	}

	near := abs(guess-answer) <= yearNearDelta
	return directional(guess < answer, near)
}

// compareAppearancesCount 登场作品数量
func compareAppearancesCount(guess, answer int) string {
	if guess == answer {
		return models.FeedbackEqual
	}

	near := abs(guess-answer) <= appearancesNearDiff
	return directional(guess < answer, near)
}

// directional guessBelow为true表示猜测值比谜底低，应该往高猜
func directional(guessBelow, near bool) string {
	switch {
	case guessBelow && near:
		return models.FeedbackHigher
	case guessBelow:
		return models.FeedbackMuchHi
	case near:
		return models.FeedbackLower
	default:
		return models.FeedbackMuchLo
	}
}

// sharedAppearances 计算共同登场作品：第一个共同作品的名称和总数
func sharedAppearances(guess, answer *models.Character) models.SharedAppearances {
	answerIDs := lo.SliceToMap(answer.Appearances, func(a models.Appearance) (int, struct{}) {
		return a.ID, struct{}{}
	})

	shared := models.SharedAppearances{}
	for _, a := range guess.Appearances {
		if _, ok := answerIDs[a.ID]; !ok {
			continue
		}
		if shared.Count == 0 {
			shared.First = a.Name
		}
		shared.Count++
	}
	return shared
}

// sharedTags 计算共同标签。启用commonTags时过滤掉低票数的噪声标签，
// 结果按谜底侧票数降序排列，最多返回characterTagNum个
func sharedTags(guess, answer *models.Character, config *models.GameConfig) []string {
	shared := make([]string, 0)
	for tag, guessVotes := range guess.Tags {
		answerVotes, ok := answer.Tags[tag]
		if !ok {
			continue
		}
		if config != nil && config.CommonTags &&
			(guessVotes < commonTagMinVotes || answerVotes < commonTagMinVotes) {
			continue
		}
		shared = append(shared, tag)
	}

	sort.Slice(shared, func(i, j int) bool {
		if answer.Tags[shared[i]] != answer.Tags[shared[j]] {
			return answer.Tags[shared[i]] > answer.Tags[shared[j]]
		}
		return shared[i] < shared[j]
	})

	if config != nil && config.CharacterTagNum > 0 && len(shared) > config.CharacterTagNum {
		shared = shared[:config.CharacterTagNum]
	}
	return shared
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
