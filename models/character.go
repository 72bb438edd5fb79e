package models

// 性别取值
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// 数值字段的哨兵值，表示"无数据"
const NoData = -1

// Appearance 角色的一次登场作品
type Appearance struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Character 可被猜测的角色信息，一局游戏内不可变
type Character struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	NameCN             string         `json:"nameCn"`
	Gender             string         `json:"gender"`
	Popularity         int            `json:"popularity"`
	HighestRating      float64        `json:"highestRating"`
	EarliestAppearance int            `json:"earliestAppearance"`
	LatestAppearance   int            `json:"latestAppearance"`
	Appearances        []Appearance   `json:"appearances"`
	MetaTags           []string       `json:"metaTags"`
	Tags               map[string]int `json:"tags"` // 标签 -> 历史投票数
	Summary            string         `json:"summary,omitempty"`
	Image              string         `json:"image,omitempty"`
}

// AddedSubject 房主手动添加的作品
type AddedSubject struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameCN string `json:"nameCn,omitempty"`
	Type   string `json:"type,omitempty"`
}

// GameConfig 一局游戏的全部设置，由房主下发并原样同步给所有玩家
type GameConfig struct {
	StartYear         int            `json:"startYear"`
	EndYear           int            `json:"endYear"`
	TopNSubjects      int            `json:"topNSubjects"`
	UseSubjectPerYear bool           `json:"useSubjectPerYear"`
	MetaTags          []string       `json:"metaTags"` // 三个独立的分类筛选
	UseIndex          bool           `json:"useIndex"`
	IndexID           *int           `json:"indexId"`
	AddedSubjects     []AddedSubject `json:"addedSubjects"`
	MainCharacterOnly bool           `json:"mainCharacterOnly"`
	CharacterNum      int            `json:"characterNum"`
	MaxAttempts       int            `json:"maxAttempts"`
	UseHints          []int          `json:"useHints"`
	UseImageHint      int            `json:"useImageHint"`
	IncludeGame       bool           `json:"includeGame"`
	SubjectSearch     bool           `json:"subjectSearch"`
	SubjectTagNum     int            `json:"subjectTagNum"`
	CharacterTagNum   int            `json:"characterTagNum"`
	CommonTags        bool           `json:"commonTags"`
	TimeLimit         *int           `json:"timeLimit"`
}

// HintVisible 判断第idx条提示在剩余guessesLeft次机会时是否解锁
func (c *GameConfig) HintVisible(idx, guessesLeft int) bool {
	if idx < 0 || idx >= len(c.UseHints) {
		return false
	}
	return guessesLeft <= c.UseHints[idx]
}

// 数值属性的比较信号
const (
	FeedbackEqual   = "="
	FeedbackHigher  = "+"  // 猜低了，接近
	FeedbackMuchHi  = "++" // 猜低了，差得远
	FeedbackLower   = "-"  // 猜高了，接近
	FeedbackMuchLo  = "--" // 猜高了，差得远
	FeedbackUnknown = "?"  // 任一侧无数据
)

// SharedAppearances 两个角色的共同登场作品
type SharedAppearances struct {
	First string `json:"first"` // 第一个共同作品的名称
	Count int    `json:"count"`
}

// FeedbackResult 一次猜测与谜底的逐属性比较结果
type FeedbackResult struct {
	GenderFeedback             string            `json:"genderFeedback"` // "yes" 或 ""
	PopularityFeedback         string            `json:"popularityFeedback"`
	RatingFeedback             string            `json:"ratingFeedback"`
	EarliestAppearanceFeedback string            `json:"earliestAppearanceFeedback"`
	LatestAppearanceFeedback   string            `json:"latestAppearanceFeedback"`
	AppearancesCountFeedback   string            `json:"appearancesCountFeedback"`
	SharedAppearances          SharedAppearances `json:"sharedAppearances"`
	SharedMetaTags             []string          `json:"sharedMetaTags"`
	SharedTags                 []string          `json:"sharedTags"`
}
