package model

import "errors"

type AnswerType string

const (
	SingleChoice   AnswerType = "single_choice"
	MultipleChoice AnswerType = "multiple_choice"
	OpenEnded      AnswerType = "open_ended"
)

func (t AnswerType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, OpenEnded:
		return true
	}
	return false
}

// IsObjective 单选和多选按选项自动判分，开放题由教师人工评阅
func (t AnswerType) IsObjective() bool {
	return t == SingleChoice || t == MultipleChoice
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// swagger:model Question
type Question struct {
	BaseModel
	CategoryID uint           `gorm:"index;type:bigint unsigned" json:"categoryId"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Text       string         `gorm:"type:text;not null" json:"text"`
	Image      string         `gorm:"size:255" json:"image,omitempty"`
	AnswerType AnswerType     `gorm:"type:enum('single_choice','multiple_choice','open_ended');default:'single_choice'" json:"answerType"`
	Difficulty Difficulty     `gorm:"type:enum('easy','medium','hard');default:'easy'" json:"difficulty"`
	Options    []AnswerOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Validate 构造期校验：题型字段形态在入库前定死，判分阶段不再容错
func (q *Question) Validate() error {
	if !q.AnswerType.Valid() {
		return errors.New("unknown answer type")
	}
	if q.Difficulty != "" && !q.Difficulty.Valid() {
		return errors.New("unknown difficulty")
	}
	switch q.AnswerType {
	case OpenEnded:
		if len(q.Options) > 0 {
			return errors.New("open-ended questions carry no answer options")
		}
	case SingleChoice:
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct > 1 {
			return errors.New("single-choice questions allow at most one correct option")
		}
	}
	return nil
}

// CorrectOptionIDs 返回标记为正确的选项ID集合
func (q *Question) CorrectOptionIDs() []uint {
	ids := make([]uint, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// swagger:model AnswerOption
type AnswerOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"size:200" json:"text"`
	Image      string `gorm:"size:255" json:"image,omitempty"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}

// Favorite 教师收藏的题目，组卷筛选时可只看收藏
type Favorite struct {
	BaseModel
	UserID     uint `gorm:"uniqueIndex:idx_fav_user_question;type:bigint unsigned" json:"userId"`
	QuestionID uint `gorm:"uniqueIndex:idx_fav_user_question;type:bigint unsigned" json:"questionId"`
}

func (Favorite) TableName() string {
	return "favorites"
}
