package model

import "time"

// swagger:model Result
type Result struct {
	BaseModel
	UserID uint  `gorm:"uniqueIndex:idx_user_quiz_time;type:bigint unsigned" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	QuizID uint  `gorm:"uniqueIndex:idx_user_quiz_time;type:bigint unsigned" json:"quizId"`
	Quiz   *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`

	// Score 会在开放题评阅后被修正；MaxScore 在提交时定死，
	// 之后作为该次提交得分率的唯一换算基准
	Score    float64 `gorm:"default:0" json:"score"`
	MaxScore float64 `gorm:"default:0" json:"maxScore"`

	TimeTaken      int64             `gorm:"default:0" json:"timeTaken"` // 秒
	Feedback       string            `gorm:"type:text" json:"feedback"`
	SubmissionTime time.Time         `gorm:"uniqueIndex:idx_user_quiz_time" json:"submissionTime"`
	Answers        []SubmittedAnswer `gorm:"foreignKey:ResultID" json:"answers,omitempty"`
}

func (Result) TableName() string {
	return "results"
}

// Percentage 得分率，没有计分题的试卷按满分处理
func (r *Result) Percentage() float64 {
	if r.MaxScore <= 0 {
		return 100
	}
	return r.Score / r.MaxScore * 100
}

// SubmittedAnswer 一条作答记录：客观题挂选项，开放题挂 OpenEndedAnswer，二者互斥
type SubmittedAnswer struct {
	BaseModel
	ResultID        uint             `gorm:"index;type:bigint unsigned" json:"resultId"`
	QuestionID      uint             `gorm:"index;type:bigint unsigned" json:"questionId"`
	Question        *Question        `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedOptions []AnswerOption   `gorm:"many2many:submitted_answer_options" json:"selectedOptions,omitempty"`
	OpenEnded       *OpenEndedAnswer `gorm:"foreignKey:SubmittedAnswerID" json:"openEnded,omitempty"`
}

func (SubmittedAnswer) TableName() string {
	return "submitted_answers"
}

// OpenEndedAnswer Score 为空表示尚未评阅；重评会覆盖，先撤销旧值再计入新值
type OpenEndedAnswer struct {
	BaseModel
	SubmittedAnswerID uint     `gorm:"uniqueIndex;type:bigint unsigned" json:"submittedAnswerId"`
	AnswerText        string   `gorm:"type:text" json:"answerText"`
	Score             *float64 `json:"score"`
}

func (OpenEndedAnswer) TableName() string {
	return "open_ended_answers"
}
