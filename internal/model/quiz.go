package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title      string     `gorm:"size:100;not null" json:"title"`
	CategoryID uint       `gorm:"index;type:bigint unsigned" json:"categoryId"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	TimeLimit  int        `gorm:"default:0" json:"timeLimit"` // 分钟
	UniqueLink string     `gorm:"size:50;uniqueIndex" json:"uniqueLink"`
	Questions  []Question `gorm:"many2many:quiz_questions" json:"questions,omitempty"`

	// 分值表：同一道题在不同试卷里可以有不同的满分
	Scores []QuestionScore `gorm:"foreignKey:QuizID" json:"scores,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionScore (quiz, question) -> 满分。试卷里的每道题必须恰好有一条
type QuestionScore struct {
	BaseModel
	QuizID     uint `gorm:"uniqueIndex:idx_quiz_question;type:bigint unsigned" json:"quizId"`
	QuestionID uint `gorm:"uniqueIndex:idx_quiz_question;type:bigint unsigned" json:"questionId"`
	Score      uint `gorm:"default:0" json:"score"`
}

func (QuestionScore) TableName() string {
	return "question_scores"
}
