package service

import (
	"errors"
	"fmt"
	"time"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/repository"
	"quiz_sensei_backend/internal/util"
	"quiz_sensei_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ResultService struct {
	DB         *gorm.DB
	QuizRepo   *repository.QuizRepository
	ResultRepo *repository.ResultRepository
	UserSvc    *UserService
}

func NewResultService(db *gorm.DB, quizRepo *repository.QuizRepository, resultRepo *repository.ResultRepository, userSvc *UserService) *ResultService {
	return &ResultService{
		DB:         db,
		QuizRepo:   quizRepo,
		ResultRepo: resultRepo,
		UserSvc:    userSvc,
	}
}

type SubmittedAnswerReq struct {
	QuestionID        uint   `json:"questionId" binding:"required"`
	SelectedOptionIDs []uint `json:"selectedOptionIds"`
	OpenEndedText     string `json:"openEndedText"`
}

type SubmitResultReq struct {
	Answers   []SubmittedAnswerReq `json:"answers" binding:"required"`
	TimeTaken int64                `json:"timeTaken"` // 秒
	Feedback  string               `json:"feedback"`
}

type SubmitResultResp struct {
	ResultID   uint    `json:"resultId"`
	Message    string  `json:"message"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
}

// validateAnswerShape 作答形态必须与题型一致：开放题只收文本，客观题只收选项；
// 单选最多一个选项；所有选中的选项必须属于该题
func validateAnswerShape(q *model.Question, ans *SubmittedAnswerReq) error {
	switch {
	case q.AnswerType == model.OpenEnded:
		if len(ans.SelectedOptionIDs) > 0 {
			return util.NewValidationError(fmt.Sprintf("question %d is open-ended, selected options are not allowed", q.ID))
		}
	default:
		if ans.OpenEndedText != "" {
			return util.NewValidationError(fmt.Sprintf("question %d is not open-ended, text answer is not allowed", q.ID))
		}
		if q.AnswerType == model.SingleChoice && len(ans.SelectedOptionIDs) > 1 {
			return util.NewValidationError(fmt.Sprintf("question %d is single-choice, at most one option may be selected", q.ID))
		}

		valid := make(map[uint]bool, len(q.Options))
		for _, opt := range q.Options {
			valid[opt.ID] = true
		}
		for _, id := range ans.SelectedOptionIDs {
			if !valid[id] {
				return util.NewValidationError(fmt.Sprintf("option %d does not belong to question %d", id, q.ID))
			}
		}
	}
	return nil
}

// SubmitResult 判分并落库一次提交。
// 分母覆盖试卷的全部题目：未作答的客观题记 0 分，未作答的开放题不再参与后续评阅。
// 成绩行、逐题作答和用户统计折叠在同一事务里完成。
func (s *ResultService) SubmitResult(userID, quizID uint, req *SubmitResultReq) (*SubmitResultResp, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	scoreTable, err := s.QuizRepo.ScoreTable(quizID)
	if err != nil {
		return nil, err
	}

	questionByID := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questionByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	answerByQuestion := make(map[uint]*SubmittedAnswerReq, len(req.Answers))
	for i := range req.Answers {
		ans := &req.Answers[i]
		q, ok := questionByID[ans.QuestionID]
		if !ok {
			return nil, util.NewValidationError(fmt.Sprintf("question %d is not part of this quiz", ans.QuestionID))
		}
		if _, dup := answerByQuestion[ans.QuestionID]; dup {
			return nil, util.NewValidationError(fmt.Sprintf("duplicate answer for question %d", ans.QuestionID))
		}
		if err := validateAnswerShape(q, ans); err != nil {
			return nil, err
		}
		answerByQuestion[ans.QuestionID] = ans
	}

	answered := make([]AnsweredQuestion, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		maxScore, ok := scoreTable[q.ID]
		if !ok {
			return nil, util.ErrScoreEntryMissing
		}

		var selected []uint
		if ans := answerByQuestion[q.ID]; ans != nil {
			selected = ans.SelectedOptionIDs
		}
		answered = append(answered, AnsweredQuestion{
			Question:          q,
			MaxScore:          float64(maxScore),
			SelectedOptionIDs: selected,
		})
	}

	totals := ScoreSubmission(answered)
	pct := Percentage(totals.Score, totals.MaxScore)

	result := &model.Result{
		UserID:         userID,
		QuizID:         quizID,
		Score:          totals.Score,
		MaxScore:       totals.MaxScore,
		TimeTaken:      req.TimeTaken,
		Feedback:       req.Feedback,
		SubmissionTime: time.Now(),
	}
	for _, ans := range req.Answers {
		row := model.SubmittedAnswer{QuestionID: ans.QuestionID}
		q := questionByID[ans.QuestionID]
		if q.AnswerType == model.OpenEnded {
			row.OpenEnded = &model.OpenEndedAnswer{AnswerText: ans.OpenEndedText}
		} else {
			for _, optID := range ans.SelectedOptionIDs {
				row.SelectedOptions = append(row.SelectedOptions, model.AnswerOption{BaseModel: model.BaseModel{ID: optID}})
			}
		}
		result.Answers = append(result.Answers, row)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		return s.UserSvc.FoldSubmissionStat(tx, userID, pct, req.TimeTaken)
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(quiz.Title).Inc()

	return &SubmitResultResp{
		ResultID:   result.ID,
		Message:    "Result submitted successfully",
		Score:      totals.Score,
		MaxScore:   totals.MaxScore,
		Percentage: pct,
	}, nil
}

func (s *ResultService) GetResult(id uint) (*model.Result, error) {
	result, err := s.ResultRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	return result, err
}

func (s *ResultService) ListUserResults(userID uint) ([]model.Result, error) {
	return s.ResultRepo.ListByUser(userID)
}
