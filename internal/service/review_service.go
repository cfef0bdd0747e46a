package service

import (
	"errors"
	"fmt"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/repository"
	"quiz_sensei_backend/internal/util"
	"quiz_sensei_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB         *gorm.DB
	ResultRepo *repository.ResultRepository
	QuizRepo   *repository.QuizRepository
	UserSvc    *UserService
}

func NewReviewService(db *gorm.DB, resultRepo *repository.ResultRepository, quizRepo *repository.QuizRepository, userSvc *UserService) *ReviewService {
	return &ReviewService{
		DB:         db,
		ResultRepo: resultRepo,
		QuizRepo:   quizRepo,
		UserSvc:    userSvc,
	}
}

type ReviewReq struct {
	OpenEndedAnswerID uint     `json:"openEndedAnswerId" binding:"required"`
	Score             *float64 `json:"score" binding:"required"`
}

func scoreEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type ReviewResp struct {
	Message    string  `json:"message"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
}

// ReviewOpenEnded 人工评阅一道开放题。重复评阅会覆盖：先代数撤销旧分，
// 再计入新分，分母（该次提交的满分与用户的测验次数）保持不变。
// Result 行和用户统计行都在行级锁内修改，并发评阅按提交顺序串行化。
func (s *ReviewService) ReviewOpenEnded(req *ReviewReq) (*ReviewResp, error) {
	answer, err := s.ResultRepo.FindOpenEndedByID(req.OpenEndedAnswerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAnswerNotFound
	}
	if err != nil {
		return nil, err
	}

	submitted, err := s.ResultRepo.FindSubmittedAnswer(answer.SubmittedAnswerID)
	if err != nil {
		return nil, err
	}

	preview, err := s.ResultRepo.FindByID(submitted.ResultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}

	entry, err := s.QuizRepo.ScoreFor(preview.QuizID, submitted.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrScoreEntryMissing
	}
	if err != nil {
		return nil, err
	}

	newScore := *req.Score
	if newScore < 0 || newScore > float64(entry.Score) {
		return nil, util.NewValidationError(
			fmt.Sprintf("review score must be between 0 and %d", entry.Score))
	}

	var result *model.Result
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		result, err = s.ResultRepo.FindByIDForUpdate(tx, submitted.ResultID)
		if err != nil {
			return err
		}

		// 锁内重读：事务外的预读和锁内状态不一致说明有并发评阅插队
		locked, err := s.ResultRepo.FindOpenEndedByIDForUpdate(tx, answer.ID)
		if err != nil {
			return err
		}
		if !scoreEqual(locked.Score, answer.Score) {
			return util.ErrReviewConflict
		}

		previous := 0.0
		if answer.Score != nil {
			previous = *answer.Score
		}

		oldPct := result.Percentage()
		result.Score = result.Score - previous + newScore
		newPct := result.Percentage()

		if err := tx.Save(result).Error; err != nil {
			return err
		}

		answer.Score = &newScore
		if err := tx.Save(answer).Error; err != nil {
			return err
		}

		return s.UserSvc.ApplyScoreDelta(tx, result.UserID, oldPct, newPct)
	})
	if err != nil {
		return nil, err
	}

	monitoring.ReviewCounter.Inc()

	return &ReviewResp{
		Message:    "Review saved",
		Score:      result.Score,
		MaxScore:   result.MaxScore,
		Percentage: result.Percentage(),
	}, nil
}
