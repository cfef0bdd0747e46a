package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/repository"
	"quiz_sensei_backend/internal/util"
	"quiz_sensei_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const quizLinkCacheTTL = 10 * time.Minute

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	Mail         *MailService
	Redis        *redis.Client
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	categoryRepo *repository.CategoryRepository,
	mail *MailService,
	rdb *redis.Client,
) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		Mail:         mail,
		Redis:        rdb,
	}
}

type QuestionScoreReq struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Score      uint `json:"score"`
}

type QuizReq struct {
	Title       string             `json:"title" binding:"required"`
	CategoryID  uint               `json:"categoryId" binding:"required"`
	TimeLimit   int                `json:"timeLimit"`
	QuestionIDs []uint             `json:"questionIds" binding:"required"`
	Scores      []QuestionScoreReq `json:"scores" binding:"required"`
}

// resolveQuestions 题目必须全部存在，且分值表与题目集一一对应。
// 分值表的完整性在建卷/改卷时定死，判分阶段缺项只能是数据缺陷。
func (s *QuizService) resolveQuestions(req *QuizReq) ([]model.Question, []model.QuestionScore, error) {
	if len(req.QuestionIDs) == 0 {
		return nil, nil, util.NewValidationError("quiz must contain at least one question")
	}

	questions, err := s.QuestionRepo.FindByIDs(req.QuestionIDs)
	if err != nil {
		return nil, nil, err
	}
	found := make(map[uint]bool, len(questions))
	for _, q := range questions {
		found[q.ID] = true
	}
	for _, id := range req.QuestionIDs {
		if !found[id] {
			return nil, nil, util.NewValidationError(fmt.Sprintf("question %d does not exist", id))
		}
	}

	scoreFor := make(map[uint]uint, len(req.Scores))
	for _, entry := range req.Scores {
		if _, dup := scoreFor[entry.QuestionID]; dup {
			return nil, nil, util.NewValidationError(fmt.Sprintf("duplicate score entry for question %d", entry.QuestionID))
		}
		if !found[entry.QuestionID] {
			return nil, nil, util.NewValidationError(fmt.Sprintf("score entry for question %d not in quiz", entry.QuestionID))
		}
		scoreFor[entry.QuestionID] = entry.Score
	}
	for _, id := range req.QuestionIDs {
		if _, ok := scoreFor[id]; !ok {
			return nil, nil, util.NewValidationError(fmt.Sprintf("missing score entry for question %d", id))
		}
	}

	scores := make([]model.QuestionScore, 0, len(req.Scores))
	for _, entry := range req.Scores {
		scores = append(scores, model.QuestionScore{
			QuestionID: entry.QuestionID,
			Score:      entry.Score,
		})
	}
	return questions, scores, nil
}

func (s *QuizService) CreateQuiz(req *QuizReq) (*model.Quiz, error) {
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	questions, scores, err := s.resolveQuestions(req)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		TimeLimit:  req.TimeLimit,
		UniqueLink: uuid.New().String(),
	}
	if err := s.QuizRepo.Create(quiz, questions, scores); err != nil {
		return nil, err
	}
	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizService) ListQuizzes(page, limit int) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(page, limit)
}

func quizLinkCacheKey(link string) string {
	return "quiz:link:" + link
}

// GetQuizByLink 学生端按链接取卷，热点读走 Redis
func (s *QuizService) GetQuizByLink(ctx context.Context, link string) (*model.Quiz, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, quizLinkCacheKey(link)).Result()
		if err == nil {
			var quiz model.Quiz
			if err := json.Unmarshal([]byte(cached), &quiz); err == nil {
				return &quiz, nil
			}
		}
	}

	quiz, err := s.QuizRepo.FindByLink(link)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(quiz); err == nil {
			if err := s.Redis.Set(ctx, quizLinkCacheKey(quiz.UniqueLink), data, quizLinkCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache quiz", zap.String("link", link), zap.Error(err))
			}
		}
	}
	return quiz, nil
}

func (s *QuizService) invalidateLinkCache(ctx context.Context, link string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, quizLinkCacheKey(link)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate quiz cache", zap.String("link", link), zap.Error(err))
	}
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id uint, req *QuizReq) (*model.Quiz, error) {
	quiz, err := s.GetQuiz(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	questions, scores, err := s.resolveQuestions(req)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.CategoryID = req.CategoryID
	quiz.TimeLimit = req.TimeLimit
	quiz.Questions = nil
	quiz.Scores = nil
	quiz.Category = nil
	if err := s.QuizRepo.Update(quiz, questions, scores); err != nil {
		return nil, err
	}

	s.invalidateLinkCache(ctx, quiz.UniqueLink)
	return s.GetQuiz(id)
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id uint) error {
	quiz, err := s.GetQuiz(id)
	if err != nil {
		return err
	}
	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateLinkCache(ctx, quiz.UniqueLink)
	return nil
}

// SendQuizLink 把测验链接群发给学生，邮件异步发送、不阻塞请求
func (s *QuizService) SendQuizLink(quizID uint, emails []string) error {
	if len(emails) == 0 {
		return util.NewValidationError("no recipient emails")
	}
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return err
	}

	s.Mail.SendQuizLinkBatch(emails, quiz.Title, quiz.UniqueLink)
	return nil
}
