package service

import (
	"errors"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/repository"
	"quiz_sensei_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
	}
}

type AnswerOptionReq struct {
	Text      string `json:"text" binding:"required"`
	Image     string `json:"image"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionReq struct {
	CategoryID uint              `json:"categoryId" binding:"required"`
	Text       string            `json:"text" binding:"required"`
	Image      string            `json:"image"`
	AnswerType model.AnswerType  `json:"answerType" binding:"required"`
	Difficulty model.Difficulty  `json:"difficulty"`
	Options    []AnswerOptionReq `json:"options"`
}

func (s *QuestionService) buildQuestion(req *QuestionReq) (*model.Question, error) {
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	question := &model.Question{
		CategoryID: req.CategoryID,
		Text:       req.Text,
		Image:      req.Image,
		AnswerType: req.AnswerType,
		Difficulty: req.Difficulty,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.AnswerOption{
			Text:      opt.Text,
			Image:     opt.Image,
			IsCorrect: opt.IsCorrect,
		})
	}

	if err := question.Validate(); err != nil {
		return nil, util.NewValidationError(err.Error())
	}
	return question, nil
}

func (s *QuestionService) CreateQuestion(req *QuestionReq) (*model.Question, error) {
	question, err := s.buildQuestion(req)
	if err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return question, err
}

// UpdateQuestion 选项整体替换，不做增量合并
func (s *QuestionService) UpdateQuestion(id uint, req *QuestionReq) (*model.Question, error) {
	if _, err := s.GetQuestion(id); err != nil {
		return nil, err
	}

	question, err := s.buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.ID = id
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return s.GetQuestion(id)
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	if _, err := s.GetQuestion(id); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}

// SelectQuestions 按条件抽题，供教师组卷使用
func (s *QuestionService) SelectQuestions(filter repository.QuestionFilter) ([]model.Question, error) {
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, util.NewValidationError("unknown difficulty")
	}
	if filter.AnswerType != "" && !filter.AnswerType.Valid() {
		return nil, util.NewValidationError("unknown answer type")
	}
	return s.QuestionRepo.Select(filter)
}

// ToggleFavorite 收藏/取消收藏，返回操作后的收藏状态
func (s *QuestionService) ToggleFavorite(userID, questionID uint) (bool, error) {
	if _, err := s.GetQuestion(questionID); err != nil {
		return false, err
	}

	fav, err := s.QuestionRepo.FindFavorite(userID, questionID)
	if err == nil {
		return false, s.QuestionRepo.DeleteFavorite(fav)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return true, s.QuestionRepo.CreateFavorite(&model.Favorite{
		UserID:     userID,
		QuestionID: questionID,
	})
}

func (s *QuestionService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.List()
}

func (s *QuestionService) CreateCategory(name string) (*model.Category, error) {
	category := &model.Category{Name: name}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *QuestionService) UpdateCategory(id uint, name string) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	category.Name = name
	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *QuestionService) DeleteCategory(id uint) error {
	if _, err := s.CategoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCategoryNotFound
		}
		return err
	}
	return s.CategoryRepo.Delete(id)
}
