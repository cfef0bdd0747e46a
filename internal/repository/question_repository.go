package repository

import (
	"quiz_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options").Preload("Category").First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Options").Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

// Update 选项整体替换：先删旧选项再建新选项，与题干更新同一事务
func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		return tx.Save(question).Error
	})
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

// QuestionFilter 题库筛选条件，零值表示不过滤
type QuestionFilter struct {
	CategoryID    uint
	Difficulty    model.Difficulty
	AnswerType    model.AnswerType
	Quantity      int
	FavoritedOnly bool
	UserID        uint
}

func (r *QuestionRepository) Select(filter QuestionFilter) ([]model.Question, error) {
	query := r.DB.Preload("Options").Model(&model.Question{})

	if filter.FavoritedOnly {
		query = query.Where("id IN (?)",
			r.DB.Model(&model.Favorite{}).Select("question_id").Where("user_id = ?", filter.UserID))
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.AnswerType != "" {
		query = query.Where("answer_type = ?", filter.AnswerType)
	}

	quantity := filter.Quantity
	if quantity <= 0 {
		quantity = 10
	}

	var qs []model.Question
	err := query.Limit(quantity).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindFavorite(userID, questionID uint) (*model.Favorite, error) {
	var fav model.Favorite
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&fav).Error
	return &fav, err
}

func (r *QuestionRepository) CreateFavorite(fav *model.Favorite) error {
	return r.DB.Create(fav).Error
}

func (r *QuestionRepository) DeleteFavorite(fav *model.Favorite) error {
	return r.DB.Unscoped().Delete(fav).Error
}
