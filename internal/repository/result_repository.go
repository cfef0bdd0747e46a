package repository

import (
	"quiz_sensei_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) FindByID(id uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.Preload("Answers.SelectedOptions").Preload("Answers.OpenEnded").
		First(&result, id).Error
	return &result, err
}

// FindByIDForUpdate 行级锁读取，评阅对账期间串行化同一 Result 上的并发修改
func (r *ResultRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Result, error) {
	var result model.Result
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&result, id).Error
	return &result, err
}

func (r *ResultRepository) ListByUser(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Preload("Quiz").
		Preload("Answers.Question").
		Preload("Answers.SelectedOptions").
		Preload("Answers.OpenEnded").
		Where("user_id = ?", userID).
		Order("submission_time desc").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindOpenEndedByIDForUpdate(tx *gorm.DB, id uint) (*model.OpenEndedAnswer, error) {
	var answer model.OpenEndedAnswer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&answer, id).Error
	return &answer, err
}

func (r *ResultRepository) FindOpenEndedByID(id uint) (*model.OpenEndedAnswer, error) {
	var answer model.OpenEndedAnswer
	err := r.DB.First(&answer, id).Error
	return &answer, err
}

func (r *ResultRepository) FindSubmittedAnswer(id uint) (*model.SubmittedAnswer, error) {
	var sa model.SubmittedAnswer
	err := r.DB.First(&sa, id).Error
	return &sa, err
}
