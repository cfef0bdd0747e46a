package repository

import (
	"quiz_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// Create 试卷、题目关联和分值表在同一事务里落库
func (r *QuizRepository) Create(quiz *model.Quiz, questions []model.Question, scores []model.QuestionScore) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Model(quiz).Association("Questions").Append(&questions); err != nil {
				return err
			}
		}
		for i := range scores {
			scores[i].QuizID = quiz.ID
		}
		if len(scores) > 0 {
			if err := tx.Create(&scores).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions.Options").Preload("Scores").Preload("Category").
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByLink(link string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions.Options").Preload("Scores").Preload("Category").
		Where("unique_link = ?", link).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) List(page, limit int) ([]model.Quiz, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Quiz{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []model.Quiz
	query := r.DB.Preload("Category").Order("id asc")
	if limit > 0 {
		offset := (page - 1) * limit
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&quizzes).Error
	return quizzes, total, err
}

// Update 题目集或分值表有变化时整体重建关联
func (r *QuizRepository) Update(quiz *model.Quiz, questions []model.Question, scores []model.QuestionScore) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quiz).Error; err != nil {
			return err
		}
		if questions != nil {
			if err := tx.Model(quiz).Association("Questions").Replace(&questions); err != nil {
				return err
			}
		}
		if scores != nil {
			if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&model.QuestionScore{}).Error; err != nil {
				return err
			}
			for i := range scores {
				scores[i].QuizID = quiz.ID
			}
			if len(scores) > 0 {
				if err := tx.Create(&scores).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quiz model.Quiz
		if err := tx.First(&quiz, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&quiz).Association("Questions").Clear(); err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuestionScore{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
}

// ScoreTable (question_id -> 满分) 的只读快照，判分阶段使用
func (r *QuizRepository) ScoreTable(quizID uint) (map[uint]uint, error) {
	var entries []model.QuestionScore
	if err := r.DB.Where("quiz_id = ?", quizID).Find(&entries).Error; err != nil {
		return nil, err
	}

	table := make(map[uint]uint, len(entries))
	for _, e := range entries {
		table[e.QuestionID] = e.Score
	}
	return table, nil
}

func (r *QuizRepository) ScoreFor(quizID, questionID uint) (*model.QuestionScore, error) {
	var entry model.QuestionScore
	err := r.DB.Where("quiz_id = ? AND question_id = ?", quizID, questionID).First(&entry).Error
	return &entry, err
}
