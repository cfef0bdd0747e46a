package repository

import (
	"quiz_sensei_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

// FindByIDForUpdate 行级锁读取，统计字段的读改写必须在锁内完成
func (r *UserRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.User, error) {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	return &user, err
}

// UpdateStat 在给定事务里写回答题统计，调用方负责事务边界
func (r *UserRepository) UpdateStat(tx *gorm.DB, userID uint, overall float64, taken int, timeSpent int64) error {
	return tx.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"overall_percentage": overall,
		"tests_taken":        taken,
		"time_spent":         timeSpent,
	}).Error
}
