package service

import (
	"errors"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/repository"
	"quiz_sensei_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type UpdateProfileReq struct {
	Name *string `json:"name"`
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileReq) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// statOf 把 users 表上的三个统计标量取成判分引擎的折叠输入
func statOf(user *model.User) PerformanceStat {
	return PerformanceStat{
		OverallPercentage: user.OverallPercentage,
		TestsTaken:        user.TestsTaken,
		TimeSpent:         user.TimeSpent,
	}
}

// FoldSubmissionStat 在提交事务里把一次新成绩折入流式平均。
// 行级锁内读改写，并发提交不会互相丢更新。
func (s *UserService) FoldSubmissionStat(tx *gorm.DB, userID uint, pct float64, timeTaken int64) error {
	user, err := s.UserRepo.FindByIDForUpdate(tx, userID)
	if err != nil {
		return err
	}

	stat := FoldSubmission(statOf(user), pct, timeTaken)
	return s.UserRepo.UpdateStat(tx, userID, stat.OverallPercentage, stat.TestsTaken, stat.TimeSpent)
}

// ApplyScoreDelta 评阅改动某次提交的得分率后，代数修正历史平均。
// 提交折叠和评阅对账都通过同一张统计写回路径，避免两处各算一套。
func (s *UserService) ApplyScoreDelta(tx *gorm.DB, userID uint, oldPct, newPct float64) error {
	user, err := s.UserRepo.FindByIDForUpdate(tx, userID)
	if err != nil {
		return err
	}

	stat := ReconcileReview(statOf(user), oldPct, newPct)
	return s.UserRepo.UpdateStat(tx, userID, stat.OverallPercentage, stat.TestsTaken, stat.TimeSpent)
}
