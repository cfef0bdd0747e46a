package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Disabled bool     `gorm:"default:false" json:"disabled"`

	// 答题统计：完成的测验次数、累计用时（秒）、历史平均得分率
	TestsTaken        int       `gorm:"default:0" json:"testsTaken"`
	TimeSpent         int64     `gorm:"default:0" json:"timeSpent"`
	OverallPercentage float64   `gorm:"default:100" json:"overallPercentage"`
	LastLogin         time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
