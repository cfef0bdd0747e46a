package database

import (
	"fmt"
	"log"
	"quiz_sensei_backend/internal/config"
	"quiz_sensei_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Question{},
		&model.AnswerOption{},
		&model.Favorite{},
		&model.Quiz{},
		&model.QuestionScore{},
		&model.Result{},
		&model.SubmittedAnswer{},
		&model.OpenEndedAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认题目分类
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []string{"General", "Grammar", "Vocabulary", "Listening"}
		for _, name := range defaultCategories {
			db.Create(&model.Category{Name: name})
		}
	}

	return db, nil
}
