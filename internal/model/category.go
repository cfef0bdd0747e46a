package model

// swagger:model Category
type Category struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
