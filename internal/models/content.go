package models

import "gorm.io/datatypes"

const DefaultIcon = "💼"

type Project struct {
	Base
	Title       string                      `gorm:"type:varchar(200);not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Tech        datatypes.JSONSlice[string] `json:"tech"`
	Image       string                      `gorm:"type:text" json:"image"`
	Link        string                      `gorm:"type:text" json:"link"`
	Github      string                      `gorm:"type:text" json:"github"`
	Featured    bool                        `gorm:"not null;default:false;index" json:"featured"`
}

type Skill struct {
	Base
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:text" json:"icon"`
}

// Contact is an inquiry submitted from the contact page
type Contact struct {
	Base
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Email   string `gorm:"type:varchar(100);not null" json:"email"`
	Subject string `gorm:"type:varchar(200);not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
}
