package model

type Client struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Email        string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Street       string `gorm:"type:varchar(255)" json:"street"`
	Number       string `gorm:"type:varchar(20)" json:"number"`
	Neighborhood string `gorm:"type:varchar(100)" json:"neighborhood"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	Reference    string `gorm:"type:varchar(255)" json:"reference"`
	Notes        string `gorm:"type:text" json:"notes"`
}
