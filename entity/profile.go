package entity

import "time"

const (
	TableNameProfile = "profile"

	ProfileFieldUserID         = "user_id"
	ProfileFieldName           = "name"
	ProfileFieldCaloriesTarget = "calories_target"
	ProfileFieldProteinTarget  = "protein_target"
	ProfileFieldCreatedAt      = "created_at"
	ProfileFieldUpdatedAt      = "updated_at"
)

// Profile 每个用户一行，注册完成时创建，之后只有目标值可变
type Profile struct {
	UserID         string    `xorm:"pk 'user_id'" json:"user_id"`
	Name           string    `xorm:"name" json:"name"`
	CaloriesTarget float64   `xorm:"calories_target" json:"calories_target"`
	ProteinTarget  float64   `xorm:"protein_target" json:"protein_target"`
	CreatedAt      time.Time `xorm:"created_at" json:"created_at"`
	UpdatedAt      time.Time `xorm:"updated_at" json:"updated_at"`
}

func (e *Profile) TableName() string {
	return TableNameProfile
}
