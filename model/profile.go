package model

// CreateProfileCondition 注册完成时创建 Profile 的入参
type CreateProfileCondition struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	CaloriesTarget float64 `json:"calories_target"`
	ProteinTarget  float64 `json:"protein_target"`
}

// UpdateProfileTargetsCondition 部分更新目标值，nil 字段不更新
type UpdateProfileTargetsCondition struct {
	UserID         string   `json:"user_id"`
	CaloriesTarget *float64 `json:"calories_target"`
	ProteinTarget  *float64 `json:"protein_target"`
}

// HasUpdates 是否存在至少一个待更新字段
func (c *UpdateProfileTargetsCondition) HasUpdates() bool {
	return c.CaloriesTarget != nil || c.ProteinTarget != nil
}
