package model

// AppendMealCondition 追加一条进食记录的入参
type AppendMealCondition struct {
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"` // UTC 日，格式 2006-01-02
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Proteins    float64 `json:"proteins"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

// GetMealsCondition 查询条件（带分页和排序）
type GetMealsCondition struct {
	UserID *string `json:"user_id"`
	Date   *string `json:"date"`
	*Pager
	*Order
}

func (g *GetMealsCondition) GetPager() *Pager {
	return g.Pager
}

func (g *GetMealsCondition) GetOrder() *Order {
	return g.Order
}
