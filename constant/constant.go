package constant

const (
	EmptyString = ""
)

// 归一化后的训练目标，作为估算路径的输入
const (
	GoalGainMuscle = "gain muscle"
	GoalLoseFat    = "lose fat"
	GoalMaintain   = "maintain"
)

// 注册对话中 yes/no 回答的词表（大小写不敏感匹配）
var (
	AffirmativeWords = map[string]bool{
		"yes":  true,
		"y":    true,
		"yeah": true,
		"yep":  true,
		"sure": true,
	}

	NegativeWords = map[string]bool{
		"no":   true,
		"n":    true,
		"nope": true,
		"nah":  true,
	}
)

// 目标归一化的子串词表
var (
	GainGoalKeywords = []string{"gain", "bulk", "muscle"}
	LoseGoalKeywords = []string{"lose", "cut", "fat"}
)

// 估算失败时的线性兜底公式系数
const (
	FallbackCaloriesPerKg = 30.0
	FallbackProteinPerKg  = 1.8
)

// update_profile 动作里，大小写不敏感归一到标准字段名的键集合
var (
	CaloriesUpdateKeys = []string{"calories_target", "calories", "kcal"}
	ProteinUpdateKeys  = []string{"protein_target", "proteins", "protein"}
)

// get_report 动作里，解析为"今天"的日期别名（大小写不敏感）
var TodayAliases = map[string]bool{
	"today":   true,
	"tonight": true,
	"now":     true,
}
