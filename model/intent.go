package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// 意图分类器返回的四种动作
const (
	ActionAppendMeal    = "append_meal"
	ActionUpdateProfile = "update_profile"
	ActionGetReport     = "get_report"
	ActionChat          = "chat"
)

var validActions = map[string]bool{
	ActionAppendMeal:    true,
	ActionUpdateProfile: true,
	ActionGetReport:     true,
	ActionChat:          true,
}

// MealPayload 分类器/图片分析给出的一餐宏量估计
type MealPayload struct {
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Proteins    float64 `json:"proteins"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

// UnmarshalJSON 宽容解析宏量字段
// 模型偶尔把数字放进字符串里，解析不出来的字段取 0，
// 不让一餐因为单个字段的格式问题整体退化成 chat
func (m *MealPayload) UnmarshalJSON(data []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	m.Description = cast.ToString(fields["description"])
	m.Calories = cast.ToFloat64(fields["calories"])
	m.Proteins = cast.ToFloat64(fields["proteins"])
	m.Carbs = cast.ToFloat64(fields["carbs"])
	m.Fats = cast.ToFloat64(fields["fats"])
	return nil
}

// IntentResult 意图分类结果
// ProfileUpdates 的键不做预先约定，由 dispatcher 归一化
type IntentResult struct {
	Action         string                     `json:"action"`
	Reply          string                     `json:"reply"`
	Meal           *MealPayload               `json:"meal,omitempty"`
	ProfileUpdates map[string]json.RawMessage `json:"profile_updates,omitempty"`
	ReportDate     string                     `json:"report_date,omitempty"`
}

// ParseIntentResult 解析 LLM 返回的 JSON，容忍 markdown 代码块包裹
// 解析失败或 action 非法时返回错误，调用方负责退化为 chat
func ParseIntentResult(raw string) (*IntentResult, error) {
	cleaned := TrimJSONFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty classifier response")
	}

	var result IntentResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to parse intent JSON: %w", err)
	}

	if !validActions[result.Action] {
		return nil, fmt.Errorf("unknown action %q", result.Action)
	}

	return &result, nil
}

// TrimJSONFences 清理 LLM 输出两端的 ```json / ``` 包裹和空白
func TrimJSONFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
