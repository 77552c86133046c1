package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"github.com/has-1997/Telegram-Nutrition-Assistant/model"
)

// PhotoAnalyzer 餐食照片分析器
// 照片的动作没有歧义，结果不经过意图分类直接入库
type PhotoAnalyzer struct {
	visionClient VisionClient
}

// NewPhotoAnalyzer 创建照片分析器
func NewPhotoAnalyzer(visionClient VisionClient) *PhotoAnalyzer {
	return &PhotoAnalyzer{visionClient: visionClient}
}

// AnalyzeMealPhoto 分析照片并返回一餐的宏量估计
// 单个宏量字段缺失或非数值时取 0，整体无法解析才报错
func (p *PhotoAnalyzer) AnalyzeMealPhoto(ctx context.Context, imagePath string) (*model.MealPayload, error) {
	raw, err := p.visionClient.DescribeImage(ctx, imagePath, PromptPhotoAnalyze)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze meal photo: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(model.TrimJSONFences(raw)), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse photo analysis JSON: %w", err)
	}

	payload := &model.MealPayload{
		Description: cast.ToString(fields["description"]),
		Calories:    cast.ToFloat64(fields["calories"]),
		Proteins:    cast.ToFloat64(fields["proteins"]),
		Carbs:       cast.ToFloat64(fields["carbs"]),
		Fats:        cast.ToFloat64(fields["fats"]),
	}

	if payload.Description == "" {
		payload.Description = "meal from photo"
	}

	return payload, nil
}
