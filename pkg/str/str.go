package str

import (
	"strconv"
	"strings"
)

// 字符串转int，空串视为解析失败（注册流程里空回答不允许前进）
func StringToInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// 字符串转float64，支持 "2200", "2200.5" 这类形式
func StringToFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// FormatMacro 宏量展示用，整数值不带小数，否则保留一位
func FormatMacro(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// ContainsAnyFold 大小写不敏感地判断 s 是否包含任一关键字
func ContainsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
