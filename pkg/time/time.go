package time

import (
	"time"
)

const (
	TimeFormatCommonStyleDay = "2006-01-02"
)

// UTCDayString 当前的 UTC 日，进食记录和日报都按这个键归档
func UTCDayString() string {
	return time.Now().UTC().Format(TimeFormatCommonStyleDay)
}

// ParseDayString 校验 2006-01-02 格式的日期串
func ParseDayString(s string) (time.Time, error) {
	return time.Parse(TimeFormatCommonStyleDay, s)
}
