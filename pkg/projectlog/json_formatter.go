package projectlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimestampFormat = time.RFC3339

	FieldKeyMsg   = "msg"
	FieldKeyLevel = "level"
	FieldKeyTime  = "time"
	FieldKeyFunc  = "func"
	FieldKeyFile  = "file"
	FieldModule   = "module"
)

const LogPrefixName = "nutrition-assistant"

// LogFormat 固定的日志输出结构
type LogFormat struct {
	Level    interface{} `json:"level,omitempty"`
	Module   interface{} `json:"module,omitempty"`
	Time     interface{} `json:"time,omitempty"`
	File     interface{} `json:"file,omitempty"`
	Function interface{} `json:"function,omitempty"`
	Msg      interface{} `json:"msg,omitempty"`
}

type JSONFormatter struct {
	// TimestampFormat sets the format used for marshaling timestamps.
	TimestampFormat string

	// DisableTimestamp allows disabling automatic timestamps in output
	DisableTimestamp bool

	// PrettyPrint will indent all json logs
	PrettyPrint bool
}

type Fields map[string]interface{}

func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(Fields, len(entry.Data)+4)
	for k, v := range entry.Data {
		switch v := v.(type) {
		case error:
			// Otherwise errors are ignored by `encoding/json`
			// https://github.com/sirupsen/logrus/issues/137
			data[k] = v.Error()
		default:
			data[k] = v
		}
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if !f.DisableTimestamp {
		data[FieldKeyTime] = entry.Time.Format(timestampFormat)
	}
	data[FieldKeyMsg] = entry.Message
	data[FieldKeyLevel] = entry.Level.String()
	data[FieldModule] = LogPrefixName
	if entry.HasCaller() {
		data[FieldKeyFunc] = entry.Caller.Function
		data[FieldKeyFile] = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	encoder := json.NewEncoder(b)
	if f.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(convertToLogStruct(data)); err != nil {
		return nil, fmt.Errorf("failed to marshal fields to JSON, %v", err)
	}

	return b.Bytes(), nil
}

func convertToLogStruct(data Fields) *LogFormat {
	logFormat := &LogFormat{}
	if v, ok := data[FieldKeyMsg]; ok {
		logFormat.Msg = v
	}
	if v, ok := data[FieldKeyLevel]; ok {
		logFormat.Level = v
	}
	if v, ok := data[FieldKeyTime]; ok {
		logFormat.Time = v
	}
	if v, ok := data[FieldModule]; ok {
		logFormat.Module = v
	}
	if v, ok := data[FieldKeyFunc]; ok {
		logFormat.Function = v
	}
	if v, ok := data[FieldKeyFile]; ok {
		logFormat.File = v
	}
	return logFormat
}
