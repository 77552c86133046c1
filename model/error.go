package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	ErrorDB              = 200002
	ErrorLLM             = 200003
	ErrorTranscribe      = 200004
	ErrorAnalyze         = 200005
	ErrorDownload        = 200006
	ErrorProfileNotFound = 200007
	ErrorNewRepo         = 200008
)

var ErrorMessages = map[int]string{
	ErrorDB:              "db error",
	ErrorLLM:             "llm call failed",
	ErrorTranscribe:      "voice transcription failed",
	ErrorAnalyze:         "photo analysis failed",
	ErrorDownload:        "media download failed",
	ErrorProfileNotFound: "profile not found",
	ErrorNewRepo:         "create repository failed",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func (err Error) String() string {
	return err.InnerError.Error()
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}
