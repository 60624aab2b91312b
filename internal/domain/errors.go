package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrHistoryDisabled 表示未配置部署历史存储。
	ErrHistoryDisabled = errors.New("deployment history disabled")
)

// PlatformError 是集群 API 返回的非冲突类错误，保留原始状态码与消息。
type PlatformError struct {
	Code    int
	Message string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform error (%d): %s", e.Code, e.Message)
}

// StatusCode 返回可直接回写给调用方的 HTTP 状态码，无效值退化为 500。
func (e *PlatformError) StatusCode() int {
	if e.Code < 400 || e.Code > 599 {
		return http.StatusInternalServerError
	}
	return e.Code
}
