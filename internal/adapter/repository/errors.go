package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	"gorm.io/gorm"
)

// translateCreateError 把重复主键映射为 domain.ErrAlreadyExists。
// 驱动未实现错误翻译时退回到按消息匹配。
func translateCreateError(id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyMessage(err.Error()) {
		return fmt.Errorf("deployment record %s: %w", id, domain.ErrAlreadyExists)
	}
	return fmt.Errorf("save deployment record %s: %w", id, err)
}

func isDuplicateKeyMessage(msg string) bool {
	for _, marker := range []string{"UNIQUE constraint failed", "duplicate key value"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
