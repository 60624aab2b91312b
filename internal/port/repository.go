package port

import (
	"context"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
)

// RecordRepository 保存部署请求的审计记录。
type RecordRepository interface {
	Save(ctx context.Context, record *domain.DeploymentRecord) error
	// FindAll 按创建时间倒序返回，appName 为空时不过滤。
	FindAll(ctx context.Context, appName string, limit int) ([]*domain.DeploymentRecord, error)
}
