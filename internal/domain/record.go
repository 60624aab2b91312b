package domain

import "time"

// RecordKind 区分部署入口。
type RecordKind string

const (
	RecordKindApp      RecordKind = "app"
	RecordKindPostgres RecordKind = "postgres"
)

// Outcome 是一次部署提交的结果。
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeConflict  Outcome = "conflict"
	OutcomeFailed    Outcome = "failed"
)

// DeploymentRecord 是一次部署请求的审计记录。
// Resources 为失败前已提交的资源（{kind}/{name}），没有回滚，所以它们会留在集群中。
type DeploymentRecord struct {
	ID        string     `json:"id"`
	AppName   string     `json:"app_name"`
	Kind      RecordKind `json:"kind"`
	Outcome   Outcome    `json:"outcome"`
	Resources []string   `json:"resources"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
