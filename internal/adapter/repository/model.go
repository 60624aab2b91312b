package repository

import "time"

// DeploymentRecordModel 是 DeploymentRecord 的数据库持久化模型。
type DeploymentRecordModel struct {
	ID        string    `gorm:"primaryKey"`
	AppName   string    `gorm:"index"`
	Kind      string
	Outcome   string
	Resources string    // JSON 序列化的 []string
	Error     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

func (DeploymentRecordModel) TableName() string { return "deployment_records" }
