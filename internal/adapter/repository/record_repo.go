package repository

import (
	"context"
	"encoding/json"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
	"gorm.io/gorm"
)

var _ port.RecordRepository = (*RecordRepo)(nil)

type RecordRepo struct {
	db *gorm.DB
}

func NewRecordRepo(db *gorm.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

func (r *RecordRepo) Save(ctx context.Context, record *domain.DeploymentRecord) error {
	m, err := recordToModel(record)
	if err != nil {
		return err
	}
	return translateCreateError(record.ID, r.db.WithContext(ctx).Create(m).Error)
}

func (r *RecordRepo) FindAll(ctx context.Context, appName string, limit int) ([]*domain.DeploymentRecord, error) {
	query := r.db.WithContext(ctx).Model(&DeploymentRecordModel{}).Order("created_at DESC")
	if appName != "" {
		query = query.Where("app_name = ?", appName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []DeploymentRecordModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]*domain.DeploymentRecord, 0, len(models))
	for i := range models {
		rec, err := modelToRecord(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordToModel(r *domain.DeploymentRecord) (*DeploymentRecordModel, error) {
	resourcesJSON, err := json.Marshal(r.Resources)
	if err != nil {
		return nil, err
	}
	return &DeploymentRecordModel{
		ID:        r.ID,
		AppName:   r.AppName,
		Kind:      string(r.Kind),
		Outcome:   string(r.Outcome),
		Resources: string(resourcesJSON),
		Error:     r.Error,
		CreatedAt: r.CreatedAt,
	}, nil
}

func modelToRecord(m *DeploymentRecordModel) (*domain.DeploymentRecord, error) {
	var resources []string
	if m.Resources != "" && m.Resources != "null" {
		if err := json.Unmarshal([]byte(m.Resources), &resources); err != nil {
			return nil, err
		}
	}
	return &domain.DeploymentRecord{
		ID:        m.ID,
		AppName:   m.AppName,
		Kind:      domain.RecordKind(m.Kind),
		Outcome:   domain.Outcome(m.Outcome),
		Resources: resources,
		Error:     m.Error,
		CreatedAt: m.CreatedAt,
	}, nil
}
