package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/config"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/manifest"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
)

const defaultRecordLimit = 100

type DeployService struct {
	orchestrator *Orchestrator
	records      port.RecordRepository
	namespace    string
	profile      config.DatastoreProfile
	pgConfPath   string
	credentials  func(username string) domain.Credentials
}

// DeployConfig 汇总部署服务的固定参数。
type DeployConfig struct {
	Namespace        string
	Profile          config.DatastoreProfile
	PostgresConfPath string
}

// NewDeployService 中 records 可为 nil，此时不记录部署历史。
func NewDeployService(orchestrator *Orchestrator, records port.RecordRepository, cfg DeployConfig) *DeployService {
	return &DeployService{
		orchestrator: orchestrator,
		records:      records,
		namespace:    cfg.Namespace,
		profile:      cfg.Profile,
		pgConfPath:   cfg.PostgresConfPath,
		credentials:  domain.GenerateCredentials,
	}
}

// DeployApp 校验请求、生成资源清单并按序提交。
func (s *DeployService) DeployApp(ctx context.Context, req domain.AppRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	resources, err := manifest.BuildApp(s.namespace, &req)
	if err != nil {
		return err
	}
	submitted, err := s.orchestrator.Submit(ctx, resources)
	s.record(ctx, req.AppName, domain.RecordKindApp, submitted, err)
	if err != nil {
		return err
	}
	slog.Info("app deployment submitted", "app", req.AppName, "resources", len(submitted))
	return nil
}

// DeployPostgres 读取 postgresql.conf、生成一次性凭据后部署 StatefulSet。
func (s *DeployService) DeployPostgres(ctx context.Context, req domain.PostgresRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	pgConf, err := config.ReadPostgresConf(s.pgConfPath, s.profile.ConfigFileName)
	if err != nil {
		return err
	}
	creds := s.credentials(s.profile.Username)
	resources, err := manifest.BuildPostgres(s.namespace, &req, creds, pgConf, s.profile)
	if err != nil {
		return err
	}
	submitted, err := s.orchestrator.Submit(ctx, resources)
	s.record(ctx, req.AppName, domain.RecordKindPostgres, submitted, err)
	if err != nil {
		return err
	}
	slog.Info("postgres deployment submitted", "app", req.AppName, "resources", len(submitted))
	return nil
}

func (s *DeployService) ListRecords(ctx context.Context, appName string) ([]*domain.DeploymentRecord, error) {
	if s.records == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return s.records.FindAll(ctx, appName, defaultRecordLimit)
}

func (s *DeployService) record(ctx context.Context, appName string, kind domain.RecordKind, submitted []string, submitErr error) {
	if s.records == nil {
		return
	}
	rec := &domain.DeploymentRecord{
		ID:        uuid.New().String(),
		AppName:   appName,
		Kind:      kind,
		Outcome:   domain.OutcomeSubmitted,
		Resources: submitted,
		CreatedAt: time.Now(),
	}
	if submitErr != nil {
		rec.Outcome = domain.OutcomeFailed
		if errors.Is(submitErr, domain.ErrAlreadyExists) {
			rec.Outcome = domain.OutcomeConflict
		}
		rec.Error = submitErr.Error()
	}
	// 调用方断开时仍然落库
	if err := s.records.Save(context.WithoutCancel(ctx), rec); err != nil {
		slog.Warn("failed to save deployment record", "app", appName, "error", err)
	}
}
