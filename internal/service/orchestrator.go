package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/manifest"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
)

// Orchestrator 按顺序逐个提交资源清单，遇到第一个失败即停止。
// 已提交的资源不回滚。
type Orchestrator struct {
	platform port.Platform
}

func NewOrchestrator(platform port.Platform) *Orchestrator {
	return &Orchestrator{platform: platform}
}

// Submit 返回失败前已成功提交的资源（{kind}/{name}）。
// 错误保留平台分类：errors.Is(err, domain.ErrAlreadyExists) 或 errors.As(err, *domain.PlatformError)。
func (o *Orchestrator) Submit(ctx context.Context, resources []manifest.Resource) ([]string, error) {
	submitted := make([]string, 0, len(resources))
	for _, r := range resources {
		if err := o.create(ctx, r); err != nil {
			slog.Warn("resource submission failed",
				"resource", r.Ref(),
				"namespace", r.Namespace,
				"submitted", len(submitted),
				"error", err,
			)
			return submitted, fmt.Errorf("submit %s: %w", r.Ref(), err)
		}
		slog.Debug("resource submitted", "resource", r.Ref(), "namespace", r.Namespace)
		submitted = append(submitted, r.Ref())
	}
	return submitted, nil
}

func (o *Orchestrator) create(ctx context.Context, r manifest.Resource) error {
	switch obj := r.Object.(type) {
	case *corev1.Secret:
		return o.platform.CreateSecret(ctx, obj)
	case *corev1.ConfigMap:
		return o.platform.CreateConfigMap(ctx, obj)
	case *appsv1.Deployment:
		return o.platform.CreateDeployment(ctx, obj)
	case *appsv1.StatefulSet:
		return o.platform.CreateStatefulSet(ctx, obj)
	case *corev1.Service:
		return o.platform.CreateService(ctx, obj)
	case *networkingv1.Ingress:
		return o.platform.CreateIngress(ctx, obj)
	default:
		return fmt.Errorf("unsupported object type %T", r.Object)
	}
}
