package port

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
)

// Platform 是集群 API 的最小子集，所有调用都限定在一个 namespace 内。
// 失败时返回 domain.ErrAlreadyExists（名称冲突）或 *domain.PlatformError。
type Platform interface {
	CreateSecret(ctx context.Context, secret *corev1.Secret) error
	CreateConfigMap(ctx context.Context, cm *corev1.ConfigMap) error
	CreateDeployment(ctx context.Context, deploy *appsv1.Deployment) error
	CreateStatefulSet(ctx context.Context, sts *appsv1.StatefulSet) error
	CreateService(ctx context.Context, svc *corev1.Service) error
	CreateIngress(ctx context.Context, ing *networkingv1.Ingress) error

	ListDeployments(ctx context.Context) ([]appsv1.Deployment, error)
	ListStatefulSets(ctx context.Context) ([]appsv1.StatefulSet, error)
	// ListPods 按 app={appName} 标签查询 Pod。
	ListPods(ctx context.Context, appName string) ([]corev1.Pod, error)
}
