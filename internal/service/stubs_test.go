package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
)

// --- platform stub ---

type stubPlatform struct {
	mu      sync.Mutex
	created []string
	// failOn 以 {kind}/{name} 为键注入提交错误
	failOn map[string]error

	deploys      []appsv1.Deployment
	statefulSets []appsv1.StatefulSet
	pods         map[string][]corev1.Pod
	listErr      error
	podErr       map[string]error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	podDelay    chan struct{}
}

func (s *stubPlatform) create(ref string) error {
	if err := s.failOn[ref]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, ref)
	return nil
}

func (s *stubPlatform) CreateSecret(_ context.Context, o *corev1.Secret) error {
	return s.create("Secret/" + o.Name)
}
func (s *stubPlatform) CreateConfigMap(_ context.Context, o *corev1.ConfigMap) error {
	return s.create("ConfigMap/" + o.Name)
}
func (s *stubPlatform) CreateDeployment(_ context.Context, o *appsv1.Deployment) error {
	return s.create("Deployment/" + o.Name)
}
func (s *stubPlatform) CreateStatefulSet(_ context.Context, o *appsv1.StatefulSet) error {
	return s.create("StatefulSet/" + o.Name)
}
func (s *stubPlatform) CreateService(_ context.Context, o *corev1.Service) error {
	return s.create("Service/" + o.Name)
}
func (s *stubPlatform) CreateIngress(_ context.Context, o *networkingv1.Ingress) error {
	return s.create("Ingress/" + o.Name)
}

func (s *stubPlatform) ListDeployments(_ context.Context) ([]appsv1.Deployment, error) {
	return s.deploys, s.listErr
}
func (s *stubPlatform) ListStatefulSets(_ context.Context) ([]appsv1.StatefulSet, error) {
	return s.statefulSets, nil
}
func (s *stubPlatform) ListPods(_ context.Context, app string) ([]corev1.Pod, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	if s.podDelay != nil {
		<-s.podDelay
	}
	if err := s.podErr[app]; err != nil {
		return nil, err
	}
	return s.pods[app], nil
}

// --- record repository stub ---

type stubRecordRepo struct {
	saved []*domain.DeploymentRecord
	err   error
}

func (s *stubRecordRepo) Save(_ context.Context, r *domain.DeploymentRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, r)
	return nil
}

func (s *stubRecordRepo) FindAll(_ context.Context, appName string, _ int) ([]*domain.DeploymentRecord, error) {
	var out []*domain.DeploymentRecord
	for _, r := range s.saved {
		if appName == "" || r.AppName == appName {
			out = append(out, r)
		}
	}
	return out, nil
}
