package service

import (
	"context"
	"fmt"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
)

const startTimeLayout = "2006-01-02 15:04:05Z"

type StatusService struct {
	platform    port.Platform
	excluded    map[string]bool
	concurrency int
}

func NewStatusService(platform port.Platform, excluded []string, concurrency int) *StatusService {
	if concurrency <= 0 {
		concurrency = 1
	}
	ex := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		ex[name] = true
	}
	return &StatusService{platform: platform, excluded: ex, concurrency: concurrency}
}

type workload struct {
	name     string
	kind     string
	replicas int32
}

// CollectAll 汇总 namespace 内所有 Deployment 与 StatefulSet 的状态，顺序与列表顺序一致。
// 各工作负载的 Pod 查询并发执行，并发度受 concurrency 限制。
func (s *StatusService) CollectAll(ctx context.Context) ([]domain.AppStatus, error) {
	workloads, err := s.listWorkloads(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.AppStatus, len(workloads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, w := range workloads {
		g.Go(func() error {
			pods, err := s.platform.ListPods(gctx, w.name)
			if err != nil {
				return fmt.Errorf("collect status of %s: %w", w.name, err)
			}
			results[i] = summarize(w, pods)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *StatusService) listWorkloads(ctx context.Context) ([]workload, error) {
	deploys, err := s.platform.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}
	statefulSets, err := s.platform.ListStatefulSets(ctx)
	if err != nil {
		return nil, err
	}

	workloads := make([]workload, 0, len(deploys)+len(statefulSets))
	for _, d := range deploys {
		if s.excluded[d.Name] {
			continue
		}
		workloads = append(workloads, workload{name: d.Name, kind: "Deployment", replicas: ptr.Deref(d.Spec.Replicas, 1)})
	}
	for _, st := range statefulSets {
		if s.excluded[st.Name] {
			continue
		}
		workloads = append(workloads, workload{name: st.Name, kind: "StatefulSet", replicas: ptr.Deref(st.Spec.Replicas, 1)})
	}
	return workloads, nil
}

func summarize(w workload, pods []corev1.Pod) domain.AppStatus {
	status := domain.AppStatus{
		DeploymentName: w.name,
		Kind:           w.kind,
		Replicas:       w.replicas,
		PodStatuses:    make([]domain.PodStatus, 0, len(pods)),
	}
	for _, pod := range pods {
		phase, ready := ClassifyPod(pod.Status)
		if ready {
			status.ReadyReplicas++
		}
		ps := domain.PodStatus{
			Name:   pod.Name,
			Phase:  phase,
			Ready:  ready,
			HostIP: pod.Status.HostIP,
			PodIP:  pod.Status.PodIP,
		}
		if pod.Status.StartTime != nil {
			ps.StartTime = ptr.To(pod.Status.StartTime.UTC().Format(startTimeLayout))
		}
		status.PodStatuses = append(status.PodStatuses, ps)
	}
	return status
}
