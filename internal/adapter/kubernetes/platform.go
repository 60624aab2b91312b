package kubernetes

import (
	"context"
	"fmt"
	"time"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
)

var _ port.Platform = (*KubePlatform)(nil)

const (
	defaultNamespace = "default"
	defaultTimeout   = 10 * time.Second
)

// KubePlatform 通过 typed clientset 访问单个 namespace，每次调用有独立超时。
type KubePlatform struct {
	client    kubernetes.Interface
	namespace string
	timeout   time.Duration
}

func NewKubePlatform(client kubernetes.Interface, namespace string, timeout time.Duration) *KubePlatform {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &KubePlatform{client: client, namespace: namespace, timeout: timeout}
}

func (p *KubePlatform) Namespace() string { return p.namespace }

func (p *KubePlatform) CreateSecret(ctx context.Context, secret *corev1.Secret) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.CoreV1().Secrets(p.namespace).Create(ctx, secret, metav1.CreateOptions{})
	return classify("create secret "+secret.Name, err)
}

func (p *KubePlatform) CreateConfigMap(ctx context.Context, cm *corev1.ConfigMap) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.CoreV1().ConfigMaps(p.namespace).Create(ctx, cm, metav1.CreateOptions{})
	return classify("create configmap "+cm.Name, err)
}

func (p *KubePlatform) CreateDeployment(ctx context.Context, deploy *appsv1.Deployment) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.AppsV1().Deployments(p.namespace).Create(ctx, deploy, metav1.CreateOptions{})
	return classify("create deployment "+deploy.Name, err)
}

func (p *KubePlatform) CreateStatefulSet(ctx context.Context, sts *appsv1.StatefulSet) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.AppsV1().StatefulSets(p.namespace).Create(ctx, sts, metav1.CreateOptions{})
	return classify("create statefulset "+sts.Name, err)
}

func (p *KubePlatform) CreateService(ctx context.Context, svc *corev1.Service) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.CoreV1().Services(p.namespace).Create(ctx, svc, metav1.CreateOptions{})
	return classify("create service "+svc.Name, err)
}

func (p *KubePlatform) CreateIngress(ctx context.Context, ing *networkingv1.Ingress) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_, err := p.client.NetworkingV1().Ingresses(p.namespace).Create(ctx, ing, metav1.CreateOptions{})
	return classify("create ingress "+ing.Name, err)
}

func (p *KubePlatform) ListDeployments(ctx context.Context) ([]appsv1.Deployment, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	list, err := p.client.AppsV1().Deployments(p.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, classify("list deployments", err)
	}
	return list.Items, nil
}

func (p *KubePlatform) ListStatefulSets(ctx context.Context) ([]appsv1.StatefulSet, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	list, err := p.client.AppsV1().StatefulSets(p.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, classify("list statefulsets", err)
	}
	return list.Items, nil
}

func (p *KubePlatform) ListPods(ctx context.Context, appName string) ([]corev1.Pod, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	selector := labels.SelectorFromSet(labels.Set{"app": appName}).String()
	list, err := p.client.CoreV1().Pods(p.namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, classify(fmt.Sprintf("list pods app=%s", appName), err)
	}
	return list.Items, nil
}
