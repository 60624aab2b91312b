// Package manifest 把部署请求翻译为有序的 K8s 资源清单。
// 纯函数，不访问集群；提交由 service.Orchestrator 负责。
package manifest

import (
	"k8s.io/apimachinery/pkg/runtime"
)

// Kind 是资源清单中节点的类型。
type Kind string

const (
	KindSecret      Kind = "Secret"
	KindConfigMap   Kind = "ConfigMap"
	KindDeployment  Kind = "Deployment"
	KindStatefulSet Kind = "StatefulSet"
	KindService     Kind = "Service"
	KindIngress     Kind = "Ingress"
)

// Resource 是一条待提交的资源。被引用的资源总是排在引用它的资源之前。
type Resource struct {
	Kind      Kind
	Namespace string
	Name      string
	Object    runtime.Object
}

// Ref 返回 {kind}/{name}，用于日志与部署记录。
func (r Resource) Ref() string {
	return string(r.Kind) + "/" + r.Name
}

const (
	labelApp       = "app"
	labelManagedBy = "app.kubernetes.io/managed-by"
	managerName    = "kaas"
)

// selectorLabels 只含 app 标签；状态汇总按 app={name} 查 Pod。
func selectorLabels(app string) map[string]string {
	return map[string]string{labelApp: app}
}

func objectLabels(app string) map[string]string {
	return map[string]string{
		labelApp:       app,
		labelManagedBy: managerName,
	}
}
