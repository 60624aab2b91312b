package kubernetes

import (
	"log/slog"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

const userAgent = "kaas-deployer"

// NewClientset 优先使用 kubeconfig，为空时走 in-cluster 配置。
func NewClientset(kubeconfigPath string) (kubernetes.Interface, error) {
	var cfg *rest.Config
	var err error

	if kubeconfigPath != "" {
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	} else {
		cfg, err = rest.InClusterConfig()
	}
	if err != nil {
		return nil, err
	}
	cfg.UserAgent = userAgent

	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("k8s client ready", "host", cfg.Host, "kubeconfig", kubeconfigPath != "")
	return cs, nil
}
