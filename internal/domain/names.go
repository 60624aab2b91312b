package domain

const (
	suffixSecret = "-secret"
	suffixConfig = "-config"
	suffixPVC    = "-pvc"
)

// 派生资源命名：Secret/ConfigMap/PVC 带后缀，其余资源（Deployment、StatefulSet、
// Service、Ingress）直接使用应用名。同一应用名下各类资源名互不冲突。

func SecretName(app string) string { return app + suffixSecret }

func ConfigName(app string) string { return app + suffixConfig }

func PVCName(app string) string { return app + suffixPVC }

// DefaultHost 在未指定域名时为 Ingress 生成的主机名。
func DefaultHost(app string) string { return app + ".example.com" }
