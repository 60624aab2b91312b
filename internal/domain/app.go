package domain

import (
	"fmt"
	"strings"
)

// Exposure 描述应用的对外暴露方式。
type Exposure string

const (
	// ExposureInternal 仅集群内 ClusterIP，不生成 Ingress。
	ExposureInternal Exposure = "internal"
	// ExposureIngress ClusterIP + Ingress。
	ExposureIngress Exposure = "ingress"
	// ExposureExternal LoadBalancer + Ingress。
	ExposureExternal Exposure = "external"
)

// HasIngress 判断该暴露方式是否需要 Ingress。
func (e Exposure) HasIngress() bool {
	return e == ExposureIngress || e == ExposureExternal
}

// EnvVar 是一条环境变量；IsSecret 为 true 时值写入 {app}-secret 并以引用方式注入。
type EnvVar struct {
	Key      string `json:"Key"`
	Value    string `json:"Value"`
	IsSecret bool   `json:"IsSecret"`
}

// AppResources 是容器的资源请求，原样透传给平台。
type AppResources struct {
	CPU string `json:"CPU"`
	RAM string `json:"RAM"`
}

// AppRequest 是 POST /deploy 的请求体，一个应用名对应一组派生 K8s 资源。
type AppRequest struct {
	AppName       string       `json:"AppName"`
	Replicas      int32        `json:"Replicas"`
	ImageAddress  string       `json:"ImageAddress"`
	ImageTag      string       `json:"ImageTag"`
	DomainAddress string       `json:"DomainAddress"`
	ServicePort   int          `json:"ServicePort"`
	Resources     AppResources `json:"Resources"`
	Envs          []EnvVar     `json:"Envs"`
	External      bool         `json:"External,omitempty"`
}

// Image 拼出完整镜像引用：address:tag。
func (r *AppRequest) Image() string {
	return fmt.Sprintf("%s:%s", r.ImageAddress, r.ImageTag)
}

// Exposure 根据 External 与 DomainAddress 推导暴露方式。
func (r *AppRequest) Exposure() Exposure {
	switch {
	case r.External:
		return ExposureExternal
	case r.DomainAddress != "":
		return ExposureIngress
	default:
		return ExposureInternal
	}
}

// Host 返回 Ingress 使用的主机名。
func (r *AppRequest) Host() string {
	if r.DomainAddress != "" {
		return r.DomainAddress
	}
	return DefaultHost(r.AppName)
}

// HasSecrets 判断是否存在需要写入 Secret 的环境变量。
func (r *AppRequest) HasSecrets() bool {
	for _, e := range r.Envs {
		if e.IsSecret {
			return true
		}
	}
	return false
}

// Validate 在入口处做一次字段级校验。副本数不在此校验，由平台决定是否接受。
func (r *AppRequest) Validate() error {
	if err := ValidateAppName(r.AppName); err != nil {
		return err
	}
	if strings.TrimSpace(r.ImageAddress) == "" {
		return fmt.Errorf("%w: ImageAddress is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.ImageTag) == "" {
		return fmt.Errorf("%w: ImageTag is required", ErrInvalidInput)
	}
	if r.ServicePort <= 0 || r.ServicePort > 65535 {
		return fmt.Errorf("%w: ServicePort %d out of range", ErrInvalidInput, r.ServicePort)
	}
	for _, e := range r.Envs {
		if err := validateEnvKey(e.Key); err != nil {
			return err
		}
	}
	return nil
}
