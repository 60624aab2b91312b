package manifest

import (
	"fmt"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/config"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
)

const (
	secretKeyUsername = "username"
	secretKeyPassword = "password"
	dataSubdir        = "pgdata"
)

// BuildApp 生成无状态应用的资源清单：
// [Secret] → Deployment → Service → [Ingress]。
func BuildApp(namespace string, req *domain.AppRequest) ([]Resource, error) {
	requests, err := resourceRequests(req.Resources.CPU, req.Resources.RAM)
	if err != nil {
		return nil, err
	}

	var out []Resource
	if secret := appSecret(namespace, req); secret != nil {
		out = append(out, Resource{Kind: KindSecret, Namespace: namespace, Name: secret.Name, Object: secret})
	}

	name := req.AppName
	port := int32(req.ServicePort)
	deploy := &appsv1.Deployment{
		ObjectMeta: objectMeta(namespace, name, name),
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(req.Replicas),
			Selector: &metav1.LabelSelector{MatchLabels: selectorLabels(name)},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: selectorLabels(name)},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:      name,
							Image:     req.Image(),
							Ports:     []corev1.ContainerPort{{ContainerPort: port}},
							Env:       appEnv(name, req.Envs),
							Resources: corev1.ResourceRequirements{Requests: requests},
						},
					},
				},
			},
		},
	}
	out = append(out, Resource{Kind: KindDeployment, Namespace: namespace, Name: name, Object: deploy})

	svc := service(namespace, name, port, req.Exposure())
	out = append(out, Resource{Kind: KindService, Namespace: namespace, Name: name, Object: svc})

	if req.Exposure().HasIngress() {
		ing := ingress(namespace, name, req.Host(), port)
		out = append(out, Resource{Kind: KindIngress, Namespace: namespace, Name: name, Object: ing})
	}
	return out, nil
}

// BuildPostgres 生成数据层资源清单：
// Secret → ConfigMap → StatefulSet → Service → [Ingress]。
func BuildPostgres(
	namespace string,
	req *domain.PostgresRequest,
	creds domain.Credentials,
	pgConf map[string]string,
	profile config.DatastoreProfile,
) ([]Resource, error) {
	requests, err := resourceRequests(req.Resources.CPU, req.Resources.Memory)
	if err != nil {
		return nil, err
	}
	storage, err := resource.ParseQuantity(profile.StorageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: storage size %q: %v", domain.ErrInvalidInput, profile.StorageSize, err)
	}

	name := req.AppName
	secretName := domain.SecretName(name)
	configName := domain.ConfigName(name)
	port := int32(profile.Port)

	secret := &corev1.Secret{
		ObjectMeta: objectMeta(namespace, secretName, name),
		Data: map[string][]byte{
			secretKeyUsername: []byte(creds.Username),
			secretKeyPassword: []byte(creds.Password),
		},
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: objectMeta(namespace, configName, name),
		Data:       pgConf,
	}

	sts := &appsv1.StatefulSet{
		ObjectMeta: objectMeta(namespace, name, name),
		Spec: appsv1.StatefulSetSpec{
			ServiceName: name,
			Replicas:    ptr.To(int32(1)),
			Selector:    &metav1.LabelSelector{MatchLabels: selectorLabels(name)},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: selectorLabels(name)},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  name,
							Image: profile.Image,
							Ports: []corev1.ContainerPort{{ContainerPort: port}},
							Env: []corev1.EnvVar{
								secretEnv("POSTGRES_USER", secretName, secretKeyUsername),
								secretEnv("POSTGRES_PASSWORD", secretName, secretKeyPassword),
								{Name: "PGDATA", Value: profile.DataMountPath + "/" + dataSubdir},
							},
							VolumeMounts: []corev1.VolumeMount{
								{Name: configName, MountPath: profile.ConfigMountPath, SubPath: profile.ConfigFileName},
								{Name: domain.PVCName(name), MountPath: profile.DataMountPath},
							},
							Resources: corev1.ResourceRequirements{Requests: requests},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: configName,
							VolumeSource: corev1.VolumeSource{
								ConfigMap: &corev1.ConfigMapVolumeSource{
									LocalObjectReference: corev1.LocalObjectReference{Name: configName},
								},
							},
						},
					},
				},
			},
			VolumeClaimTemplates: []corev1.PersistentVolumeClaim{
				pvcTemplate(domain.PVCName(name), storage),
			},
		},
	}

	svc := service(namespace, name, port, req.Exposure())

	out := []Resource{
		{Kind: KindSecret, Namespace: namespace, Name: secretName, Object: secret},
		{Kind: KindConfigMap, Namespace: namespace, Name: configName, Object: cm},
		{Kind: KindStatefulSet, Namespace: namespace, Name: name, Object: sts},
		{Kind: KindService, Namespace: namespace, Name: name, Object: svc},
	}
	if req.Exposure().HasIngress() {
		ing := ingress(namespace, name, domain.DefaultHost(name), port)
		out = append(out, Resource{Kind: KindIngress, Namespace: namespace, Name: name, Object: ing})
	}
	return out, nil
}

func objectMeta(namespace, name, app string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: namespace,
		Labels:    objectLabels(app),
	}
}

// appSecret 收集 IsSecret 的环境变量；没有时返回 nil，不生成 Secret。
func appSecret(namespace string, req *domain.AppRequest) *corev1.Secret {
	if !req.HasSecrets() {
		return nil
	}
	data := make(map[string][]byte)
	for _, e := range req.Envs {
		if e.IsSecret {
			data[e.Key] = []byte(e.Value)
		}
	}
	return &corev1.Secret{
		ObjectMeta: objectMeta(namespace, domain.SecretName(req.AppName), req.AppName),
		Data:       data,
	}
}

// appEnv 先放明文变量，再放引用 Secret 的变量，组内保持请求顺序。
func appEnv(app string, envs []domain.EnvVar) []corev1.EnvVar {
	if len(envs) == 0 {
		return nil
	}
	result := make([]corev1.EnvVar, 0, len(envs))
	for _, e := range envs {
		if !e.IsSecret {
			result = append(result, corev1.EnvVar{Name: e.Key, Value: e.Value})
		}
	}
	secretName := domain.SecretName(app)
	for _, e := range envs {
		if e.IsSecret {
			result = append(result, secretEnv(e.Key, secretName, e.Key))
		}
	}
	return result
}

func secretEnv(name, secretName, key string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: name,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
				Key:                  key,
			},
		},
	}
}

// resourceRequests 把 CPU/内存字符串转成 ResourceList，空串不写入。
// resourceRequests 依次解析 cpu、memory；空串跳过，第一个非法值即返回。
func resourceRequests(cpu, memory string) (corev1.ResourceList, error) {
	list := corev1.ResourceList{}
	for _, r := range []struct {
		name  corev1.ResourceName
		value string
	}{
		{corev1.ResourceCPU, cpu},
		{corev1.ResourceMemory, memory},
	} {
		if r.value == "" {
			continue
		}
		q, err := resource.ParseQuantity(r.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s request %q: %v", domain.ErrInvalidInput, r.name, r.value, err)
		}
		list[r.name] = q
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

func service(namespace, name string, port int32, exposure domain.Exposure) *corev1.Service {
	svc := &corev1.Service{
		ObjectMeta: objectMeta(namespace, name, name),
		Spec: corev1.ServiceSpec{
			Selector: selectorLabels(name),
			Ports: []corev1.ServicePort{
				{
					Port:       port,
					TargetPort: intstr.FromInt32(port),
				},
			},
		},
	}
	if exposure == domain.ExposureExternal {
		svc.Spec.Type = corev1.ServiceTypeLoadBalancer
	}
	return svc
}

func ingress(namespace, name, host string, port int32) *networkingv1.Ingress {
	return &networkingv1.Ingress{
		ObjectMeta: objectMeta(namespace, name, name),
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{
				{
					Host: host,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: ptr.To(networkingv1.PathTypePrefix),
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: name,
											Port: networkingv1.ServiceBackendPort{Number: port},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func pvcTemplate(name string, size resource.Quantity) corev1.PersistentVolumeClaim {
	return corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: size},
			},
		},
	}
}
