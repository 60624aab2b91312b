package domain

// PodStatus 是单个 Pod 经阶段分类后的状态。
type PodStatus struct {
	Name      string  `json:"Name"`
	Phase     string  `json:"Phase"`
	Ready     bool    `json:"Ready"`
	HostIP    string  `json:"HostIP"`
	PodIP     string  `json:"PodIP"`
	StartTime *string `json:"StartTime"`
}

// AppStatus 是一个工作负载的聚合状态，每次请求实时计算。
type AppStatus struct {
	DeploymentName string      `json:"DeploymentName"`
	Kind           string      `json:"Kind"`
	Replicas       int32       `json:"Replicas"`
	ReadyReplicas  int         `json:"ReadyReplicas"`
	PodStatuses    []PodStatus `json:"PodStatuses"`
}
