package service

import corev1 "k8s.io/api/core/v1"

const (
	phaseRunning   = "Running"
	phaseCompleted = "Completed"
)

// waitingReasons 是会覆盖 Pod 原始阶段的容器等待原因。
var waitingReasons = map[string]bool{
	"CrashLoopBackOff": true,
	"ImagePullBackOff": true,
	"ErrImagePull":     true,
	"Pending":          true,
}

// ClassifyPod 把 Pod 的原始阶段和容器状态归约为一个阶段标签，按以下优先级：
//  1. Running 且所有容器 ready → ("Running", true)
//  2. 任一容器等待原因属于 waitingReasons → (原因, false)
//  3. 任一容器以 Completed 终止 → ("Completed", false)
//  4. 其余 → (原始阶段, false)
//
// 没有容器状态的 Running Pod 视为全部 ready。
func ClassifyPod(status corev1.PodStatus) (string, bool) {
	if status.Phase == corev1.PodRunning && allReady(status.ContainerStatuses) {
		return phaseRunning, true
	}
	for _, cs := range status.ContainerStatuses {
		if w := cs.State.Waiting; w != nil && waitingReasons[w.Reason] {
			return w.Reason, false
		}
	}
	for _, cs := range status.ContainerStatuses {
		if t := cs.State.Terminated; t != nil && t.Reason == phaseCompleted {
			return phaseCompleted, false
		}
	}
	return string(status.Phase), false
}

func allReady(statuses []corev1.ContainerStatus) bool {
	for _, cs := range statuses {
		if !cs.Ready {
			return false
		}
	}
	return true
}
