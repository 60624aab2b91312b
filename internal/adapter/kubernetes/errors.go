package kubernetes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// classify 把 client-go 错误翻译为领域错误：
// AlreadyExists → domain.ErrAlreadyExists，超时 → 504，其余保留平台状态码。
func classify(what string, err error) error {
	if err == nil {
		return nil
	}
	if apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("%s: %w", what, domain.ErrAlreadyExists)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.PlatformError{Code: http.StatusGatewayTimeout, Message: what + ": " + err.Error()}
	}
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		s := status.Status()
		return &domain.PlatformError{Code: int(s.Code), Message: what + ": " + s.Message}
	}
	return &domain.PlatformError{Code: http.StatusInternalServerError, Message: what + ": " + err.Error()}
}
