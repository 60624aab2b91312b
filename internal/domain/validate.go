package domain

import (
	"fmt"
	"regexp"
)

// k8sNameRegex 匹配合法的 K8s 资源名称：小写字母开头，只含小写字母、数字和连字符，长度 2-63。
var k8sNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{0,61}[a-z0-9]$`)

// maxAppNameLen 保证加上最长后缀（-secret / -config）后仍不超过 63。
const maxAppNameLen = 63 - len(suffixSecret)

// ValidateK8sName 校验名称是否可安全用作 K8s 资源名。
func ValidateK8sName(name string) error {
	if !k8sNameRegex.MatchString(name) {
		return fmt.Errorf("%w: name %q is not a valid k8s resource name", ErrInvalidInput, name)
	}
	return nil
}

// ValidateAppName 在 ValidateK8sName 基础上限制长度，使所有派生资源名都合法。
func ValidateAppName(name string) error {
	if err := ValidateK8sName(name); err != nil {
		return err
	}
	if len(name) > maxAppNameLen {
		return fmt.Errorf("%w: name %q is longer than %d characters", ErrInvalidInput, name, maxAppNameLen)
	}
	return nil
}

// envKeyRegex 与 K8s 对容器环境变量名的要求一致。
var envKeyRegex = regexp.MustCompile(`^[-._a-zA-Z][-._a-zA-Z0-9]*$`)

func validateEnvKey(key string) error {
	if !envKeyRegex.MatchString(key) {
		return fmt.Errorf("%w: env key %q is not a valid environment variable name", ErrInvalidInput, key)
	}
	return nil
}
