package domain

import "fmt"

// PostgresResources 沿用原接口的小写字段名。
type PostgresResources struct {
	CPU    string `json:"cpu"`
	Memory string `json:"memory"`
}

// PostgresRequest 是 POST /deploy_postgres 的请求体。
type PostgresRequest struct {
	AppName   string            `json:"AppName"`
	Resources PostgresResources `json:"Resources"`
	External  bool              `json:"External"`
}

func (r *PostgresRequest) Exposure() Exposure {
	if r.External {
		return ExposureExternal
	}
	return ExposureInternal
}

func (r *PostgresRequest) Validate() error {
	if err := ValidateAppName(r.AppName); err != nil {
		return err
	}
	if r.Resources.CPU == "" || r.Resources.Memory == "" {
		return fmt.Errorf("%w: Resources.cpu and Resources.memory are required", ErrInvalidInput)
	}
	return nil
}
