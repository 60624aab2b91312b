package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatastoreProfile 描述数据层（PostgreSQL）部署的固定参数。
type DatastoreProfile struct {
	Image           string `yaml:"image"`
	Port            int    `yaml:"port"`
	Username        string `yaml:"username"`
	StorageSize     string `yaml:"storage_size"`
	ConfigMountPath string `yaml:"config_mount_path"`
	ConfigFileName  string `yaml:"config_file_name"`
	DataMountPath   string `yaml:"data_mount_path"`
}

func DefaultDatastoreProfile() DatastoreProfile {
	return DatastoreProfile{
		Image:           "postgres:latest",
		Port:            5432,
		Username:        "postgres_user",
		StorageSize:     "1Gi",
		ConfigMountPath: "/etc/postgresql/postgresql.conf",
		ConfigFileName:  "postgresql.conf",
		DataMountPath:   "/var/lib/postgresql/data",
	}
}

// LoadDatastoreProfile 读取 YAML 覆盖默认值；path 为空时直接返回默认值。
func LoadDatastoreProfile(path string) (DatastoreProfile, error) {
	p := DefaultDatastoreProfile()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read datastore profile: %w", err)
	}
	return ParseDatastoreProfile(data)
}

// ParseDatastoreProfile 解析 YAML，未出现的字段保留默认值。
func ParseDatastoreProfile(data []byte) (DatastoreProfile, error) {
	p := DefaultDatastoreProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse datastore profile: %w", err)
	}
	if p.Port <= 0 || p.Port > 65535 {
		return p, fmt.Errorf("datastore profile: port %d out of range", p.Port)
	}
	if p.Image == "" || p.Username == "" {
		return p, fmt.Errorf("datastore profile: image and username are required")
	}
	return p, nil
}
