package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// pgConfKeys 是写入 ConfigMap 的 PostgreSQL 参数，顺序即输出顺序。
var pgConfKeys = []string{"shared_buffers", "max_connections"}

// ReadPostgresConf 读取 key = value 格式的配置文件，返回可直接作为 ConfigMap data 的内容：
// {fileName: "shared_buffers = ...\nmax_connections = ..."}。
func ReadPostgresConf(path, fileName string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read postgres config: %w", err)
	}
	return ParsePostgresConf(data, fileName)
}

func ParsePostgresConf(data []byte, fileName string) (map[string]string, error) {
	values := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("postgres config line %d: expected key = value", lineNo)
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan postgres config: %w", err)
	}

	lines := make([]string, 0, len(pgConfKeys))
	for _, k := range pgConfKeys {
		v, ok := values[k]
		if !ok {
			return nil, fmt.Errorf("postgres config: missing %s", k)
		}
		lines = append(lines, fmt.Sprintf("%s = %s", k, v))
	}
	return map[string]string{fileName: strings.Join(lines, "\n")}, nil
}
