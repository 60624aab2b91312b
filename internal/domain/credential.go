package domain

import "math/rand/v2"

const (
	passwordLength   = 16
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Credentials 是数据层部署使用的一次性账号密码，只写入 Secret，不做持久化。
type Credentials struct {
	Username string
	Password string
}

// GenerateCredentials 生成固定用户名 + 16 位字母数字密码。
// 使用 math/rand/v2 的全局源（自动播种），不是密码学安全的随机数。
func GenerateCredentials(username string) Credentials {
	b := make([]byte, passwordLength)
	for i := range b {
		b[i] = passwordAlphabet[rand.IntN(len(passwordAlphabet))]
	}
	return Credentials{Username: username, Password: string(b)}
}
