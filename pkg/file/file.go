package file

import (
	"os"
)

func GetBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func CheckFileIsExist(filename string) bool {
	var exist = true
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		exist = false
	}
	return exist
}

// EnsureDir 确保目录存在，不存在则创建
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
