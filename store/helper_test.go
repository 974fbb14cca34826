package store

import "os"

func writeRaw(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
