package config

import (
	"fmt"
	"os"
	"path/filepath"
)

func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("config dir create failed (%s): %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# kproto CLI defaults; flags override every key.
platform = "kiq"
id = ""
# text | hex | json | yaml
output = "text"
# unset keeps KPROTO_LOG_LEVEL or the runtime default (info)
# log_level = "info"
`
