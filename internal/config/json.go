package config

import (
	"encoding/json"
	"os"

	"github.com/annoti/annoti/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Only fields
// present in the file overlay the runtime Config.
type JsonConfig struct {
	DataDir  string `json:"data_dir"`
	DBPath   string `json:"db_path"`
	UserName string `json:"user_name"`
	LogLevel string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// flag is given nothing is loaded. Read or unmarshal errors panic (the
// process cannot start with a broken explicit config).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.UserName != "" {
		cfg.UserName = jc.UserName
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
