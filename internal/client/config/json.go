package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cardkeep/cardkeep/internal/flagx"
	"github.com/cardkeep/cardkeep/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. It uses
// timex.Duration for interval fields, which allows parsing both string values
// such as "10s" and integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabaseFile       string         `json:"database_file"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config command-line flags. If neither flag is set, no file is loaded.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.DatabaseFile = c.DatabaseFile
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
