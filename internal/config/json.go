package config

import (
	"encoding/json"
	"os"

	"github.com/authify/authify-cli/internal/flagx"
	"github.com/authify/authify-cli/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds.
type jsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	StateFile          string         `json:"state_file"`
}

// parseJSON overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
// Only fields present in the file override the config. Read or unmarshal
// errors panic, matching the fail-fast behavior of parseFlags.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StateFile != "" {
		cfg.StateFile = jc.StateFile
	}
}
