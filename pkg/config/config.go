// Package config loads the two binaries' runtime configuration from
// the environment via envconfig, matching the teacher's
// LoadServerConfig convention, optionally seeded from a .env file via
// godotenv.Load during development.
package config

import "github.com/kelseyhightower/envconfig"

// ServerConfig configures the capture/send binary.
type ServerConfig struct {
	Listen struct {
		RemVSPAddr string `envconfig:"REMVSP_LISTEN_ADDR" default:":9000"`
		FragmentSize int `envconfig:"REMVSP_FRAGMENT_SIZE" default:"1400"`
	}

	BufferPool struct {
		Capacity    int `envconfig:"BUFFER_POOL_CAPACITY" default:"8"`
		BufferBytes int `envconfig:"BUFFER_POOL_BUFFER_BYTES" default:"8294400"` // 1920x1080x4
	}

	DropPolicy struct {
		MaxFrameDelayMillis uint64 `envconfig:"MAX_FRAME_DELAY_MILLIS" default:"100"`
	}

	Feedback struct {
		NATSURL string `envconfig:"FEEDBACK_NATS_URL"`
		Topic   string `envconfig:"FEEDBACK_TOPIC" default:"remotia.feedback"`
	}

	Logging struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}

	CSVProfilingPath string `envconfig:"CSV_PROFILING_PATH"`
}

// LoadServerConfig reads ServerConfig from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// ClientConfig configures the receive/render binary.
type ClientConfig struct {
	RemVSPServerAddr string `envconfig:"REMVSP_SERVER_ADDR" required:"true"`
	RemVSPLocalAddr  string `envconfig:"REMVSP_LOCAL_ADDR" default:":0"`

	Logging struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

// LoadClientConfig reads ClientConfig from the environment.
func LoadClientConfig() (ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}
