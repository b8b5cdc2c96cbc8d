package config

const (
	defaultScheme         = "http"
	defaultHost           = "127.0.0.1"
	defaultPort           = 15672
	defaultUser           = "guest"
	defaultPassword       = "guest"
	defaultVhost          = "/"
	defaultTimeoutSeconds = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		RabbitTools: RabbitTools{
			Scheme:         defaultScheme,
			Host:           defaultHost,
			Port:           defaultPort,
			User:           defaultUser,
			Password:       defaultPassword,
			Vhost:          defaultVhost,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
