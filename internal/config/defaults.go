package config

const (
	// DefaultDepartmentRetention is the probability that a department orgName
	// survives normalization.
	DefaultDepartmentRetention = 0.1

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultConfigDir = "~/.config/nacombine"
	projectConfig    = "nacombine.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Synthesis: Synthesis{
			DepartmentRetention: DefaultDepartmentRetention,
		},
		Output: Output{
			Atomic: true,
			Lock:   true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
