package config

// Config is the full configuration for the dashboard and its companions.
// All fields are optional; Normalize fills the gaps.
type Config struct {
	Env         string `yaml:"env"`
	Addr        string `yaml:"addr"`
	StubAddr    string `yaml:"stub_addr"`
	StatePath   string `yaml:"state_path"`
	ArchivePath string `yaml:"archive_path"`
	// BotsPath points at a YAML bot catalog overriding the built-in one.
	BotsPath string `yaml:"bots_path"`

	Evaluator Evaluator `yaml:"evaluator"`
	Chat      Chat      `yaml:"chat"`
}

// Evaluator configures the remote evaluation endpoint and the bot identity
// forwarded with every submission.
type Evaluator struct {
	BaseURL        string `yaml:"base_url"`
	Hostname       string `yaml:"hostname"`
	BotName        string `yaml:"bot_name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Chat configures the live chat backend.
type Chat struct {
	BaseURL string `yaml:"base_url"`
}
