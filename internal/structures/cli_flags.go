package structures

type CliFlags struct {
	ConfigPath string
	EnvFile    string
	DebugMode  bool
}
