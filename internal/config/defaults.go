package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/canvass/data/records.db"
	}
	if cfg.Search.ContextLen == 0 {
		cfg.Search.ContextLen = 60
	}
	if cfg.Search.MaxDescription == 0 {
		cfg.Search.MaxDescription = 300
	}
	if cfg.Import.Extensions == nil {
		cfg.Import.Extensions = []string{".xlsx"}
	}
}
