package config

type MapsConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

func loadMapsConfig() *MapsConfig {
	apiKey := getEnv("GOOGLE_MAPS_API_KEY", "")
	return &MapsConfig{
		Enabled: getEnvAsBool("MAPS_ENABLED", apiKey != ""),
		APIKey:  apiKey,
	}
}
