package cli

import _ "embed"

//go:embed default_config.yaml
var embeddedDefaultConfigurationData []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default configuration alongside its format identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	configurationCopy := make([]byte, len(embeddedDefaultConfigurationData))
	copy(configurationCopy, embeddedDefaultConfigurationData)
	return configurationCopy, configurationTypeConstant
}
