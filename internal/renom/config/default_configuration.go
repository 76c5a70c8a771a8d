package config

import _ "embed"

//go:embed default_config.yaml
var defaultConfigurationBytes []byte
