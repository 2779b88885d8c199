package api

import "io"

//Provider define a cloud provider
type Provider interface {
	//Init reads the provider configuration, format is a viper config type (json, yaml, toml)
	Init(config io.Reader, format string) error
	Name() string
	GetKeyPairManager() KeyPairManager
}
