package config

const (
	EnvPrefix = "SHOPSIGHT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendGCS   = "gcs"
	StorageBackendLocal = "local"
)
