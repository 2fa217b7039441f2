package config

const (
	// EnvPrefix scopes every environment variable consumed by the platform.
	EnvPrefix = "MEDIPAY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MEDIPAY_DB_DSN"
	EnvDBHost = "MEDIPAY_DB_HOST"
	EnvDBUser = "MEDIPAY_DB_USER"
	EnvDBName = "MEDIPAY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
