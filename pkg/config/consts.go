package config

// EnvPrefix is empty because every variable carries the SECUREWATCH_ prefix
// in its envconfig tag already.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const EnvDBDSN = "SECUREWATCH_DB_DSN"
