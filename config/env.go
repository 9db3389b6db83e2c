package config

import (
	"dexd/pkg/types"
	"dexd/pkg/utils"

	"strings"

	"github.com/joho/godotenv"
)

var Env = Environment{}

type Environment struct {
	EnvName  types.EnvName
	YamlMode types.YamlMode
}

func init() {
	godotenv.Load()
	switch env := strings.ToLower(utils.LoadEnvWithDefault("ENVIRONMENT", "local")); env {
	case "prod", "production":
		Env.EnvName = types.EnvProd
	case "dev", "staging":
		Env.EnvName = types.EnvDev
	default:
		Env.EnvName = types.EnvLocal
	}
	switch strings.ToUpper(utils.LoadEnvWithDefault("CONFIG_MODE", "LOCAL")) {
	case "S3":
		Env.YamlMode = types.YamlModeS3
	default:
		Env.YamlMode = types.YamlModeLocal
	}
}
