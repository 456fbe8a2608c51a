package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/pwhash"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"

	userdirectoryDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/user-directory"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_USER_DIRECTORY_DB_USERNAME = "USER_DIRECTORY_DB_USERNAME"
	ENV_USER_DIRECTORY_DB_PASSWORD = "USER_DIRECTORY_DB_PASSWORD"

	// Initial password for the new user
	ENV_NEW_USER_PASSWORD = "NEW_USER_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		UserDirectoryDB db.DBConfigYaml `json:"user_directory_db" yaml:"user_directory_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	PWHashing struct {
		Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
		Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
		Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
	} `json:"pw_hashing" yaml:"pw_hashing"`
}

var conf config

var (
	userDirectoryDBService *userdirectoryDB.UserDirectoryDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// init argon2
	pwhash.InitArgonParams(
		conf.PWHashing.Argon2Memory,
		conf.PWHashing.Argon2Iterations,
		conf.PWHashing.Argon2Parallelism,
	)

	// init db
	initDBs()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_USER_DIRECTORY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.UserDirectoryDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_USER_DIRECTORY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.UserDirectoryDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	userDirectoryDBService, err = userdirectoryDB.NewUserDirectoryDBService(db.DBConfigFromYamlObj(conf.DBConfigs.UserDirectoryDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to User Directory DB", slog.String("error", err.Error()))
		panic(err)
	}
}
