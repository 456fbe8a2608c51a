package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	sc "github.com/karthigaD-hub/xcyber360-backend/pkg/smtp-client"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_SMTP_SERVER_USERNAME = "SMTP_SERVER_USERNAME"
	ENV_SMTP_SERVER_PASSWORD = "SMTP_SERVER_PASSWORD"
)

type SmtpBridgeConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	ApiKeys []string `json:"api_keys" yaml:"api_keys"`

	SMTPServerConfig struct {
		LowPrio  sc.SmtpServerList `json:"low_prio" yaml:"low_prio"`
		HighPrio sc.SmtpServerList `json:"high_prio" yaml:"high_prio"`
	} `json:"smtp_server_config" yaml:"smtp_server_config"`
}

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

	// Override smtp credentials from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	username := os.Getenv(ENV_SMTP_SERVER_USERNAME)
	password := os.Getenv(ENV_SMTP_SERVER_PASSWORD)
	if username == "" && password == "" {
		return
	}

	for i := range conf.SMTPServerConfig.LowPrio.Servers {
		if username != "" {
			conf.SMTPServerConfig.LowPrio.Servers[i].SetUsername(username)
		}
		if password != "" {
			conf.SMTPServerConfig.LowPrio.Servers[i].SetPassword(password)
		}
	}
	for i := range conf.SMTPServerConfig.HighPrio.Servers {
		if username != "" {
			conf.SMTPServerConfig.HighPrio.Servers[i].SetUsername(username)
		}
		if password != "" {
			conf.SMTPServerConfig.HighPrio.Servers[i].SetPassword(password)
		}
	}
}
