package main

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/emailing"
	httpclient "github.com/karthigaD-hub/xcyber360-backend/pkg/http-client"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"

	assessmentDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/assessment"
	userdirectoryDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/user-directory"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_ASSESSMENT_DB_USERNAME     = "ASSESSMENT_DB_USERNAME"
	ENV_ASSESSMENT_DB_PASSWORD     = "ASSESSMENT_DB_PASSWORD"
	ENV_USER_DIRECTORY_DB_USERNAME = "USER_DIRECTORY_DB_USERNAME"
	ENV_USER_DIRECTORY_DB_PASSWORD = "USER_DIRECTORY_DB_PASSWORD"

	ENV_SMTP_BRIDGE_API_KEY = "SMTP_BRIDGE_API_KEY"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		AssessmentDB    db.DBConfigYaml `json:"assessment_db" yaml:"assessment_db"`
		UserDirectoryDB db.DBConfigYaml `json:"user_directory_db" yaml:"user_directory_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	AssessmentConfigs struct {
		FormBaseURL string `json:"form_base_url" yaml:"form_base_url"`
	} `json:"assessment_configs" yaml:"assessment_configs"`

	ReminderConfig struct {
		SendReminders bool          `json:"send_reminders" yaml:"send_reminders"`
		RemindAfter   time.Duration `json:"remind_after" yaml:"remind_after"`
	} `json:"reminder_config" yaml:"reminder_config"`

	MessagingConfigs struct {
		SmtpBridgeConfig struct {
			URL            string        `json:"url" yaml:"url"`
			APIKey         string        `json:"api_key" yaml:"api_key"`
			RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
		} `json:"smtp_bridge_config" yaml:"smtp_bridge_config"`
		TemplateDir string `json:"template_dir" yaml:"template_dir"`
	} `json:"messaging_configs" yaml:"messaging_configs"`
}

var conf config

var (
	assessmentDBService    *assessmentDB.AssessmentDBService
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

	// init db
	initDBs()

	// init email sending
	emailing.InitEmailSending(
		&httpclient.ClientConfig{
			RootURL: conf.MessagingConfigs.SmtpBridgeConfig.URL,
			APIKey:  conf.MessagingConfigs.SmtpBridgeConfig.APIKey,
			Timeout: conf.MessagingConfigs.SmtpBridgeConfig.RequestTimeout,
		},
		conf.MessagingConfigs.TemplateDir,
	)
}

func secretsOverride() {
	if apiKey := os.Getenv(ENV_SMTP_BRIDGE_API_KEY); apiKey != "" {
		conf.MessagingConfigs.SmtpBridgeConfig.APIKey = apiKey
	}

	if dbUsername := os.Getenv(ENV_ASSESSMENT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AssessmentDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_ASSESSMENT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AssessmentDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_USER_DIRECTORY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.UserDirectoryDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_USER_DIRECTORY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.UserDirectoryDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	assessmentDBService, err = assessmentDB.NewAssessmentDBService(db.DBConfigFromYamlObj(conf.DBConfigs.AssessmentDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Assessment DB", slog.String("error", err.Error()))
		panic(err)
	}

	userDirectoryDBService, err = userdirectoryDB.NewUserDirectoryDBService(db.DBConfigFromYamlObj(conf.DBConfigs.UserDirectoryDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to User Directory DB", slog.String("error", err.Error()))
		panic(err)
	}
}
