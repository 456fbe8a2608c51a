package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"

	assessmentDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/assessment"
	questionbankDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/question-bank"
	userdirectoryDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/user-directory"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_ASSESSMENT_DB_USERNAME     = "ASSESSMENT_DB_USERNAME"
	ENV_ASSESSMENT_DB_PASSWORD     = "ASSESSMENT_DB_PASSWORD"
	ENV_QUESTION_BANK_DB_USERNAME  = "QUESTION_BANK_DB_USERNAME"
	ENV_QUESTION_BANK_DB_PASSWORD  = "QUESTION_BANK_DB_PASSWORD"
	ENV_USER_DIRECTORY_DB_USERNAME = "USER_DIRECTORY_DB_USERNAME"
	ENV_USER_DIRECTORY_DB_PASSWORD = "USER_DIRECTORY_DB_PASSWORD"
)

type AssessmentApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`
	DefaultInstanceID  string   `json:"default_instance_id" yaml:"default_instance_id"`

	// DB configs
	DBConfigs struct {
		AssessmentDB    db.DBConfigYaml `json:"assessment_db" yaml:"assessment_db"`
		QuestionBankDB  db.DBConfigYaml `json:"question_bank_db" yaml:"question_bank_db"`
		UserDirectoryDB db.DBConfigYaml `json:"user_directory_db" yaml:"user_directory_db"`
	} `json:"db_configs" yaml:"db_configs"`

	AssessmentConfigs struct {
		FormBaseURL string `json:"form_base_url" yaml:"form_base_url"`
	} `json:"assessment_configs" yaml:"assessment_configs"`
}

var (
	assessmentDBService    *assessmentDB.AssessmentDBService
	questionBankDBService  *questionbankDB.QuestionBankDBService
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

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if conf.DefaultInstanceID == "" && len(conf.AllowedInstanceIDs) > 0 {
		conf.DefaultInstanceID = conf.AllowedInstanceIDs[0]
	}

	// init assessment service
	assessment.Init(
		assessmentDBService,
		questionBankDBService,
		userDirectoryDBService,
		conf.AssessmentConfigs.FormBaseURL,
	)
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_ASSESSMENT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AssessmentDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_ASSESSMENT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AssessmentDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_QUESTION_BANK_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.QuestionBankDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_QUESTION_BANK_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.QuestionBankDB.Password = dbPassword
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
	assessmentDBService, err = assessmentDB.NewAssessmentDBService(db.DBConfigFromYamlObj(conf.DBConfigs.AssessmentDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Assessment DB", slog.String("error", err.Error()))
		return
	}

	questionBankDBService, err = questionbankDB.NewQuestionBankDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QuestionBankDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Question Bank DB", slog.String("error", err.Error()))
		return
	}

	userDirectoryDBService, err = userdirectoryDB.NewUserDirectoryDBService(db.DBConfigFromYamlObj(conf.DBConfigs.UserDirectoryDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to User Directory DB", slog.String("error", err.Error()))
		return
	}
}
