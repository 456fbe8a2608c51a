package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/apihelpers"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/emailing"
	httpclient "github.com/karthigaD-hub/xcyber360-backend/pkg/http-client"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/pwhash"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"

	assessmentDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/assessment"
	auditDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/audit"
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
	ENV_AUDIT_DB_USERNAME          = "AUDIT_DB_USERNAME"
	ENV_AUDIT_DB_PASSWORD          = "AUDIT_DB_PASSWORD"

	ENV_SMTP_BRIDGE_API_KEY        = "SMTP_BRIDGE_API_KEY"
	ENV_PLATFORM_USER_JWT_SIGN_KEY = "PLATFORM_USER_JWT_SIGN_KEY"
)

type ManagementApiConfig struct {
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

	// user management configs
	UserManagementConfig struct {
		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		PlatformUserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"platform_user_jwt_config" yaml:"platform_user_jwt_config"`
	} `json:"user_management_config" yaml:"user_management_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		AssessmentDB    db.DBConfigYaml `json:"assessment_db" yaml:"assessment_db"`
		QuestionBankDB  db.DBConfigYaml `json:"question_bank_db" yaml:"question_bank_db"`
		UserDirectoryDB db.DBConfigYaml `json:"user_directory_db" yaml:"user_directory_db"`
		AuditDB         db.DBConfigYaml `json:"audit_db" yaml:"audit_db"`
	} `json:"db_configs" yaml:"db_configs"`

	AssessmentConfigs struct {
		FormBaseURL string `json:"form_base_url" yaml:"form_base_url"`
	} `json:"assessment_configs" yaml:"assessment_configs"`

	MessagingConfigs struct {
		SmtpBridgeConfig struct {
			URL            string        `json:"url" yaml:"url"`
			APIKey         string        `json:"api_key" yaml:"api_key"`
			RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
		} `json:"smtp_bridge_config" yaml:"smtp_bridge_config"`
		TemplateDir string `json:"template_dir" yaml:"template_dir"`
	} `json:"messaging_configs" yaml:"messaging_configs"`
}

var (
	assessmentDBService    *assessmentDB.AssessmentDBService
	questionBankDBService  *questionbankDB.QuestionBankDBService
	userDirectoryDBService *userdirectoryDB.UserDirectoryDBService
	auditDBService         *auditDB.AuditDBService
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

	// init argon2
	pwhash.InitArgonParams(
		conf.UserManagementConfig.PWHashing.Argon2Memory,
		conf.UserManagementConfig.PWHashing.Argon2Iterations,
		conf.UserManagementConfig.PWHashing.Argon2Parallelism,
	)

	// init assessment service
	assessment.Init(
		assessmentDBService,
		questionBankDBService,
		userDirectoryDBService,
		conf.AssessmentConfigs.FormBaseURL,
	)

	// init email sending
	emailing.InitEmailSending(
		loadEmailClientHTTPConfig(),
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

	if dbUsername := os.Getenv(ENV_AUDIT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AuditDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_AUDIT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AuditDB.Password = dbPassword
	}

	if jwtSignKey := os.Getenv(ENV_PLATFORM_USER_JWT_SIGN_KEY); jwtSignKey != "" {
		conf.UserManagementConfig.PlatformUserJWTConfig.SignKey = jwtSignKey
	}
}

func loadEmailClientHTTPConfig() *httpclient.ClientConfig {
	return &httpclient.ClientConfig{
		RootURL: conf.MessagingConfigs.SmtpBridgeConfig.URL,
		APIKey:  conf.MessagingConfigs.SmtpBridgeConfig.APIKey,
		Timeout: conf.MessagingConfigs.SmtpBridgeConfig.RequestTimeout,
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

	auditDBService, err = auditDB.NewAuditDBService(db.DBConfigFromYamlObj(conf.DBConfigs.AuditDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Audit DB", slog.String("error", err.Error()))
		return
	}
}
