package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	assessmentDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/assessment"
	auditDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/audit"
	questionbankDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/question-bank"
	userdirectoryDB "github.com/karthigaD-hub/xcyber360-backend/pkg/db/user-directory"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	assessmentDBConn    *assessmentDB.AssessmentDBService
	questionBankDBConn  *questionbankDB.QuestionBankDBService
	userDirectoryDBConn *userdirectoryDB.UserDirectoryDBService
	auditDBConn         *auditDB.AuditDBService
	tokenSignKey        string
	tokenExpiresIn      time.Duration
	allowedInstanceIDs  []string
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	assessmentDBConn *assessmentDB.AssessmentDBService,
	questionBankDBConn *questionbankDB.QuestionBankDBService,
	userDirectoryDBConn *userdirectoryDB.UserDirectoryDBService,
	auditDBConn *auditDB.AuditDBService,
	allowedInstanceIDs []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:        tokenSignKey,
		tokenExpiresIn:      tokenExpiresIn,
		assessmentDBConn:    assessmentDBConn,
		questionBankDBConn:  questionBankDBConn,
		userDirectoryDBConn: userDirectoryDBConn,
		auditDBConn:         auditDBConn,
		allowedInstanceIDs:  allowedInstanceIDs,
	}
}
