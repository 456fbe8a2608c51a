package emailing

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	httpclient "github.com/karthigaD-hub/xcyber360-backend/pkg/http-client"
)

var (
	HttpClient *httpclient.ClientConfig

	templateOverrides = map[string]string{}
)

func InitEmailSending(
	newClientConfig *httpclient.ClientConfig,
	templateDir string,
) {
	HttpClient = newClientConfig

	if templateDir != "" {
		loadTemplateOverrides(templateDir)
	}
}

// loadTemplateOverrides reads <messageType>.html files from the template
// directory, replacing the built-in message bodies.
func loadTemplateOverrides(templateDir string) {
	for messageType := range defaultTemplates {
		path := filepath.Join(templateDir, messageType+".html")
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		templateOverrides[messageType] = string(content)
		slog.Debug("loaded email template override", slog.String("messageType", messageType), slog.String("path", path))
	}
}

type SendEmailReq struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	Content  string   `json:"content"`
	HighPrio bool     `json:"highPrio"`
}

func sendEmail(to []string, subject string, content string, highPrio bool) error {
	if HttpClient == nil || HttpClient.RootURL == "" {
		return errors.New("connection to smtp bridge not initialized")
	}

	req := SendEmailReq{
		To:       to,
		Subject:  subject,
		Content:  content,
		HighPrio: highPrio,
	}
	resp, err := HttpClient.RunHTTPcall("/send-email", req)
	if err == nil && resp != nil {
		errMsg, hasError := resp["error"]
		if hasError {
			err = errors.New(errMsg.(string))
		}
	}
	return err
}

// SendAssessmentLinkInvitation notifies a customer that a new assessment link
// was issued for them. Payload keys: customerName, agentName, assessmentName,
// providerName, linkURL.
func SendAssessmentLinkInvitation(to []string, payload map[string]string) error {
	subject, content, err := resolveMessage(EMAIL_TYPE_LINK_INVITATION, payload)
	if err != nil {
		return err
	}
	err = sendEmail(to, subject, content, true)
	if err != nil {
		slog.Error("failed to send link invitation email", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// SendAssessmentLinkReminder nudges a customer with an unfinished assessment.
// Payload keys: customerName, assessmentName, linkURL, progress.
func SendAssessmentLinkReminder(to []string, payload map[string]string) error {
	subject, content, err := resolveMessage(EMAIL_TYPE_LINK_REMINDER, payload)
	if err != nil {
		return err
	}
	err = sendEmail(to, subject, content, false)
	if err != nil {
		slog.Error("failed to send link reminder email", slog.String("error", err.Error()))
		return err
	}
	return nil
}
