package emailing

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

const (
	EMAIL_TYPE_LINK_INVITATION = "assessment-link-invitation"
	EMAIL_TYPE_LINK_REMINDER   = "assessment-link-reminder"
)

// Built-in templates, can be overridden through the template directory in the
// service config.
var defaultTemplates = map[string]string{
	EMAIL_TYPE_LINK_INVITATION: `<html><body>
<p>Dear {{.customerName}},</p>
<p>{{.agentName}} has invited you to complete the cyber risk assessment <strong>{{.assessmentName}}</strong> for {{.providerName}}.</p>
<p>You can fill in the form at your own pace, your answers are saved as you go:</p>
<p><a href="{{.linkURL}}">{{.linkURL}}</a></p>
<p>This link is personal, please do not share it.</p>
</body></html>`,
	EMAIL_TYPE_LINK_REMINDER: `<html><body>
<p>Dear {{.customerName}},</p>
<p>This is a reminder that your cyber risk assessment <strong>{{.assessmentName}}</strong> is still waiting for you{{if .progress}} (currently {{.progress}}% complete){{end}}.</p>
<p>You can continue where you left off:</p>
<p><a href="{{.linkURL}}">{{.linkURL}}</a></p>
</body></html>`,
}

var defaultSubjects = map[string]string{
	EMAIL_TYPE_LINK_INVITATION: "Your cyber risk assessment for {{.providerName}}",
	EMAIL_TYPE_LINK_REMINDER:   "Reminder: your cyber risk assessment is waiting",
}

func ResolveTemplate(tempName string, templateDef string, contentInfos map[string]string) (content string, err error) {
	if strings.TrimSpace(templateDef) == "" {
		return "", errors.New("empty template `" + tempName)
	}
	tmpl, err := template.New(tempName).Parse(templateDef)
	if err != nil {
		err = fmt.Errorf("error when parsing template %s: %v", tempName, err)
		return "", err
	}
	var tpl bytes.Buffer

	err = tmpl.Execute(&tpl, contentInfos)
	if err != nil {
		err = fmt.Errorf("error during executing template %s: %v", tempName, err)
		return "", err
	}
	return tpl.String(), nil
}

func resolveMessage(messageType string, payload map[string]string) (subject string, content string, err error) {
	subjectDef, ok := templateOverrides[messageType+"-subject"]
	if !ok {
		subjectDef = defaultSubjects[messageType]
	}
	contentDef, ok := templateOverrides[messageType]
	if !ok {
		contentDef = defaultTemplates[messageType]
	}

	subject, err = ResolveTemplate(messageType+"-subject", subjectDef, payload)
	if err != nil {
		return "", "", err
	}
	content, err = ResolveTemplate(messageType, contentDef, payload)
	if err != nil {
		return "", "", err
	}
	return subject, content, nil
}
