package notification

import (
	"fmt"
	"strings"
	"text/template"

	"salesops_backend/internal/scheduler"
)

var assignmentBody = template.Must(template.New("assignment").Parse(strings.TrimSpace(`
Olá {{.ConsultantName}},

{{if .Repescagem}}Você recebeu {{.LeadCount}} lead(s) por repescagem na campanha "{{.CampaignName}}".
{{else}}Você recebeu {{.LeadCount}} novo(s) lead(s) na campanha "{{.CampaignName}}".
{{end}}
Acesse o portal para começar o atendimento. Leads atendidos nas primeiras horas convertem melhor.

Bom trabalho!
`)))

// RenderAssignment produces the subject and body of a lead-assignment email.
func RenderAssignment(payload scheduler.AssignmentEmailPayload) (subject, body string, err error) {
	if payload.Repescagem {
		subject = fmt.Sprintf("Repescagem: %d lead(s) na campanha %s", payload.LeadCount, payload.CampaignName)
	} else {
		subject = fmt.Sprintf("Novos leads: %d lead(s) na campanha %s", payload.LeadCount, payload.CampaignName)
	}

	var buf strings.Builder
	if err := assignmentBody.Execute(&buf, payload); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
