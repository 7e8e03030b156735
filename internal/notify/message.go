package notify

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"sherialink/internal/domain"
)

// MessageBuilder renders confirmation texts. Citizen-entered fields pass
// through a strict policy so markup never reaches a handset.
type MessageBuilder struct {
	ussdCode string
	policy   *bluemonday.Policy
}

func NewMessageBuilder(ussdCode string) *MessageBuilder {
	return &MessageBuilder{
		ussdCode: ussdCode,
		policy:   bluemonday.StrictPolicy(),
	}
}

// CaseConfirmation is the text sent after a case has been stored.
func (b *MessageBuilder) CaseConfirmation(record domain.CaseReport) string {
	var sb strings.Builder
	sb.WriteString(b.ussdCode)
	sb.WriteString(" - SheriaLink Case Report:\n")
	sb.WriteString("Name: " + b.clean(record.Name) + "\n")
	sb.WriteString("Type: " + b.clean(string(record.Description)) + "\n")
	sb.WriteString("Location: " + b.clean(record.County) + "\n")
	sb.WriteString("Case: " + b.clean(string(record.CaseType)) + "\n")
	sb.WriteString("Date: " + b.clean(record.Date) + "\n")
	sb.WriteString("Status: Pending Review\n")
	sb.WriteString("Case ID: " + record.ID)
	return sb.String()
}

// clean strips tags, then undoes the entity escaping the policy applies,
// since SMS is plain text.
func (b *MessageBuilder) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(b.policy.Sanitize(s)))
}
