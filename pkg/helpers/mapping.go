package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/auction-marketplace/pkg/mailer"
)

// EnsureRecipientAndEmail backfills the address fields templates greet with.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// NormalizeTemplate lower-cases a template name and accepts dashes for underscores.
func NormalizeTemplate(job *mailer.EmailJob) {
	job.Template = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(job.Template)), "-", "_")
}
