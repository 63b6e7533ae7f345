package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/config"
	"github.com/oksasatya/auction-marketplace/pkg/mailer"
)

// Mail bundles what a service needs to enqueue templated emails.
// A nil *Mail or a disabled config drops emails silently.
type Mail struct {
	Pub    JobPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func (m *Mail) enabled() bool {
	return m != nil && m.Pub != nil && m.Cfg != nil && m.Cfg.MailSendEnabled
}

func (m *Mail) enqueue(ctx context.Context, to, template string, data map[string]any) {
	if !m.enabled() || to == "" {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := m.Pub.PublishJSON(ctx, job); err != nil && m.Logger != nil {
		m.Logger.WithError(err).WithFields(logrus.Fields{"to": to, "template": template}).Warn("failed to publish email job")
	}
}
