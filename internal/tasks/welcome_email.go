package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/houseofplants/houseofplants/internal/logutil"
	"github.com/houseofplants/houseofplants/internal/mailer"
)

// WelcomeEmailTask sends the welcome mail to a freshly signed-up user. It
// is queued by the signup flow and processed in the background; a failed
// send retries a couple of times and then is dropped with a log line, never
// surfacing to the user.
type WelcomeEmailTask struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (t WelcomeEmailTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "welcome_email",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// WelcomeEmailProcessor creates a processor for welcome mails. A mailer
// without a configured SMTP host turns the task into a logged no-op so a
// dev setup still completes signups.
func WelcomeEmailProcessor(sender mailer.Sender, enabled bool) backlite.QueueProcessor[WelcomeEmailTask] {
	return func(ctx context.Context, task WelcomeEmailTask) error {
		logger := logutil.GetOrDefault(ctx)

		if !enabled {
			logger.Info().Str("email", task.Email).Msg("mail disabled, skipping welcome email")
			return nil
		}

		if err := sender.SendWelcome(ctx, task.Email, task.Name); err != nil {
			return fmt.Errorf("send welcome email to %s: %w", task.Email, err)
		}

		logger.Info().Str("email", task.Email).Msg("welcome email sent")
		return nil
	}
}

func NewWelcomeEmailQueue(sender mailer.Sender, enabled bool) backlite.Queue {
	return backlite.NewQueue(WelcomeEmailProcessor(sender, enabled))
}

// EnqueueWelcomeEmail queues a welcome mail. Implements the auth
// controller's Notifier interface.
func (c *Client) EnqueueWelcomeEmail(email, name string) error {
	_, err := c.Add(WelcomeEmailTask{Email: email, Name: name}).Save()
	return err
}
