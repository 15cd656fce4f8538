// internal/notify/email.go

// Package notify sends readers an email when a new round of assignments lands
// in their queue. Delivery is best-effort: a failed send is logged and never
// fails the generation that triggered it.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"review-engine/internal/common/logger"
	"review-engine/internal/models"
	"review-engine/internal/store"
)

// EmailSender is the slice of the SES client the notifier needs; tests supply
// a recording fake.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// AssignmentNotifier emails each reader a count of newly assigned reviews. A
// nil *AssignmentNotifier is valid and does nothing, covering deployments with
// email disabled.
type AssignmentNotifier struct {
	sender EmailSender
	users  store.UserStore
	from   string
	logger logger.Logger
}

func NewAssignmentNotifier(sender EmailSender, users store.UserStore, fromEmail string, log logger.Logger) *AssignmentNotifier {
	return &AssignmentNotifier{
		sender: sender,
		users:  users,
		from:   fromEmail,
		logger: log.WithFields(map[string]interface{}{"component": "notifier"}),
	}
}

// NotifyAssignments looks up each reader's email and sends one message per
// reader with their assignment count. Readers without a stored email are
// skipped.
func (n *AssignmentNotifier) NotifyAssignments(ctx context.Context, counts map[string]int) {
	if n == nil || n.sender == nil {
		return
	}

	for readerID, count := range counts {
		if count == 0 {
			continue
		}
		profile, err := n.users.GetProfile(ctx, readerID)
		if err != nil || profile.Email == "" {
			n.logger.Warn("skipping assignment notification", map[string]interface{}{
				"reader_id": readerID,
			})
			continue
		}

		if err := n.send(ctx, profile, count); err != nil {
			n.logger.Error("failed to send assignment notification", map[string]interface{}{
				"reader_id": readerID,
				"error":     err.Error(),
			})
			continue
		}
		n.logger.Info("assignment notification sent", map[string]interface{}{
			"reader_id": readerID,
			"count":     count,
		})
	}
}

func (n *AssignmentNotifier) send(ctx context.Context, profile *models.ReaderProfile, count int) error {
	noun := "applications"
	if count == 1 {
		noun = "application"
	}
	subject := fmt.Sprintf("You have %d %s to review", count, noun)
	body := fmt.Sprintf(
		"Hi %s,\n\nA new review round has been generated and %d %s assigned to you. "+
			"Sign in to see your queue.\n",
		profile.DisplayName, count, noun)

	_, err := n.sender.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{profile.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}
