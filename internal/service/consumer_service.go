// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"adorder-be/internal/dto"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the mail outbox and hands jobs to the mailer.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	mailer mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		mailer:     mailer,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var job dto.MailJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("MAIL_OUTBOX", "Failed to unmarshal mail job", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed jobs are never retried
		return
	}

	var err error
	switch job.Kind {
	case dto.MailKindCancellationProcessed:
		err = cs.mailer.SendCancellationProcessed(job.ToEmail, job.ClientName, job.RequestType, job.Status, job.AdminNote)
	case dto.MailKindPaymentReceipt:
		err = cs.mailer.SendPaymentReceipt(job.ToEmail, job.PgOrderId, job.Amount, job.PointAmount, job.NewBalance)
	default:
		cs.logger.Warn("MAIL_OUTBOX", "Unknown mail job kind", map[string]interface{}{"kind": job.Kind})
		msg.Ack()
		return
	}

	if err != nil {
		// Delivery failures are logged by the mailer; the job is dropped
		// rather than redelivered in a tight loop.
		cs.logger.Warn("MAIL_OUTBOX", "Mail job failed", map[string]interface{}{"kind": job.Kind, "error": err.Error()})
	}
	msg.Ack()
}

// enqueueMail serializes a job onto the outbox. Failures are logged only.
func enqueueMail(ctx context.Context, pub IPublisherService, log logger.ILogger, job dto.MailJob) {
	if pub == nil || job.ToEmail == "" {
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := pub.Publish(ctx, payload); err != nil {
		log.Warn("MAIL_OUTBOX", "Failed to enqueue mail job", map[string]interface{}{"kind": job.Kind, "error": err.Error()})
	}
}
