package app

import (
	"fmt"

	accountUsecase "github.com/allisson/accounts/internal/account/usecase"
	notificationRepository "github.com/allisson/accounts/internal/notification/repository"
	notificationService "github.com/allisson/accounts/internal/notification/service"
	notificationUsecase "github.com/allisson/accounts/internal/notification/usecase"
)

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (notificationUsecase.OutboxEventRepository, error) {
	var err error
	c.outboxRepoInit.Do(func() {
		c.outboxRepo, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepo"]; exists {
		return nil, storedErr
	}
	return c.outboxRepo, nil
}

// PayloadCodec returns the codec that seals outbox email payloads.
func (c *Container) PayloadCodec() (*notificationService.PayloadCodec, error) {
	var err error
	c.payloadCodecInit.Do(func() {
		var key []byte
		key, err = c.SigningKey()
		if err != nil {
			err = fmt.Errorf("failed to get signing key for payload codec: %w", err)
			c.initErrors["payloadCodec"] = err
			return
		}
		c.payloadCodec, err = notificationService.NewLocalPayloadCodec(key)
		if err != nil {
			c.initErrors["payloadCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["payloadCodec"]; exists {
		return nil, storedErr
	}
	return c.payloadCodec, nil
}

// Notifier returns the account notifier. Emails are enqueued to the outbox and
// delivered by the worker.
func (c *Container) Notifier() (accountUsecase.Notifier, error) {
	var err error
	c.notifierInit.Do(func() {
		var outboxRepo notificationUsecase.OutboxEventRepository
		outboxRepo, err = c.OutboxRepository()
		if err != nil {
			err = fmt.Errorf("failed to get outbox repository for notifier: %w", err)
			c.initErrors["notifier"] = err
			return
		}
		var codec *notificationService.PayloadCodec
		codec, err = c.PayloadCodec()
		if err != nil {
			err = fmt.Errorf("failed to get payload codec for notifier: %w", err)
			c.initErrors["notifier"] = err
			return
		}
		c.notifier = notificationUsecase.NewOutboxNotifier(outboxRepo, codec)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notifier"]; exists {
		return nil, storedErr
	}
	return c.notifier, nil
}

// MessageRenderer returns the email template renderer.
func (c *Container) MessageRenderer() (notificationUsecase.MessageRenderer, error) {
	var err error
	c.rendererInit.Do(func() {
		c.renderer, err = notificationService.NewRenderer(c.config.MailSenderName)
		if err != nil {
			err = fmt.Errorf("failed to create message renderer: %w", err)
			c.initErrors["renderer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["renderer"]; exists {
		return nil, storedErr
	}
	return c.renderer, nil
}

// MailSender returns the mail sender selected by MAIL_PROVIDER.
func (c *Container) MailSender() (notificationUsecase.MailSender, error) {
	var err error
	c.mailSenderInit.Do(func() {
		c.mailSender, err = c.initMailSender()
		if err != nil {
			c.initErrors["mailSender"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mailSender"]; exists {
		return nil, storedErr
	}
	return c.mailSender, nil
}

// EventProcessor returns the outbox event processor.
func (c *Container) EventProcessor() (notificationUsecase.EventProcessor, error) {
	var err error
	c.eventProcessorInit.Do(func() {
		c.eventProcessor, err = c.initEventProcessor()
		if err != nil {
			c.initErrors["eventProcessor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventProcessor"]; exists {
		return nil, storedErr
	}
	return c.eventProcessor, nil
}

// OutboxUseCase returns the outbox worker use case.
func (c *Container) OutboxUseCase() (notificationUsecase.OutboxUseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

// initOutboxRepository creates the outbox event repository based on the database driver.
func (c *Container) initOutboxRepository() (notificationUsecase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return notificationRepository.NewMySQLOutboxEventRepository(db), nil
	case "postgres":
		return notificationRepository.NewPostgreSQLOutboxEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMailSender() (notificationUsecase.MailSender, error) {
	switch c.config.MailProvider {
	case "log":
		return notificationService.NewLogSender(c.Logger()), nil
	case "mailtrap":
		return notificationService.NewMailtrapSender(notificationService.MailtrapConfig{
			APIURL:      c.config.MailtrapAPIURL,
			Token:       c.config.MailtrapToken,
			SenderEmail: c.config.MailSenderEmail,
			SenderName:  c.config.MailSenderName,
			RatePerSec:  c.config.MailSendRatePerSec,
			Burst:       c.config.MailSendBurst,
			Timeout:     c.config.NotifyTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", c.config.MailProvider)
	}
}

func (c *Container) initEventProcessor() (notificationUsecase.EventProcessor, error) {
	codec, err := c.PayloadCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get payload codec for event processor: %w", err)
	}

	renderer, err := c.MessageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to get message renderer for event processor: %w", err)
	}

	sender, err := c.MailSender()
	if err != nil {
		return nil, fmt.Errorf("failed to get mail sender for event processor: %w", err)
	}

	processor := notificationUsecase.NewEmailEventProcessor(codec, renderer, sender)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for event processor: %w", err)
		}
		return notificationUsecase.NewEventProcessorWithMetrics(processor, businessMetrics), nil
	}

	return processor, nil
}

// initOutboxUseCase creates the outbox use case with all its dependencies.
func (c *Container) initOutboxUseCase() (notificationUsecase.OutboxUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	processor, err := c.EventProcessor()
	if err != nil {
		return nil, fmt.Errorf("failed to get event processor for outbox use case: %w", err)
	}

	useCaseConfig := notificationUsecase.Config{
		Interval:   c.config.WorkerInterval,
		BatchSize:  c.config.WorkerBatchSize,
		MaxRetries: c.config.WorkerMaxRetries,
	}

	return notificationUsecase.NewOutboxUseCase(useCaseConfig, txManager, outboxRepo, processor, c.Logger()), nil
}
