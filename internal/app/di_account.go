package app

import (
	"context"
	"fmt"

	accountHTTP "github.com/allisson/accounts/internal/account/http"
	accountRepository "github.com/allisson/accounts/internal/account/repository"
	accountService "github.com/allisson/accounts/internal/account/service"
	accountUsecase "github.com/allisson/accounts/internal/account/usecase"
)

// KMSService returns the KMS service used to unwrap the session secret.
func (c *Container) KMSService() accountService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = accountService.NewKMSService()
	})
	return c.kmsService
}

// PasswordHasher returns the password hasher.
func (c *Container) PasswordHasher() accountService.PasswordHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = accountService.NewPasswordHasher()
	})
	return c.passwordHasher
}

// CodeGenerator returns the verification code and recovery token generator.
func (c *Container) CodeGenerator() accountService.CodeGenerator {
	c.codeGeneratorInit.Do(func() {
		c.codeGenerator = accountService.NewCodeGenerator()
	})
	return c.codeGenerator
}

// SigningKey returns the session signing key, resolved once through KMS when KMS_KEY_URI is set.
// The outbox payload key is derived from it as well.
func (c *Container) SigningKey() ([]byte, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = accountService.LoadSigningKey(
			context.Background(),
			c.KMSService(),
			c.config.KMSKeyURI,
			c.config.SessionSecret,
		)
		if err != nil {
			err = fmt.Errorf("failed to load session signing key: %w", err)
			c.initErrors["signingKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// SessionService returns the session token service.
func (c *Container) SessionService() (accountService.SessionService, error) {
	var err error
	c.sessionServiceInit.Do(func() {
		c.sessionService, err = c.initSessionService()
		if err != nil {
			c.initErrors["sessionService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionService"]; exists {
		return nil, storedErr
	}
	return c.sessionService, nil
}

// AccountRepository returns the account repository for the configured driver.
func (c *Container) AccountRepository() (accountUsecase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepo, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// AccountUseCase returns the account use case instance.
func (c *Container) AccountUseCase() (accountUsecase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// AccountHandler returns the account HTTP handler.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	var err error
	c.accountHandlerInit.Do(func() {
		c.accountHandler, err = c.initAccountHandler()
		if err != nil {
			c.initErrors["accountHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountHandler"]; exists {
		return nil, storedErr
	}
	return c.accountHandler, nil
}

func (c *Container) initSessionService() (accountService.SessionService, error) {
	key, err := c.SigningKey()
	if err != nil {
		return nil, err
	}

	sessionService, err := accountService.NewSessionService(key, c.config.SessionTTL, c.config.SessionIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}
	return sessionService, nil
}

// initAccountRepository creates the account repository based on the database driver.
func (c *Container) initAccountRepository() (accountUsecase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (accountUsecase.AccountUseCase, error) {
	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	sessionService, err := c.SessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for account use case: %w", err)
	}

	notifier, err := c.Notifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get notifier for account use case: %w", err)
	}

	baseUseCase := accountUsecase.NewAccountUseCase(
		c.config,
		accountRepo,
		c.PasswordHasher(),
		c.CodeGenerator(),
		sessionService,
		notifier,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUsecase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAccountHandler() (*accountHTTP.AccountHandler, error) {
	accountUseCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}

	cookie := accountHTTP.CookieConfig{
		Name:   c.config.SessionCookieName,
		Domain: c.config.SessionCookieDomain,
		Secure: c.config.SessionCookieSecure,
		TTL:    c.config.SessionTTL,
	}

	return accountHTTP.NewAccountHandler(accountUseCase, cookie, c.Logger()), nil
}
