package app

import (
	"context"
	"fmt"

	authService "github.com/allisson/journal/internal/auth/service"
	"github.com/allisson/journal/internal/auth/store"
	authUseCase "github.com/allisson/journal/internal/auth/usecase"
)

// TokenCodec returns the access token codec.
// The Ed25519 signing key is loaded from configuration, unwrapping it through
// KMS when a wrapped key is configured.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		privateKey, err := authService.LoadSigningKey(context.Background(), c.config)
		if err != nil {
			c.initErrors["tokenCodec"] = fmt.Errorf("failed to load token signing key: %w", err)
			return
		}

		codec, err := authService.NewTokenCodec(privateKey, c.config.TokenIssuer, c.config.AccessTokenExpiration)
		if err != nil {
			c.initErrors["tokenCodec"] = fmt.Errorf("failed to create token codec: %w", err)
			return
		}
		c.tokenCodec = codec
	})
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// RevocationStore returns the session revocation store based on the configured backend.
func (c *Container) RevocationStore() (store.RevocationStore, error) {
	c.revocationStoreInit.Do(func() {
		switch c.config.SessionStoreBackend {
		case "memory":
			c.Logger().Warn("using in-memory session store, revocations are not shared across instances")
			c.revocationStore = store.NewMemoryStore()
		case "redis":
			redisStore, err := store.NewRedisStore(c.config.RedisURL, c.config.UsedNonceTTL, true)
			if err != nil {
				c.initErrors["revocationStore"] = fmt.Errorf("failed to create redis session store: %w", err)
				return
			}
			c.revocationStore = redisStore
		default:
			c.initErrors["revocationStore"] = fmt.Errorf(
				"unsupported session store backend: %s", c.config.SessionStoreBackend)
		}
	})
	if storedErr, exists := c.initErrors["revocationStore"]; exists {
		return nil, storedErr
	}
	return c.revocationStore, nil
}

// SessionUseCase returns the session use case, wrapped with metrics when enabled.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}
		codec, err := c.TokenCodec()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}
		revocationStore, err := c.RevocationStore()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}

		useCase := authUseCase.NewSessionUseCase(
			userRepo,
			c.PasswordService(),
			codec,
			revocationStore,
			c.Logger(),
		)
		c.sessionUseCase = authUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// Authenticator returns the access token authenticator, wrapped with metrics when enabled.
func (c *Container) Authenticator() (authUseCase.Authenticator, error) {
	c.authenticatorInit.Do(func() {
		codec, err := c.TokenCodec()
		if err != nil {
			c.initErrors["authenticator"] = err
			return
		}
		revocationStore, err := c.RevocationStore()
		if err != nil {
			c.initErrors["authenticator"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["authenticator"] = err
			return
		}

		authenticator := authUseCase.NewAuthenticator(codec, revocationStore)
		c.authenticator = authUseCase.NewAuthenticatorWithMetrics(authenticator, businessMetrics)
	})
	if storedErr, exists := c.initErrors["authenticator"]; exists {
		return nil, storedErr
	}
	return c.authenticator, nil
}
