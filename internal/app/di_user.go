package app

import (
	"fmt"

	userRepository "github.com/allisson/journal/internal/user/repository"
	userService "github.com/allisson/journal/internal/user/service"
	userUseCase "github.com/allisson/journal/internal/user/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() userService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = userService.NewPasswordService()
	})
	return c.passwordService
}

// UserRepository returns the user repository based on the database driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = userRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the user use case, wrapped with metrics when enabled.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}
		// Deactivation and password changes revoke sessions through the
		// session use case.
		sessionUC, err := c.SessionUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		useCase := userUseCase.NewUserUseCase(
			txManager,
			userRepo,
			c.PasswordService(),
			sessionUC,
			c.Logger(),
		)
		c.userUC = userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUC, nil
}
