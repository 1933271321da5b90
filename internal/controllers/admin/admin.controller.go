package adminController

import (
	"errors"

	"shiftwatch/config"
	"shiftwatch/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

type AdminController struct {
	Config config.Config
	log    logger.Logger
}

func New(config config.Config) *AdminController {
	return &AdminController{
		Config: config,
		log:    logger.New("AdminController"),
	}
}

// Enabled reports whether an admin password hash is configured.
func (c *AdminController) Enabled() bool {
	return c.Config.AdminPasswordHash != ""
}

// Verify compares password with the configured bcrypt hash. Without a hash
// nothing verifies.
func (c *AdminController) Verify(password string) bool {
	log := c.log.Function("Verify")

	if !c.Enabled() || password == "" {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(c.Config.AdminPasswordHash), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Er("failed to compare admin password", err)
	}
	return err == nil
}

// HashPassword produces a hash suitable for admin_password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
