// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, appCfg.SuperAdminPassword, logger); err != nil {
			logger.Error("superadmin bootstrap failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// ensureSuperAdmin promotes the user with email to superadmin, creating the
// account when it does not exist. Creation needs a password; without one the
// step is skipped with a warning. A superadmin keeps whatever church it has.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == models.RoleSuperAdmin {
			return nil
		}
		logger.Info("promoting user to superadmin",
			zap.String("email", u.Email),
			zap.String("from_role", u.Role))
		return users.SetRole(ctx, u.ID, models.RoleSuperAdmin)
	case !errors.Is(err, mongo.ErrNoDocuments):
		return err
	}

	if password == "" {
		logger.Warn("superadmin_email has no account and superadmin_password is empty; skipping",
			zap.String("email", email))
		return nil
	}

	created, err := users.Create(ctx, models.User{
		Name:  "Super Admin",
		Email: email,
		Role:  models.RoleSuperAdmin,
	}, password)
	if err != nil {
		return err
	}
	logger.Info("created superadmin", zap.String("email", created.Email))
	return nil
}
