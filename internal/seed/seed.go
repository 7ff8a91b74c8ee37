// Package seed creates the default administrator account at first boot.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/app/repositories"
	"github.com/kaan/markbook/internal/config"
	"github.com/kaan/markbook/internal/pkg/auth"
)

// CreateDefaultAdmin creates the seed administrator if no account with the
// configured username exists yet. Runs after migrations on every start;
// subsequent starts are a no-op.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	adminRepo := repositories.NewAdminRepository(dbPool)

	exists, err := adminRepo.UsernameExists(ctx, cfg.Admin.Username)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default admin exists")
		return err
	}

	if exists {
		lgr.Info().Str("username", cfg.Admin.Username).Msg("Default admin already exists, skipping creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &models.Admin{
		Username:     cfg.Admin.Username,
		PasswordHash: passwordHash,
	}

	if err := adminRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Str("username", admin.Username).Msg("Default admin created")
	return nil
}
