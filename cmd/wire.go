package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	filestore "github.com/avomont/lifeline/internal/adapters/blob/file"
	"github.com/avomont/lifeline/internal/adapters/blob/routed"
	"github.com/avomont/lifeline/internal/adapters/blob/sealed"
	locationcmdline "github.com/avomont/lifeline/internal/adapters/location/cmdline"
	locationstatic "github.com/avomont/lifeline/internal/adapters/location/static"
	notifycmdline "github.com/avomont/lifeline/internal/adapters/notify/cmdline"
	incidentadapter "github.com/avomont/lifeline/internal/adapters/render/incident"
	blobrepo "github.com/avomont/lifeline/internal/adapters/repo/blob"
	"github.com/avomont/lifeline/internal/application"
	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".lifeline"
)

type app struct {
	emergency *application.EmergencyService
	profiles  *application.ProfileService
	status    *application.StatusQuery
	audit     ports.AuditLog

	overviewRenderer func(application.Overview, incidentadapter.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(baseDir)
	cfg.SetDefault("storage.path", filepath.Join(baseDir, "store"))
	cfg.SetDefault("storage.size_threshold", routed.DefaultSizeThreshold)
	cfg.SetDefault("location.command", []string{"termux-location"})
	cfg.SetDefault("location.timeout", application.DefaultLocationTimeout.String())
	cfg.SetDefault("notify.command", []string{"termux-sms-send", "-n"})
	cfg.SetDefault("session.grace_period", application.DefaultGracePeriod.String())

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	storePath := cfg.GetString("storage.path")
	enclave := filestore.NewStore(filepath.Join(storePath, "enclave"))
	sealedBackend := filestore.NewStore(filepath.Join(storePath, "sealed"))

	sealedStore, err := sealed.NewStore(sealedBackend, enclave)
	if err != nil {
		return nil, fmt.Errorf("wire sealed blob store: %w", err)
	}

	blobs, err := routed.NewStore(enclave, sealedStore, cfg.GetInt("storage.size_threshold"))
	if err != nil {
		return nil, fmt.Errorf("wire routed blob store: %w", err)
	}

	sessions := blobrepo.NewSessionRepository(blobs)
	profiles := blobrepo.NewProfileRepository(blobs)
	audit := blobrepo.NewAuditLogRepository(blobs)

	emergency := application.NewEmergencyService(
		sessions,
		profiles,
		audit,
		locationProvider(cfg),
		notifycmdline.NewNotifier(cfg.GetStringSlice("notify.command")),
		ports.SystemClock{},
		application.Options{
			LocationTimeout: cfg.GetDuration("location.timeout"),
			GracePeriod:     cfg.GetDuration("session.grace_period"),
		},
	)

	if err := emergency.Resume(context.Background()); err != nil {
		return nil, err
	}

	profileService := application.NewProfileService(profiles, audit, ports.SystemClock{})

	return &app{
		emergency:        emergency,
		profiles:         profileService,
		status:           application.NewStatusQuery(emergency, profiles, audit),
		audit:            audit,
		overviewRenderer: incidentadapter.Render,
		now:              time.Now,
	}, nil
}

// locationProvider prefers a statically configured coordinate over the
// platform command, which keeps the CLI usable on devices without the
// termux API tools.
func locationProvider(cfg *viper.Viper) ports.LocationProvider {
	lat := cfg.GetFloat64("location.static.latitude")
	lon := cfg.GetFloat64("location.static.longitude")
	if lat != 0 || lon != 0 {
		return locationstatic.NewProvider(domain.LocationFix{
			Latitude:  lat,
			Longitude: lon,
			Accuracy:  cfg.GetFloat64("location.static.accuracy"),
		})
	}

	return locationcmdline.NewProvider(cfg.GetStringSlice("location.command"))
}
