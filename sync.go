package category_sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silinternational/category-sync/alert"
	"github.com/silinternational/category-sync/hubspot"
	"github.com/silinternational/category-sync/internal"
)

type Options struct {
	// ConfigFile is optional, see internal.LoadConfig
	ConfigFile string

	// CategoryID limits the sync to one category. Empty means a full sync.
	// Surrounding white space is ignored.
	CategoryID string

	// DryRun overrides Runtime.DryRunMode from the config file when true
	DryRun bool

	// LogEncoding is internal.EncodingConsole or internal.EncodingJSON
	LogEncoding string
}

// RunSync syncs the product category records into the product category
// enumeration property and reports the outcome. It never returns an error;
// failures are described by the returned Result.
func RunSync(ctx context.Context, opts Options) internal.Result {
	runID := uuid.NewString()
	opts.CategoryID = strings.TrimSpace(opts.CategoryID)

	config, configErr := internal.LoadConfig(opts.ConfigFile)

	verbosity := internal.DefaultVerbosity
	if configErr == nil {
		verbosity = config.Runtime.Verbosity
	}
	encoding := opts.LogEncoding
	if encoding == "" {
		encoding = internal.EncodingConsole
	}
	logger, err := internal.NewLogger(verbosity, encoding)
	if err != nil {
		logger = zap.NewExample()
		logger.Warn("unable to build logger, using the example logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", runID))

	if configErr != nil {
		logger.Error("Unable to load config", zap.Error(configErr))
		result := internal.ErrorResult(opts.CategoryID, fmt.Errorf("unable to load config: %w", configErr))
		result.RunID = runID
		return result
	}

	if opts.DryRun {
		config.Runtime.DryRunMode = true
	}

	mode := "all categories"
	if opts.CategoryID != "" {
		mode = "category_id " + opts.CategoryID
	}
	logger.Info("Product category sync started",
		zap.String("mode", mode),
		zap.String("category_object", config.Objects.CategoryObjectName),
		zap.String("product_object", config.Objects.ProductObjectType),
		zap.String("property", config.Objects.EnumerationProperty),
		zap.Bool("dry_run", config.Runtime.DryRunMode))

	crm := hubspot.NewHubSpot(config.HubSpot, logger)

	result, err := internal.RunCategorySync(ctx, logger, crm, config, opts.CategoryID)
	result.RunID = runID
	if err != nil {
		handleSyncError(ctx, logger, config.Alert, runID, err)
	}

	logger.Info("Product category sync completed",
		zap.String("result", result.Result),
		zap.String("action", string(result.Action)))

	return result
}

func handleSyncError(ctx context.Context, logger *zap.Logger, alertConfig alert.Config, runID string, err error) {
	var syncError internal.SyncError
	if isSyncError := errors.As(err, &syncError); isSyncError && !syncError.SendAlert {
		return
	}

	msg := fmt.Sprintf("Product category sync %s failed:\n%s", runID, err)
	if alertErr := alert.SendEmail(ctx, alertConfig, msg); alertErr != nil {
		logger.Error("unable to send alert", zap.Error(alertErr))
	}
}
