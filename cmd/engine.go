package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/eowork/pmoprototype-sub005/pkg/access"
	"github.com/eowork/pmoprototype-sub005/pkg/assignment"
	"github.com/eowork/pmoprototype-sub005/pkg/department"
	"github.com/eowork/pmoprototype-sub005/pkg/override"
	"github.com/eowork/pmoprototype-sub005/pkg/util"
)

// engine bundles the stores and the resolver over one opened data file
type engine struct {
	db          *bbolt.DB
	logger      *zap.Logger
	assignments *assignment.Manager
	overrides   *override.Manager
	resolver    *access.Resolver
}

// openEngine opens the configured data file and hydrates both stores
func openEngine(ctx context.Context) (*engine, error) {
	logger, err := util.DefaultLogger(viper.GetBool("debug"), viper.GetString("logdir"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	db, err := bbolt.Open(viper.GetString("data"), 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open data file %s", viper.GetString("data"))
	}

	assignmentStore, err := assignment.NewBoltStore(db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize assignment store")
	}

	assignments, err := assignment.NewManager(ctx, assignmentStore)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize assignment ledger")
	}

	if err = assignments.SetLogger(logger); err != nil {
		return nil, err
	}

	overrideStore, err := override.NewBoltStore(db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize override store")
	}

	overrides, err := override.NewManager(ctx, overrideStore)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize override collection")
	}

	if err = overrides.SetLogger(logger); err != nil {
		return nil, err
	}

	resolver, err := access.NewResolver(department.Default(), assignments, overrides)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize resolver")
	}

	return &engine{
		db:          db,
		logger:      logger,
		assignments: assignments,
		overrides:   overrides,
		resolver:    resolver,
	}, nil
}

// Close releases the data file
func (e *engine) Close() error {
	_ = e.logger.Sync()
	return e.db.Close()
}
