package database

import (
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/customeros/statusstack/internal/logger"
)

type BadgerConfig struct {
	Dir      string
	InMemory bool
}

// badgerLogger routes badger's own logging through the app logger
type badgerLogger struct {
	logger.Logger
}

func (l badgerLogger) Warningf(template string, args ...interface{}) {
	l.Warnf(template, args...)
}

func OpenBadger(cfg *BadgerConfig, log logger.Logger) (*badger.DB, error) {
	if cfg == nil {
		return nil, errors.New("badger config is nil")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("badger directory config is empty")
		}
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create badger directory")
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	if log != nil {
		opts = opts.WithLogger(badgerLogger{log})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger")
	}
	return db, nil
}
