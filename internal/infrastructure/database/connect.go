package database

import (
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

// ConnectWithRetries dials the master (and optional slaves) until a ping
// succeeds or the attempts are exhausted.
func ConnectWithRetries(masterDSN string, slaves []string, opts *dbpg.Options, retries, delaySec int) (*dbpg.DB, error) {
	if retries <= 0 {
		retries = 1
	}
	if delaySec <= 0 {
		delaySec = 1
	}

	var db *dbpg.DB
	var err error

	for attempt := 1; attempt <= retries; attempt++ {
		zlog.Logger.Info().Int("attempt", attempt).Int("retries", retries).Msg("connecting to database")

		db, err = dbpg.New(masterDSN, slaves, opts)
		switch {
		case err != nil:
			db = nil
		case db.Master == nil:
			err = fmt.Errorf("master connection is nil")
			db = nil
		default:
			if pingErr := db.Master.Ping(); pingErr != nil {
				err = pingErr
				closeAll(db)
				db = nil
			}
		}

		if db != nil {
			zlog.Logger.Info().Msg("database connection established")
			return db, nil
		}

		zlog.Logger.Warn().Err(err).Int("attempt", attempt).Msg("database connection failed")
		if attempt < retries {
			time.Sleep(time.Duration(delaySec) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d retries: %w", retries, err)
}

func closeAll(db *dbpg.DB) {
	if db.Master != nil {
		db.Master.Close()
	}
	for _, s := range db.Slaves {
		if s != nil {
			s.Close()
		}
	}
}
