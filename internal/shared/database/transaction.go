package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// WithTransaction executes the provided fn within a transaction while propagating context.
// The transaction DB instance passed to fn already includes the context, so repository methods
// can use it directly. Calling WithContext again is optional (and safe) if you want to keep the
// repository signature uniform for both transactional and non-transactional DB handles.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    // tx already has context - just use it directly
//	    if err := repo.Create(ctx, tx, entity); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return db.WithContext(ctx).Transaction(fn)
}

// WithActorTransaction is WithTransaction with audit attribution: before fn
// runs, the actor's wallet address is stamped onto the transaction via the
// transaction-local app.actor_address setting, which the audit triggers read
// when recording who caused a change.
//
// The actor is passed explicitly rather than read from ambient request state
// so the unit of work stays testable and the setting can never leak across
// pooled connections (set_config with is_local=true dies with the
// transaction). On dialects without set_config (sqlite in tests) the stamp is
// skipped and trigger attribution simply records null/system.
func WithActorTransaction(ctx context.Context, db *gorm.DB, actorAddress string, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if actorAddress != "" && supportsSetConfig(tx) {
			err := tx.Exec(
				"SELECT set_config('app.actor_address', ?, true)",
				strings.ToLower(actorAddress),
			).Error
			if err != nil {
				return err // rollback, never write unattributed
			}
		}
		return fn(tx)
	})
}

func supportsSetConfig(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
