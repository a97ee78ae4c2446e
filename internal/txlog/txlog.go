// Package txlog keeps each owner's bounded, newest-first history of actions.
package txlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/logger"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
	"go.uber.org/zap"
)

// Capacity is the most entries kept per owner.
const Capacity = 200

var errDetailsMismatch = errors.New("details do not match transaction type")

// Recorder is the write side of the log, used by the action layers.
type Recorder interface {
	Append(ctx context.Context, ownerID string, typ models.TransactionType, details models.TransactionDetails)
}

var _ Recorder = (*Log)(nil)

type Log struct {
	history *repo.Collection[models.Transaction]
	ids     ids.Generator
	log     *logger.Logger
	now     func() time.Time
}

func New(store kv.Store, gen ids.Generator, log *logger.Logger) *Log {
	return &Log{
		history: repo.NewCollection[models.Transaction](store, repo.KindTransactions),
		ids:     gen,
		log:     log,
		now:     time.Now,
	}
}

// Append records a new entry at the head of the owner's history and drops
// whatever falls past Capacity. It is best effort: failures are logged and
// never returned, since the action being recorded has already happened.
func (l *Log) Append(ctx context.Context, ownerID string, typ models.TransactionType, details models.TransactionDetails) {
	if ownerID == "" {
		l.log.Warn("transaction without owner ignored", zap.String("type", string(typ)))
		return
	}
	if details != nil && details.Type() != typ {
		l.log.Error("transaction not logged",
			zap.String("owner_id", ownerID),
			zap.String("type", string(typ)),
			zap.Error(fmt.Errorf("%w: got %s", errDetailsMismatch, details.Type())))
		return
	}

	entry := models.Transaction{
		ID:        l.ids.NewID(),
		UserID:    ownerID,
		Type:      typ,
		Timestamp: models.FormatTimestamp(l.now()),
		Details:   details,
	}

	_, err := l.history.Update(ctx, ownerID, func(history []models.Transaction) ([]models.Transaction, error) {
		history = append([]models.Transaction{entry}, history...)
		if len(history) > Capacity {
			history = history[:Capacity]
		}
		return history, nil
	})
	if err != nil {
		l.log.Error("transaction not logged",
			zap.String("owner_id", ownerID),
			zap.String("type", string(typ)),
			zap.Error(err))
		return
	}

	l.log.Debug("transaction logged", zap.String("owner_id", ownerID), zap.String("type", string(typ)))
}

// Load returns the owner's history exactly as stored, newest first.
func (l *Log) Load(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	return l.history.Load(ctx, ownerID)
}
