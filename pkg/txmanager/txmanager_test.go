package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixwise/booking-service/pkg/dbmetrics"
	"github.com/fixwise/booking-service/pkg/metrics"
)

var errSerialization = &pq.Error{Code: "40001"}

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	begins int
	txs    []*fakeTx
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errSerialization
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, beginner.begins)
	assert.True(t, beginner.txs[2].committed)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errSerialization
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, MaxSerializableAttempts, calls)
}

func TestDoSerializable_RetriesRecordedInMetrics(t *testing.T) {
	m := metrics.New("txmanager-test")
	manager := NewTransactionManager(&fakeBeginner{}).WithMetrics(m)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errSerialization
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TxSerializationRetries.WithLabelValues("retried")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TxSerializationRetries.WithLabelValues("exhausted")))

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errSerialization
	})
	require.ErrorIs(t, err, ErrSerializationFailure)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.TxSerializationRetries.WithLabelValues("retried")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TxSerializationRetries.WithLabelValues("exhausted")))
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	errBusiness := errors.New("slot conflict")
	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, calls, "бизнес-ошибка возвращается без повтора")
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

// Ошибка сериализации может прийти и на Commit, а не только из fn
func TestDoSerializable_CommitSerializationFailureRetried(t *testing.T) {
	beginner := &fakeBeginner{}
	failFirst := true
	manager := NewTransactionManager(&commitFailBeginner{inner: beginner, failFirst: &failFirst})

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, beginner.begins)
	assert.True(t, beginner.txs[1].committed)
}

type commitFailBeginner struct {
	inner     *fakeBeginner
	failFirst *bool
}

func (b *commitFailBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.inner.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	if *b.failFirst {
		*b.failFirst = false
		tx.(*fakeTx).commitErr = errSerialization
	}
	return tx, nil
}

func TestDo_ExecutorPlacedInContext(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.txs[0].committed)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("plain error")))
	assert.False(t, IsSerializationFailure(nil))
}
