package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/fixwise/booking-service/pkg/dbmetrics"
	"github.com/fixwise/booking-service/pkg/metrics"
)

// MaxSerializableAttempts максимальное число попыток сериализуемой транзакции
// При конкурентных бронированиях PostgreSQL может отклонить транзакцию с ошибкой
// сериализации (40001) — такие транзакции безопасно повторять целиком
const MaxSerializableAttempts = 3

// retryBackoff пауза между повторами сериализуемой транзакции
const retryBackoff = 25 * time.Millisecond

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда сериализуемая транзакция
	// не смогла зафиксироваться после всех повторов из-за конкурентных конфликтов.
	// Отличается от бизнес-конфликта: вызывающий код может повторить операцию целиком
	ErrSerializationFailure = errors.New("txmanager: serialization failure after retries")
)

// TxBeginner интерфейс источника транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями поверх БД с метриками
type TransactionManager struct {
	db      TxBeginner
	metrics *metrics.Metrics
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithMetrics включает учёт повторов сериализуемых транзакций
func (m *TransactionManager) WithMetrics(mt *metrics.Metrics) *TransactionManager {
	m.metrics = mt
	return m
}

func (m *TransactionManager) observeRetry(outcome string) {
	if m.metrics != nil {
		m.metrics.TxSerializationRetries.WithLabelValues(outcome).Inc()
	}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При ошибке сериализации (конкурентная транзакция зафиксировала конфликтующие
// изменения) повторяет всю транзакцию до MaxSerializableAttempts раз.
// Бизнес-ошибки из fn не повторяются — они возвращаются сразу
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= MaxSerializableAttempts; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !IsSerializationFailure(err) {
			return err
		}

		lastErr = err
		if attempt < MaxSerializableAttempts {
			m.observeRetry("retried")
			select {
			case <-time.After(retryBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	m.observeRetry("exhausted")
	return fmt.Errorf("%w: %d attempts: %v", ErrSerializationFailure, MaxSerializableAttempts, lastErr)
}

// run выполняет fn в одной транзакции, гарантируя rollback при любой ошибке
func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure проверяет, является ли ошибка ошибкой сериализации PostgreSQL
// 40001 - serialization_failure, 40P01 - deadlock_detected
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
