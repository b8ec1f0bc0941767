package memory

import (
	"context"
	"sync"
)

// Store хранилище в памяти с теми же контрактами, что и postgres-репозитории
// Транзакция держит эксклюзивную блокировку всего хранилища до завершения,
// поэтому конкурирующие транзакции выполняются строго последовательно.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

type txKey struct{}

// New создает пустое хранилище
func New() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

func (s *Store) read(ctx context.Context, fn func(d *dataset)) {
	if s.inTx(ctx) {
		fn(s.data)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(ctx context.Context, fn func(d *dataset)) {
	if s.inTx(ctx) {
		fn(s.data)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

// TxManager менеджер транзакций для хранилища в памяти
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn в транзакции; при ошибке или панике состояние откатывается
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable то же, что Do: транзакции хранилища и так сериализованы
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly то же, что Do
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := m.store

	// Вложенный вызов присоединяется к внешней транзакции
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}
