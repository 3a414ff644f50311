package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/employee-roster-api/internal/domain"
	"github.com/employee-roster-api/internal/query"
	"github.com/employee-roster-api/internal/repository"
	"github.com/employee-roster-api/internal/roster"
	"github.com/employee-roster-api/internal/seed"
)

// DefaultStorageKey - ключ, под которым хранится снимок списка
const DefaultStorageKey = "employees"

// Change описывает применённое изменение и состояние списка после него
type Change struct {
	Intent    roster.Intent
	Employees []domain.Employee
}

// Listener вызывается синхронно после каждого успешного изменения,
// пока удерживается блокировка записи. Слушатель может читать сервис.
// Вызов Add, Edit или Delete из слушателя приводит к взаимной блокировке:
// изменение, порождённое уведомлением, нужно выполнять в отдельной горутине,
// оно начнётся после сохранения текущего снимка.
type Listener func(Change)

// EmployeeService определяет интерфейс хранилища сотрудников
type EmployeeService interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	Edit(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(id string) (domain.Employee, error)
	GetAll() []domain.Employee
	Query(params query.Params) (query.Result, error)
	Subscribe(l Listener) (unsubscribe func())
}

// Options - настройки хранилища
type Options struct {
	StorageKey string
	SeedCount  int
}

type subscription struct {
	id       uint64
	listener Listener
}

type employeeService struct {
	repo   repository.SnapshotRepository
	engine *query.Engine
	logger *slog.Logger
	opts   Options

	// writeMu упорядочивает изменения вместе с уведомлением и сохранением,
	// mu защищает сам срез. Срез никогда не меняется на месте.
	writeMu sync.Mutex
	mu      sync.RWMutex
	records []domain.Employee

	subsMu sync.Mutex
	subs   []subscription
	nextID uint64
}

// NewEmployeeService создаёт новый экземпляр сервиса с пустым списком.
// Для восстановления сохранённого состояния нужно вызвать Load.
func NewEmployeeService(
	repo repository.SnapshotRepository,
	engine *query.Engine,
	logger *slog.Logger,
	opts Options,
) EmployeeService {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	return &employeeService{
		repo:    repo,
		engine:  engine,
		logger:  logger,
		opts:    opts,
		records: []domain.Employee{},
	}
}

func (s *employeeService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.repo.Load(ctx, s.opts.StorageKey)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		records := seed.Employees(s.opts.SeedCount)
		s.replace(records)
		s.logger.Info("employee list seeded", slog.Int("count", len(records)))
		return s.persist(ctx, records)

	case err != nil:
		return fmt.Errorf("load snapshot: %w", err)
	}

	records, err := decodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("load snapshot %q: %w", s.opts.StorageKey, err)
	}

	s.replace(records)
	s.logger.Info("employee list restored", slog.Int("count", len(records)))
	return nil
}

func (s *employeeService) Add(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	if err := domain.Validate(emp); err != nil {
		return domain.Employee{}, err
	}
	if err := s.apply(ctx, roster.Add{Employee: emp}); err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return emp, err
		}
		return domain.Employee{}, err
	}
	return emp, nil
}

func (s *employeeService) Edit(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	if err := domain.Validate(emp); err != nil {
		return domain.Employee{}, err
	}
	if err := s.apply(ctx, roster.Edit{Employee: emp}); err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return emp, err
		}
		return domain.Employee{}, err
	}
	return emp, nil
}

// Delete удаляет запись. Отсутствующий ID не считается ошибкой:
// возвращается false, слушатели не вызываются, снимок не перезаписывается.
func (s *employeeService) Delete(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	changed, err := s.applyLocked(ctx, roster.Delete{ID: id})
	return changed, err
}

func (s *employeeService) Get(id string) (domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := roster.IndexOf(s.records, id)
	if idx < 0 {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return s.records[idx], nil
}

func (s *employeeService) GetAll() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

func (s *employeeService) Query(params query.Params) (query.Result, error) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	return s.engine.Run(records, params)
}

func (s *employeeService) Subscribe(l Listener) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

func (s *employeeService) apply(ctx context.Context, in roster.Intent) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.applyLocked(ctx, in)
	return err
}

// applyLocked вызывается под writeMu
func (s *employeeService) applyLocked(ctx context.Context, in roster.Intent) (bool, error) {
	next, changed, err := roster.Apply(s.records, in)
	if err != nil || !changed {
		return false, err
	}

	s.replace(next)
	s.notify(Change{Intent: in, Employees: slices.Clone(next)})

	return true, s.persist(ctx, next)
}

func (s *employeeService) replace(records []domain.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

func (s *employeeService) notify(change Change) {
	s.subsMu.Lock()
	subs := slices.Clone(s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.listener(change)
	}
}

// persist сохраняет снимок. Изменение в памяти при ошибке остаётся в силе.
func (s *employeeService) persist(ctx context.Context, records []domain.Employee) error {
	if records == nil {
		records = []domain.Employee{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return &domain.PersistenceError{Err: fmt.Errorf("marshal snapshot: %w", err)}
	}

	if err := s.repo.Save(ctx, s.opts.StorageKey, data); err != nil {
		s.logger.Error("failed to persist employee snapshot",
			slog.String("key", s.opts.StorageKey),
			slog.Int("count", len(records)),
			slog.Any("error", err),
		)
		return &domain.PersistenceError{Err: err}
	}
	return nil
}

func decodeSnapshot(data []byte) ([]domain.Employee, error) {
	var records []domain.Employee
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if records == nil {
		records = []domain.Employee{}
	}

	seen := make(map[string]struct{}, len(records))
	for i, emp := range records {
		if err := domain.Validate(emp); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, ok := seen[emp.ID]; ok {
			return nil, fmt.Errorf("record %d %q: %w", i, emp.ID, domain.ErrDuplicateID)
		}
		seen[emp.ID] = struct{}{}
	}
	return records, nil
}
