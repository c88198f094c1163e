// Package usecasetest содержит in-memory реализации хранилищ и коллабораторов для тестов use case-ов
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Store общее состояние всех фейковых репозиториев
type Store struct {
	mu sync.Mutex

	nextID        int64
	bookings      map[int64]*domain.SessionBooking
	availability  []*domain.AvailabilitySlot
	policies      map[int64]*domain.CancellationPolicy
	cancellations []*domain.SessionCancellation
	sessions      map[int64]*domain.GroupSession
	participants  []*domain.GroupSessionParticipant

	// LockedTrainers порядок вызовов LockTrainer
	LockedTrainers []int64
	// FailOn имя метода, который вернёт ошибку хранилища
	FailOn string
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		nextID:   100,
		bookings: make(map[int64]*domain.SessionBooking),
		policies: make(map[int64]*domain.CancellationPolicy),
		sessions: make(map[int64]*domain.GroupSession),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddBooking кладёт сессию как есть (ID=0 - назначить)
func (s *Store) AddBooking(b *domain.SessionBooking) *domain.SessionBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return b
}

// Booking текущее состояние сессии
func (s *Store) Booking(id int64) *domain.SessionBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

// Bookings все сессии, упорядоченные по ID
func (s *Store) Bookings() []*domain.SessionBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.SessionBooking, 0, len(s.bookings))
	for _, b := range s.bookings {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddAvailability кладёт строку доступности
func (s *Store) AddAvailability(a *domain.AvailabilitySlot) *domain.AvailabilitySlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.id()
	}
	s.availability = append(s.availability, a)
	return a
}

// SetPolicy сохраняет политику тренера
func (s *Store) SetPolicy(p *domain.CancellationPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.policies[p.TrainerID] = &cp
}

// AddCancellation кладёт запись аудита
func (s *Store) AddCancellation(c *domain.SessionCancellation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.cancellations = append(s.cancellations, c)
}

// Cancellations записи аудита
func (s *Store) Cancellations() []*domain.SessionCancellation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.SessionCancellation, len(s.cancellations))
	copy(out, s.cancellations)
	return out
}

// AddSession кладёт групповую сессию
func (s *Store) AddSession(g *domain.GroupSession) *domain.GroupSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == 0 {
		g.ID = s.id()
	}
	cp := *g
	s.sessions[g.ID] = &cp
	return g
}

// Session текущее состояние групповой сессии
func (s *Store) Session(id int64) *domain.GroupSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.sessions[id]
	if !ok {
		return nil
	}
	cp := *g
	return &cp
}

// AddParticipant кладёт участника как есть
func (s *Store) AddParticipant(p *domain.GroupSessionParticipant) *domain.GroupSessionParticipant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	cp := *p
	s.participants = append(s.participants, &cp)
	return p
}

// Participants все участники сессии в порядке добавления
func (s *Store) Participants(sessionID int64) []*domain.GroupSessionParticipant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.GroupSessionParticipant, 0)
	for _, p := range s.participants {
		if p.GroupSessionID == sessionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

type snapshot struct {
	nextID        int64
	bookings      map[int64]domain.SessionBooking
	policies      map[int64]domain.CancellationPolicy
	cancellations []*domain.SessionCancellation
	sessions      map[int64]domain.GroupSession
	participants  []domain.GroupSessionParticipant
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		nextID:        s.nextID,
		bookings:      make(map[int64]domain.SessionBooking, len(s.bookings)),
		policies:      make(map[int64]domain.CancellationPolicy, len(s.policies)),
		cancellations: append([]*domain.SessionCancellation(nil), s.cancellations...),
		sessions:      make(map[int64]domain.GroupSession, len(s.sessions)),
	}
	for id, b := range s.bookings {
		snap.bookings[id] = *b
	}
	for id, p := range s.policies {
		snap.policies[id] = *p
	}
	for id, g := range s.sessions {
		snap.sessions[id] = *g
	}
	for _, p := range s.participants {
		snap.participants = append(snap.participants, *p)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID = snap.nextID
	s.bookings = make(map[int64]*domain.SessionBooking, len(snap.bookings))
	for id, b := range snap.bookings {
		b := b
		s.bookings[id] = &b
	}
	s.policies = make(map[int64]*domain.CancellationPolicy, len(snap.policies))
	for id, p := range snap.policies {
		p := p
		s.policies[id] = &p
	}
	s.cancellations = snap.cancellations
	s.sessions = make(map[int64]*domain.GroupSession, len(snap.sessions))
	for id, g := range snap.sessions {
		g := g
		s.sessions[id] = &g
	}
	s.participants = s.participants[:0]
	for _, p := range snap.participants {
		p := p
		s.participants = append(s.participants, &p)
	}
}

func (s *Store) fail(method string) bool {
	return s.FailOn != "" && s.FailOn == method
}

// TxManager транзакции поверх Store: при ошибке состояние откатывается
// Транзакции верхнего уровня выполняются строго по очереди, вложенные переиспользуют внешнюю
type TxManager struct {
	Store *Store
	Calls int

	mu sync.Mutex
}

type txKey struct{}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	snap := m.Store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.Store.restore(snap)
		return err
	}
	return nil
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time {
	return c.T
}

// Users справочник пользователей: все существуют, кроме Missing
type Users struct {
	Missing map[int64]bool
	Err     error
}

func (u *Users) Exists(_ context.Context, userID int64) (bool, error) {
	if u.Err != nil {
		return false, u.Err
	}
	return !u.Missing[userID], nil
}

// Sent отправленное уведомление
type Sent struct {
	UserID   int64
	Category string
	Vars     map[string]string
}

// Notifier запоминает уведомления
type Notifier struct {
	mu   sync.Mutex
	Sent []Sent
}

func (n *Notifier) Notify(_ context.Context, userID int64, category string, vars map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, Sent{UserID: userID, Category: category, Vars: vars})
}

// Metrics запоминает бизнес-события в виде "event/outcome"
type Metrics struct {
	mu     sync.Mutex
	Events []string
}

func (m *Metrics) IncBusinessEvent(event, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event+"/"+outcome)
}

// errStorage ошибка хранилища, обёрнутая как в реальных репозиториях
func errStorage(kind error, method string) error {
	return &storageError{kind: kind, method: method}
}

type storageError struct {
	kind   error
	method string
}

func (e *storageError) Error() string {
	return e.kind.Error() + ": " + e.method + " - injected failure"
}

func (e *storageError) Unwrap() error {
	return e.kind
}
