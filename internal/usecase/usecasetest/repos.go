package usecasetest

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/booking"
	cancellationRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/cancellation"
	groupRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/group"
	policyRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/policy"
)

// BookingRepo фейк booking.Repository
type BookingRepo struct{ S *Store }

func (r *BookingRepo) LockTrainer(_ context.Context, trainerID int64) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("LockTrainer") {
		return errStorage(bookingRepo.ErrExecQuery, "LockTrainer")
	}
	r.S.LockedTrainers = append(r.S.LockedTrainers, trainerID)
	return nil
}

func (r *BookingRepo) Create(_ context.Context, b *domain.SessionBooking) (*domain.SessionBooking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("BookingRepo.Create") {
		return nil, errStorage(bookingRepo.ErrExecQuery, "Create")
	}
	b.ID = r.S.id()
	cp := *b
	r.S.bookings[b.ID] = &cp
	return b, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id int64) (*domain.SessionBooking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	b, ok := r.S.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SessionBooking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.SessionBooking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.SessionBooking, 0)
	for _, b := range r.S.bookings {
		if b.ClientID != clientID || (status != nil && b.Status != *status) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStart.After(out[j].ScheduledStart) })
	return out, nil
}

func (r *BookingRepo) GetByTrainerWithFilter(_ context.Context, f domain.TrainerBookingsFilter) ([]*domain.SessionBooking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.SessionBooking, 0)
	for _, b := range r.S.bookings {
		if b.TrainerID != f.TrainerID {
			continue
		}
		if f.From != nil && b.ScheduledStart.Before(*f.From) {
			continue
		}
		if f.To != nil && !b.ScheduledStart.Before(*f.To) {
			continue
		}
		if f.Status != nil {
			if b.Status != *f.Status {
				continue
			}
		} else if !f.IncludeInactive && !b.Status.BlocksCalendar() {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sortByStart(out)
	return out, nil
}

func (r *BookingRepo) GetActiveInRange(_ context.Context, trainerID int64, from, to time.Time) ([]*domain.SessionBooking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("GetActiveInRange") {
		return nil, errStorage(bookingRepo.ErrExecQuery, "GetActiveInRange")
	}
	out := make([]*domain.SessionBooking, 0)
	for _, b := range r.S.bookings {
		if b.TrainerID != trainerID || !b.Status.BlocksCalendar() {
			continue
		}
		if b.ScheduledStart.Before(to) && b.ScheduledEnd.After(from) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *BookingRepo) Update(_ context.Context, b *domain.SessionBooking) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("BookingRepo.Update") {
		return errStorage(bookingRepo.ErrExecQuery, "Update")
	}
	if _, ok := r.S.bookings[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	cp := *b
	r.S.bookings[b.ID] = &cp
	return nil
}

func (r *BookingRepo) CountReschedules(_ context.Context, bookingID int64) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	depth := 0
	cur, ok := r.S.bookings[bookingID]
	for ok && cur.OriginalSessionID != nil {
		cur, ok = r.S.bookings[*cur.OriginalSessionID]
		if ok {
			depth++
		}
	}
	children := 0
	for _, b := range r.S.bookings {
		if b.OriginalSessionID != nil && *b.OriginalSessionID == bookingID {
			children++
		}
	}
	return depth + children, nil
}

func (r *BookingRepo) GetRescheduleChain(_ context.Context, bookingID int64) ([]*domain.SessionBooking, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	chain := make([]*domain.SessionBooking, 0)
	cur, ok := r.S.bookings[bookingID]
	for ok {
		cp := *cur
		chain = append([]*domain.SessionBooking{&cp}, chain...)
		if cur.OriginalSessionID == nil {
			break
		}
		cur, ok = r.S.bookings[*cur.OriginalSessionID]
	}
	if len(chain) == 0 {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return chain, nil
}

func sortByStart(bookings []*domain.SessionBooking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ScheduledStart.Before(bookings[j].ScheduledStart)
	})
}

// AvailabilityRepo фейк availability.Repository
type AvailabilityRepo struct{ S *Store }

func (r *AvailabilityRepo) Create(_ context.Context, a *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	a.ID = r.S.id()
	r.S.availability = append(r.S.availability, a)
	return a, nil
}

func (r *AvailabilityRepo) ListByTrainer(_ context.Context, trainerID int64) ([]*domain.AvailabilitySlot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.AvailabilitySlot, 0)
	for _, a := range r.S.availability {
		if a.TrainerID == trainerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AvailabilityRepo) ListForDate(_ context.Context, trainerID int64, date time.Time) ([]*domain.AvailabilitySlot, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("ListForDate") {
		return nil, errStorage(availabilityRepo.ErrExecQuery, "ListForDate")
	}
	out := make([]*domain.AvailabilitySlot, 0)
	for _, a := range r.S.availability {
		if a.TrainerID != trainerID {
			continue
		}
		if a.SpecificDate != nil {
			if domain.SameDate(*a.SpecificDate, date) {
				out = append(out, a)
			}
			continue
		}
		if a.DayOfWeek == domain.DayOfWeek(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AvailabilityRepo) CountByTrainer(ctx context.Context, trainerID int64) (int, error) {
	rows, _ := r.ListByTrainer(ctx, trainerID)
	return len(rows), nil
}

func (r *AvailabilityRepo) Delete(_ context.Context, trainerID, id int64) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for i, a := range r.S.availability {
		if a.ID == id && a.TrainerID == trainerID {
			r.S.availability = append(r.S.availability[:i], r.S.availability[i+1:]...)
			return nil
		}
	}
	return availabilityRepo.ErrAvailabilityNotFound
}

// PolicyRepo фейк policy.Repository
type PolicyRepo struct{ S *Store }

func (r *PolicyRepo) GetByTrainerID(_ context.Context, trainerID int64) (*domain.CancellationPolicy, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("GetByTrainerID") {
		return nil, errStorage(policyRepo.ErrExecQuery, "GetByTrainerID")
	}
	p, ok := r.S.policies[trainerID]
	if !ok {
		return nil, policyRepo.ErrPolicyNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *PolicyRepo) Upsert(_ context.Context, p *domain.CancellationPolicy) (*domain.CancellationPolicy, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *p
	r.S.policies[p.TrainerID] = &cp
	return p, nil
}

// CancellationRepo фейк cancellation.Repository
type CancellationRepo struct{ S *Store }

func (r *CancellationRepo) Create(_ context.Context, c *domain.SessionCancellation) (*domain.SessionCancellation, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("CancellationRepo.Create") {
		return nil, errStorage(cancellationRepo.ErrExecQuery, "Create")
	}
	c.ID = r.S.id()
	cp := *c
	r.S.cancellations = append(r.S.cancellations, &cp)
	return c, nil
}

func (r *CancellationRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.SessionCancellation, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for i := len(r.S.cancellations) - 1; i >= 0; i-- {
		if r.S.cancellations[i].BookingID == bookingID {
			cp := *r.S.cancellations[i]
			return &cp, nil
		}
	}
	return nil, cancellationRepo.ErrCancellationNotFound
}

func (r *CancellationRepo) CountByClient(_ context.Context, clientID int64, by domain.ActorRole) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	count := 0
	for _, c := range r.S.cancellations {
		if c.ClientID == clientID && c.CancelledBy == by {
			count++
		}
	}
	return count, nil
}

// GroupRepo фейк group.Repository
type GroupRepo struct{ S *Store }

func (r *GroupRepo) CreateSession(_ context.Context, g *domain.GroupSession) (*domain.GroupSession, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	g.ID = r.S.id()
	cp := *g
	r.S.sessions[g.ID] = &cp
	return g, nil
}

func (r *GroupRepo) GetSessionByID(_ context.Context, id int64) (*domain.GroupSession, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	g, ok := r.S.sessions[id]
	if !ok {
		return nil, groupRepo.ErrSessionNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *GroupRepo) GetSessionForUpdate(ctx context.Context, id int64) (*domain.GroupSession, error) {
	return r.GetSessionByID(ctx, id)
}

func (r *GroupRepo) GetActiveParticipant(_ context.Context, sessionID, clientID int64) (*domain.GroupSessionParticipant, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, p := range r.S.participants {
		if p.GroupSessionID == sessionID && p.ClientID == clientID && p.BookingStatus.IsActive() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, groupRepo.ErrParticipantNotFound
}

func (r *GroupRepo) CreateParticipant(_ context.Context, p *domain.GroupSessionParticipant) (*domain.GroupSessionParticipant, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("CreateParticipant") {
		return nil, errStorage(groupRepo.ErrExecQuery, "CreateParticipant")
	}
	for _, existing := range r.S.participants {
		if existing.GroupSessionID == p.GroupSessionID && existing.ClientID == p.ClientID && existing.BookingStatus.IsActive() {
			return nil, groupRepo.ErrDuplicateParticipant
		}
	}
	p.ID = r.S.id()
	cp := *p
	r.S.participants = append(r.S.participants, &cp)
	return p, nil
}

func (r *GroupRepo) UpdateParticipant(_ context.Context, p *domain.GroupSessionParticipant) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for i, existing := range r.S.participants {
		if existing.ID == p.ID {
			cp := *p
			r.S.participants[i] = &cp
			return nil
		}
	}
	return groupRepo.ErrParticipantNotFound
}

func (r *GroupRepo) NextWaitlistPosition(_ context.Context, sessionID int64) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	highest := 0
	for _, p := range r.S.participants {
		if p.GroupSessionID == sessionID && p.BookingStatus == domain.ParticipantWaitlisted &&
			p.WaitlistPosition != nil && *p.WaitlistPosition > highest {
			highest = *p.WaitlistPosition
		}
	}
	return highest + 1, nil
}

func (r *GroupRepo) NextWaitlisted(_ context.Context, sessionID int64) (*domain.GroupSessionParticipant, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var next *domain.GroupSessionParticipant
	for _, p := range r.S.participants {
		if p.GroupSessionID != sessionID || p.BookingStatus != domain.ParticipantWaitlisted || p.WaitlistPosition == nil {
			continue
		}
		if next == nil || *p.WaitlistPosition < *next.WaitlistPosition {
			next = p
		}
	}
	if next == nil {
		return nil, groupRepo.ErrParticipantNotFound
	}
	cp := *next
	return &cp, nil
}

func (r *GroupRepo) SyncCounters(_ context.Context, sessionID int64) (domain.GroupCounters, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.fail("SyncCounters") {
		return domain.GroupCounters{}, errStorage(groupRepo.ErrExecQuery, "SyncCounters")
	}
	g, ok := r.S.sessions[sessionID]
	if !ok {
		return domain.GroupCounters{}, groupRepo.ErrSessionNotFound
	}
	var counters domain.GroupCounters
	for _, p := range r.S.participants {
		if p.GroupSessionID == sessionID && p.BookingStatus == domain.ParticipantConfirmed {
			counters.Confirmed++
			counters.TotalRevenue += p.AmountPaid
		}
	}
	g.CurrentParticipants = counters.Confirmed
	g.TotalRevenue = counters.TotalRevenue
	return counters, nil
}

func (r *GroupRepo) ListParticipants(_ context.Context, sessionID int64, includeInactive bool) ([]*domain.GroupSessionParticipant, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*domain.GroupSessionParticipant, 0)
	for _, p := range r.S.participants {
		if p.GroupSessionID != sessionID || (!includeInactive && !p.BookingStatus.IsActive()) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
