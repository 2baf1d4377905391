package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/gateway"
	"bus-booking/pkg/database"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

// memStore is an in-memory ledger implementing every repository interface.
// Payment and refund histories are append-only with a shared seq counter,
// mirroring the database's insertion ordering.
type memStore struct {
	seq int64

	events       map[uuid.UUID]*entity.Event
	buses        map[uuid.UUID]*entity.Bus
	participants map[uuid.UUID]*entity.Participant
	payments     []*entity.PaymentRequest
	links        map[uuid.UUID][]uuid.UUID // payment request id -> participant ids
	refunds      []*entity.RefundRequest

	failParticipantAt int // 1-based index of the participant insert that fails
}

func newMemStore() *memStore {
	return &memStore{
		events:       make(map[uuid.UUID]*entity.Event),
		buses:        make(map[uuid.UUID]*entity.Bus),
		participants: make(map[uuid.UUID]*entity.Participant),
		links:        make(map[uuid.UUID][]uuid.UUID),
	}
}

// ---- EventRepository ----

func (m *memStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return m.events[id], nil
}

func (m *memStore) FindUpcoming(ctx context.Context) ([]*entity.Event, error) {
	var events []*entity.Event
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Departure.Before(events[j].Departure) })
	return events, nil
}

// ---- BusRepository ----

type memBusRepo struct{ store *memStore }

func (m memBusRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	return m.store.buses[id], nil
}

func (m memBusRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Bus, error) {
	var buses []*entity.Bus
	for _, b := range m.store.buses {
		if b.EventID == eventID {
			buses = append(buses, b)
		}
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i].Name < buses[j].Name })
	return buses, nil
}

func (m memBusRepo) LockCapacity(ctx context.Context, q database.Querier, id uuid.UUID) (int, error) {
	bus, ok := m.store.buses[id]
	if !ok {
		return 0, fmt.Errorf("bus %s not found", id.String())
	}
	return bus.Capacity, nil
}

// ---- ParticipantRepository ----

type memParticipantRepo struct{ store *memStore }

func (m memParticipantRepo) CreateBatch(ctx context.Context, q database.Querier, participants []*entity.Participant) error {
	// All-or-nothing, like the surrounding transaction guarantees.
	staged := make([]*entity.Participant, 0, len(participants))
	for i, p := range participants {
		if m.store.failParticipantAt > 0 && i+1 == m.store.failParticipantAt {
			return fmt.Errorf("create participant %s: simulated insert failure", p.ID.String())
		}
		staged = append(staged, p)
	}
	for _, p := range staged {
		m.store.participants[p.ID] = p
	}
	return nil
}

func (m memParticipantRepo) FindByCancelToken(ctx context.Context, token uuid.UUID) (*entity.Participant, error) {
	for _, p := range m.store.participants {
		if p.CancelToken == token {
			return p, nil
		}
	}
	return nil, nil
}

func (m memParticipantRepo) FindByPaymentRequestID(ctx context.Context, paymentRequestID uuid.UUID) ([]*entity.Participant, error) {
	var result []*entity.Participant
	for _, id := range m.store.links[paymentRequestID] {
		if p, ok := m.store.participants[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m memParticipantRepo) CountActiveByBus(ctx context.Context, q database.Querier, busID uuid.UUID) (int, error) {
	count := 0
	for _, ps := range m.store.statuses() {
		if ps.BusID == busID && ps.Active() {
			count++
		}
	}
	return count, nil
}

func (m memParticipantRepo) StatusesByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantStatus, error) {
	var result []entity.ParticipantStatus
	for _, ps := range m.store.statuses() {
		if m.store.participants[ps.ParticipantID].EventID == eventID {
			result = append(result, ps)
		}
	}
	return result, nil
}

// statuses derives the current payment/refund status per participant from
// the append-only histories, latest seq winning.
func (m *memStore) statuses() []entity.ParticipantStatus {
	var result []entity.ParticipantStatus
	for id, p := range m.participants {
		ps := entity.ParticipantStatus{ParticipantID: id, BusID: p.BusID}

		var bestSeq int64 = -1
		for _, pr := range m.payments {
			if !m.linked(pr.ID, id) {
				continue
			}
			latest := m.latestPayment(pr.SwishID)
			if latest.Seq > bestSeq {
				bestSeq = latest.Seq
				ps.PaymentStatus = latest.Status
			}
		}

		if rr := m.latestRefundFor(id); rr != nil {
			ps.RefundStatus = rr.Status
		}

		result = append(result, ps)
	}
	return result
}

func (m *memStore) linked(paymentRequestID, participantID uuid.UUID) bool {
	for _, id := range m.links[paymentRequestID] {
		if id == participantID {
			return true
		}
	}
	return false
}

func (m *memStore) latestPayment(swishID string) *entity.PaymentRequest {
	var latest *entity.PaymentRequest
	for _, pr := range m.payments {
		if pr.SwishID == swishID && (latest == nil || pr.Seq > latest.Seq) {
			latest = pr
		}
	}
	return latest
}

func (m *memStore) latestRefundFor(participantID uuid.UUID) *entity.RefundRequest {
	var latest *entity.RefundRequest
	for _, rr := range m.refunds {
		if rr.ParticipantID == participantID && (latest == nil || rr.Seq > latest.Seq) {
			latest = rr
		}
	}
	return latest
}

// ---- PaymentRequestRepository ----

type memPaymentRepo struct{ store *memStore }

func (m memPaymentRepo) Create(ctx context.Context, q database.Querier, pr *entity.PaymentRequest) error {
	m.store.seq++
	pr.Seq = m.store.seq
	m.store.payments = append(m.store.payments, pr)
	return nil
}

func (m memPaymentRepo) LinkParticipants(ctx context.Context, q database.Querier, paymentRequestID uuid.UUID, participantIDs []uuid.UUID) error {
	m.store.links[paymentRequestID] = append(m.store.links[paymentRequestID], participantIDs...)
	return nil
}

func (m memPaymentRepo) CopyLinks(ctx context.Context, q database.Querier, fromID, toID uuid.UUID) error {
	m.store.links[toID] = append(m.store.links[toID], m.store.links[fromID]...)
	return nil
}

func (m memPaymentRepo) FindLatestBySwishID(ctx context.Context, swishID string) (*entity.PaymentRequest, error) {
	return m.store.latestPayment(swishID), nil
}

func (m memPaymentRepo) FindLatestPaidByParticipant(ctx context.Context, participantID uuid.UUID) (*entity.PaymentRequest, error) {
	var best *entity.PaymentRequest
	for _, pr := range m.store.payments {
		if !m.store.linked(pr.ID, participantID) {
			continue
		}
		latest := m.store.latestPayment(pr.SwishID)
		if latest.Status != entity.PaymentStatusPaid {
			continue
		}
		if best == nil || latest.Seq > best.Seq {
			best = latest
		}
	}
	return best, nil
}

// ---- RefundRequestRepository ----

type memRefundRepo struct{ store *memStore }

func (m memRefundRepo) Create(ctx context.Context, q database.Querier, rr *entity.RefundRequest) error {
	m.store.seq++
	rr.Seq = m.store.seq
	m.store.refunds = append(m.store.refunds, rr)
	return nil
}

func (m memRefundRepo) FindLatestBySwishID(ctx context.Context, swishID string) (*entity.RefundRequest, error) {
	var latest *entity.RefundRequest
	for _, rr := range m.store.refunds {
		if rr.SwishID == swishID && (latest == nil || rr.Seq > latest.Seq) {
			latest = rr
		}
	}
	return latest, nil
}

func (m memRefundRepo) FindLatestByParticipant(ctx context.Context, participantID uuid.UUID) (*entity.RefundRequest, error) {
	return m.store.latestRefundFor(participantID), nil
}

// ---- collaborator fakes ----

type fakeGateway struct {
	payments     []gateway.PaymentParams
	refunds      []gateway.RefundParams
	paymentErr   error
	refundErr    error
	nextPayment  string
	nextRefund   string
	paymentCalls int
	refundCalls  int
}

func (g *fakeGateway) CreatePayment(ctx context.Context, params gateway.PaymentParams) (string, error) {
	g.paymentCalls++
	if g.paymentErr != nil {
		return "", g.paymentErr
	}
	g.payments = append(g.payments, params)
	if g.nextPayment == "" {
		return fmt.Sprintf("SWISH-PAY-%d", g.paymentCalls), nil
	}
	return g.nextPayment, nil
}

func (g *fakeGateway) CreateRefund(ctx context.Context, params gateway.RefundParams) (string, error) {
	g.refundCalls++
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.refunds = append(g.refunds, params)
	if g.nextRefund == "" {
		return fmt.Sprintf("SWISH-REF-%d", g.refundCalls), nil
	}
	return g.nextRefund, nil
}

type fakeSender struct {
	sent    []uuid.UUID
	sendErr error
}

func (s *fakeSender) SendConfirmation(ctx context.Context, participant *entity.Participant, event *entity.Event) error {
	s.sent = append(s.sent, participant.ID)
	return s.sendErr
}

// newTestRepo assembles a Repository over the memory store with a pgxmock
// pool backing Begin/Querier.
func newTestRepo(t *testing.T, store *memStore) (*repository.Repository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock init error: %v", err)
	}
	t.Cleanup(mock.Close)

	repo := &repository.Repository{
		Event:       store,
		Bus:         memBusRepo{store},
		Participant: memParticipantRepo{store},
		Payment:     memPaymentRepo{store},
		Refund:      memRefundRepo{store},
		DB:          mock,
	}
	return repo, mock
}

// seedPaidParty inserts n participants on the given bus with a single
// payment request whose latest status is PAID.
func seedPaidParty(t *testing.T, store *memStore, event *entity.Event, bus *entity.Bus, n int) []*entity.Participant {
	t.Helper()

	party := make([]*entity.Participant, n)
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		p := &entity.Participant{
			BaseSimple:  entity.BaseSimple{ID: uuid.New()},
			EventID:     event.ID,
			BusID:       bus.ID,
			Name:        fmt.Sprintf("Paid Rider %d", i+1),
			Email:       fmt.Sprintf("rider%d@example.test", i+1),
			Phone:       "0700000000",
			Consent:     true,
			PayAmount:   event.PriceDefault,
			CancelToken: uuid.New(),
		}
		store.participants[p.ID] = p
		party[i] = p
		ids[i] = p.ID
	}

	store.seq++
	pr := &entity.PaymentRequest{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Seq:        store.seq,
		SwishID:    fmt.Sprintf("SWISH-SEED-%s", pr8(ids[0])),
		PayerAlias: "46700000000",
		Amount:     n * event.PriceDefault,
		Status:     entity.PaymentStatusPaid,
	}
	store.payments = append(store.payments, pr)
	store.links[pr.ID] = ids
	return party
}

func pr8(id uuid.UUID) string {
	return id.String()[:8]
}

func testConfig() *utils.Config {
	return &utils.Config{
		Swish: utils.SwishConfig{
			PayeeAlias:      "1230000000",
			CallbackBaseURL: "https://booking.example.test",
			Currency:        "SEK",
		},
	}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
