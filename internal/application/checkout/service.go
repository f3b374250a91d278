package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
)

// DefaultLocationTimeout bounds how long automatic geolocation may take
// before the composer falls back to the manual-address path.
const DefaultLocationTimeout = 8 * time.Second

// OrdersListener is notified after a checkout submission places orders.
type OrdersListener func(ownerID string)

// Summary is the composer's view of the current checkout: grouped lines
// with resolved fees and the running totals. GrandTotal counts only known
// fees; groups with an unknown fee are labeled as such by the caller.
type Summary struct {
	Step          checkout.Step            `json:"step"`
	Groups        []checkout.ShopGroup     `json:"groups"`
	GoodsTotal    decimal.Decimal          `json:"goods_total"`
	DeliveryTotal decimal.Decimal          `json:"delivery_total"`
	GrandTotal    decimal.Decimal          `json:"grand_total"`
	Location      checkout.DeliveryLocation `json:"location"`
	LastError     string                   `json:"last_error,omitempty"`
}

// Service is the checkout composer: it reads the cart, groups lines by
// shop, resolves fees, collects a delivery location and submits one order
// per shop group sequentially. One session exists per owner at a time.
type Service struct {
	carts           CartAccess
	fees            FeeResolver
	orders          OrderPlacer
	location        LocationProvider
	locationTimeout time.Duration
	logger          *zap.Logger

	mu        sync.Mutex
	sessions  map[string]*sessionState
	listeners map[int]OrdersListener
	nextSub   int
}

// sessionState pairs a session with its own mutex. Service.mu only guards
// the sessions map; every read or write of the session itself happens under
// this mutex so concurrent requests for the same owner serialize on the
// state machine instead of racing past its transition guards.
type sessionState struct {
	mu      sync.Mutex
	session *checkout.Session
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithLocationTimeout overrides the bound on automatic geolocation.
func WithLocationTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.locationTimeout = d
		}
	}
}

// NewService creates a checkout composer.
func NewService(carts CartAccess, fees FeeResolver, orders OrderPlacer, location LocationProvider, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		carts:           carts,
		fees:            fees,
		orders:          orders,
		location:        location,
		locationTimeout: DefaultLocationTimeout,
		logger:          logger,
		sessions:        make(map[string]*sessionState),
		listeners:       make(map[int]OrdersListener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnOrdersChanged registers a listener fired after orders are placed and
// returns an unsubscribe function.
func (s *Service) OnOrdersChanged(fn OrdersListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Open starts (or resumes) a checkout session for the owner. Checkout is
// unavailable when the cart is empty.
func (s *Service) Open(ctx context.Context, ownerID string) (*Summary, error) {
	current, err := s.carts.Items(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	s.mu.Lock()
	st, ok := s.sessions[ownerID]
	if ok {
		st.mu.Lock()
		if st.session.Step == checkout.StepSuccess {
			ok = false
		}
		st.mu.Unlock()
	}
	if !ok {
		session, err := checkout.NewSession(ownerID)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		st = &sessionState{session: session}
		s.sessions[ownerID] = st
	}
	s.mu.Unlock()

	return s.summarize(ctx, ownerID, st)
}

// Close destroys the owner's checkout session, e.g. when the checkout
// surface is dismissed. The cart is untouched.
func (s *Service) Close(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, ownerID)
}

// ConfirmPayOnDelivery moves the session into location collection. If no
// location has been captured yet, device geolocation is attempted
// automatically under a bounded timeout; failure is recoverable and leaves
// the manual-address field as the required fallback.
func (s *Service) ConfirmPayOnDelivery(ctx context.Context, ownerID string) (*Summary, error) {
	st, err := s.session(ownerID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	if err := st.session.BeginLocationCapture(); err != nil {
		st.mu.Unlock()
		return nil, err
	}

	if st.session.Location.Coords == nil && s.location != nil {
		acquireCtx, cancel := context.WithTimeout(ctx, s.locationTimeout)
		coords, err := s.location.Acquire(acquireCtx)
		cancel()
		if err != nil {
			s.logger.Info("automatic geolocation failed, manual address required",
				zap.String("owner_id", ownerID),
				zap.Error(err),
			)
		} else {
			st.session.SetCoordinates(coords.Lat, coords.Lng)
		}
	}
	st.mu.Unlock()

	return s.summarize(ctx, ownerID, st)
}

// SetCoordinates overwrites the captured position, e.g. after the user
// drags a map pin.
func (s *Service) SetCoordinates(ctx context.Context, ownerID string, lat, lng float64) (*Summary, error) {
	st, err := s.session(ownerID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	st.session.SetCoordinates(lat, lng)
	st.mu.Unlock()
	return s.summarize(ctx, ownerID, st)
}

// SetAddress stores the manually typed delivery address.
func (s *Service) SetAddress(ctx context.Context, ownerID, address string) (*Summary, error) {
	st, err := s.session(ownerID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	st.session.SetAddress(address)
	st.mu.Unlock()
	return s.summarize(ctx, ownerID, st)
}

// SetNote attaches the optional free-text location note.
func (s *Service) SetNote(ctx context.Context, ownerID, note string) (*Summary, error) {
	st, err := s.session(ownerID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	st.session.SetNote(note)
	st.mu.Unlock()
	return s.summarize(ctx, ownerID, st)
}

// Retry returns an errored session to location collection.
func (s *Service) Retry(ctx context.Context, ownerID string) (*Summary, error) {
	st, err := s.session(ownerID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	if err := st.session.Retry(); err != nil {
		st.mu.Unlock()
		return nil, err
	}
	st.mu.Unlock()
	return s.summarize(ctx, ownerID, st)
}

// Submit groups the current cart lines by shop and submits one order per
// group, sequentially. The first failure aborts the remaining groups;
// orders already placed stay placed and the session enters the error step.
// An authentication failure is distinct: the session returns to location
// collection, the cart is preserved and checkout.ErrUnauthenticated is
// returned so the caller can send the user to re-authenticate. Only after
// every group succeeds is the cart cleared.
func (s *Service) Submit(ctx context.Context, ownerID string) (*Summary, error) {
	st, err := s.session(ownerID)
	if err != nil {
		return nil, err
	}

	current, err := s.carts.Items(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	// The transition guard and the location snapshot happen under the
	// session lock; a concurrent Submit for the same owner sees the
	// submitting step and is rejected instead of racing into the loop.
	st.mu.Lock()
	if err := st.session.StartSubmitting(); err != nil {
		st.mu.Unlock()
		return nil, err
	}
	location := st.session.Location
	st.mu.Unlock()

	groups := checkout.GroupByShop(current.Items)
	fees := s.fees.Resolve(ctx, current.ShopIDs())
	for idx := range groups {
		groups[idx].Fee = fees[groups[idx].ShopID]
	}
	placed := make([]string, 0, len(groups))

	for _, group := range groups {
		req, err := checkout.NewOrderRequest(group, location)
		if err != nil {
			st.mu.Lock()
			st.session.AbortSubmission()
			st.mu.Unlock()
			return nil, err
		}

		if err := s.orders.PlaceOrder(ctx, req); err != nil {
			if errors.Is(err, checkout.ErrUnauthenticated) {
				// Not a generic failure: preserve the cart and session so
				// checkout can resume after re-authentication.
				st.mu.Lock()
				st.session.AbortSubmission()
				st.mu.Unlock()
				s.logger.Warn("order submission rejected: unauthenticated",
					zap.String("owner_id", ownerID),
					zap.String("shop_id", group.ShopID),
					zap.Strings("placed_shop_ids", placed),
				)
				return nil, checkout.ErrUnauthenticated
			}

			// Orders placed before this failure are not rolled back; record
			// them so support can reconcile.
			s.logger.Error("order submission failed, aborting remaining shop groups",
				zap.String("owner_id", ownerID),
				zap.String("failed_shop_id", group.ShopID),
				zap.Strings("placed_shop_ids", placed),
				zap.Error(err),
			)
			st.mu.Lock()
			failErr := st.session.Fail(err.Error())
			st.mu.Unlock()
			if failErr != nil {
				return nil, failErr
			}
			if len(placed) > 0 {
				s.notifyOrdersChanged(ownerID)
			}
			return s.summarize(ctx, ownerID, st)
		}

		placed = append(placed, group.ShopID)
	}

	if err := s.carts.Clear(ctx, ownerID); err != nil {
		// Orders are placed; a stale cart is recoverable, so log and finish.
		s.logger.Error("failed to clear cart after successful checkout",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
	}
	st.mu.Lock()
	if err := st.session.Succeed(); err != nil {
		st.mu.Unlock()
		return nil, err
	}
	step := st.session.Step
	finalLocation := st.session.Location
	st.mu.Unlock()
	s.notifyOrdersChanged(ownerID)

	s.logger.Info("checkout complete",
		zap.String("owner_id", ownerID),
		zap.Int("orders_placed", len(placed)),
	)

	goods := checkout.GoodsTotal(groups)
	delivery := checkout.DeliveryTotal(groups)
	summary := &Summary{
		Step:          step,
		Groups:        groups,
		GoodsTotal:    goods,
		DeliveryTotal: delivery,
		GrandTotal:    goods.Add(delivery),
		Location:      finalLocation,
	}

	s.mu.Lock()
	delete(s.sessions, ownerID)
	s.mu.Unlock()

	return summary, nil
}

// session fetches the owner's open session state.
func (s *Service) session(ownerID string) (*sessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[ownerID]
	if !ok {
		return nil, shared.NewDomainError("NO_SESSION", "No open checkout session")
	}
	return st, nil
}

// summarize builds the composer view: grouped lines, resolved fees, totals.
func (s *Service) summarize(ctx context.Context, ownerID string, st *sessionState) (*Summary, error) {
	current, err := s.carts.Items(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	groups := checkout.GroupByShop(current.Items)
	fees := s.fees.Resolve(ctx, current.ShopIDs())
	for idx := range groups {
		groups[idx].Fee = fees[groups[idx].ShopID]
	}

	goods := checkout.GoodsTotal(groups)
	delivery := checkout.DeliveryTotal(groups)

	st.mu.Lock()
	step := st.session.Step
	location := st.session.Location
	lastError := st.session.LastError
	st.mu.Unlock()

	return &Summary{
		Step:          step,
		Groups:        groups,
		GoodsTotal:    goods,
		DeliveryTotal: delivery,
		GrandTotal:    goods.Add(delivery),
		Location:      location,
		LastError:     lastError,
	}, nil
}

func (s *Service) notifyOrdersChanged(ownerID string) {
	s.mu.Lock()
	listeners := make([]OrdersListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ownerID)
	}
}
