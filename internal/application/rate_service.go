package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"chainkit/internal/application/port"
	"chainkit/internal/config"
	"chainkit/internal/domain"
	"chainkit/internal/domain/entity"
	domainRepo "chainkit/internal/domain/repository"
	"chainkit/internal/pkg/apperrors"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Compile-time check
var _ port.RateService = (*rateService)(nil)

// rateService implements port.RateService on top of a rate source and a table store.
type rateService struct {
	source    domainRepo.RateSource
	cacheRepo domainRepo.CacheRepository
	observer  port.RefreshObserver
	logger    *zap.Logger
	cfg       config.RatesConfig
	rootCtx   context.Context
	now       func() time.Time

	inflight     singleflight.Group
	isRefreshing *atomic.Bool

	listenersMu    sync.RWMutex
	listeners      map[uint64]func(*entity.RateTable)
	nextListenerID uint64
}

// NewRateService creates the rate service and starts the periodic refresher when
// an interval is configured. rootCtx bounds every fetch and stops the refresher.
func NewRateService(
	rootCtx context.Context,
	source domainRepo.RateSource,
	cacheRepo domainRepo.CacheRepository,
	observer port.RefreshObserver,
	logger *zap.Logger,
	cfg config.RatesConfig,
) port.RateService {
	s := newRateService(rootCtx, source, cacheRepo, observer, logger, cfg)
	go s.startBackgroundRefresher()
	return s
}

func newRateService(
	rootCtx context.Context,
	source domainRepo.RateSource,
	cacheRepo domainRepo.CacheRepository,
	observer port.RefreshObserver,
	logger *zap.Logger,
	cfg config.RatesConfig,
) *rateService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &rateService{
		source:       source,
		cacheRepo:    cacheRepo,
		observer:     observer,
		logger:       logger.Named("RateService"),
		cfg:          cfg,
		rootCtx:      rootCtx,
		now:          time.Now,
		isRefreshing: new(atomic.Bool),
		listeners:    make(map[uint64]func(*entity.RateTable)),
	}
}

// Refresh fetches and installs a chain's table. Callers arriving while a refresh of
// the same chain is in flight join it instead of starting another fetch. The
// fetch runs under the root context; ctx only bounds how long the caller waits.
func (s *rateService) Refresh(ctx context.Context, chain entity.ChainID) error {
	if _, ok := entity.ParseChainID(chain.String()); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedChain, chain)
	}

	leader := false
	resultCh := s.inflight.DoChan(chain.String(), func() (any, error) {
		leader = true
		return nil, s.refresh(s.rootCtx, chain)
	})

	select {
	case res := <-resultCh:
		if !leader {
			s.observer.ObserveCoalesced(chain)
			s.logger.Debug("Joined in-flight refresh", zap.String("chain", chain.String()))
		}
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for %s refresh: %v", apperrors.ErrTimeout, chain, ctx.Err())
	}
}

// refresh performs one fetch and install. A failure leaves the installed table untouched.
func (s *rateService) refresh(ctx context.Context, chain entity.ChainID) error {
	start := s.now()
	table, err := s.fetchTable(ctx, chain)
	s.observer.ObserveRefresh(chain, s.now().Sub(start), err)
	if err != nil {
		s.logger.Error("Rate refresh failed", zap.String("chain", chain.String()), zap.Error(err))
		return fmt.Errorf("refresh %s rates: %w", chain, err)
	}

	if err := s.cacheRepo.SetRateTable(ctx, chain, table); err != nil {
		s.logger.Error("Failed to install rate table", zap.String("chain", chain.String()), zap.Error(err))
		return fmt.Errorf("install %s rates: %w", chain, err)
	}
	s.observer.ObserveInstall(table)
	s.logger.Info("Installed rate table",
		zap.String("chain", chain.String()), zap.Int("entries", table.Len()),
	)
	s.notify(table)
	return nil
}

// fetchTable builds a complete table for chain; nothing is returned unless every fetch succeeded.
func (s *rateService) fetchTable(ctx context.Context, chain entity.ChainID) (*entity.RateTable, error) {
	switch chain {
	case entity.ChainBTC, entity.ChainBCH:
		rates, err := s.source.FetchRates(ctx, chain)
		if err != nil {
			return nil, err
		}
		return entity.NewRateTable(chain, rates, s.now()), nil

	case entity.ChainRHOM:
		price, err := s.source.FetchAltcoinPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("altcoin price: %w", err)
		}
		rates, err := s.source.FetchRates(ctx, entity.ChainBTC)
		if err != nil {
			return nil, fmt.Errorf("primary rates: %w", err)
		}
		primary := entity.NewRateTable(entity.ChainBTC, rates, s.now())
		return primary.Derive(entity.ChainRHOM, price, s.now()), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedChain, chain)
	}
}

// RefreshAll refreshes every chain concurrently.
func (s *rateService) RefreshAll(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, chain := range entity.ChainPriority {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Refresh(ctx, chain); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// WhenAvailable resolves at once for an available chain, otherwise after one refresh.
func (s *rateService) WhenAvailable(ctx context.Context, chain entity.ChainID) error {
	if s.IsAvailable(ctx, chain) {
		return nil
	}
	return s.Refresh(ctx, chain)
}

// IsAvailable reports whether the chain has an installed table.
func (s *rateService) IsAvailable(ctx context.Context, chain entity.ChainID) bool {
	_, ok := s.Table(ctx, chain)
	return ok
}

// Table returns the installed table of a chain.
func (s *rateService) Table(ctx context.Context, chain entity.ChainID) (*entity.RateTable, bool) {
	table, found, err := s.cacheRepo.GetRateTable(ctx, chain)
	if err != nil {
		s.logger.Warn("Cache error when getting rate table", zap.String("chain", chain.String()), zap.Error(err))
		return nil, false
	}
	return table, found
}

// Rate returns the rate of code on chain.
func (s *rateService) Rate(ctx context.Context, chain entity.ChainID, code string) (float64, bool) {
	table, ok := s.Table(ctx, chain)
	if !ok {
		return 0, false
	}
	return table.Rate(code)
}

// ListAlternatives lists the primary chain's currencies, unique by ISO code with
// the first occurrence kept, optionally sorted case-insensitively by name.
func (s *rateService) ListAlternatives(ctx context.Context, sorted bool) []entity.Alternative {
	table, ok := s.Table(ctx, entity.ChainBTC)
	if !ok {
		return []entity.Alternative{}
	}

	alternatives := lo.Map(table.Entries(), func(r entity.Rate, _ int) entity.Alternative {
		return entity.Alternative{Name: r.Name, IsoCode: r.Code}
	})
	alternatives = lo.UniqBy(alternatives, func(a entity.Alternative) string {
		return a.IsoCode
	})
	if sorted {
		sort.SliceStable(alternatives, func(i, j int) bool {
			return strings.ToLower(alternatives[i].Name) < strings.ToLower(alternatives[j].Name)
		})
	}
	return alternatives
}

// OnInstall registers a listener for installed tables.
func (s *rateService) OnInstall(fn func(*entity.RateTable)) func() {
	s.listenersMu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *rateService) notify(table *entity.RateTable) {
	s.listenersMu.RLock()
	fns := lo.Values(s.listeners)
	s.listenersMu.RUnlock()

	for _, fn := range fns {
		fn(table)
	}
}

// startBackgroundRefresher refreshes every chain on a fixed interval. A failed
// tick is not retried; the next tick is the next attempt.
func (s *rateService) startBackgroundRefresher() {
	interval := s.cfg.GetRefreshInterval()
	if interval <= 0 {
		s.logger.Info("Background refresher disabled (interval <= 0)")
		return
	}

	s.logger.Info("Starting background refresher", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.isRefreshing.CompareAndSwap(false, true) {
				s.logger.Debug("Background refresher tick: refresh already in progress.")
				continue
			}
			go func() {
				defer s.isRefreshing.Store(false)
				if err := s.RefreshAll(s.rootCtx); err != nil {
					if s.rootCtx.Err() != nil {
						s.logger.Warn("Periodic refresh cancelled due to application shutdown")
						return
					}
					s.logger.Error("Periodic refresh finished with errors", zap.Error(err))
				}
			}()

		case <-s.rootCtx.Done():
			s.logger.Info("Background refresher stopping due to context cancellation.")
			return
		}
	}
}

type nopObserver struct{}

func (nopObserver) ObserveRefresh(entity.ChainID, time.Duration, error) {}
func (nopObserver) ObserveCoalesced(entity.ChainID) {}
func (nopObserver) ObserveInstall(*entity.RateTable) {}
