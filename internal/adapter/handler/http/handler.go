package http

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"chainkit/internal/application/port"
	"chainkit/internal/coldstaking"
	"chainkit/internal/domain"
	"chainkit/internal/domain/entity"
	"chainkit/internal/pkg/apperrors"
)

// AddressClassifier resolves and matches raw address input.
type AddressClassifier interface {
	Resolve(input string) (entity.ClassifiedAddress, bool)
	Matches(chain entity.ChainID, network entity.NetworkID, input string) bool
}

// CredentialValidator validates cold-staking credentials.
type CredentialValidator interface {
	Validate(raw string) (entity.ColdStakingCredential, error)
}

// Observer receives request-level telemetry.
type Observer interface {
	ObserveClassification(chain entity.ChainID, ok bool)
	ObserveCredential(reason string)
}

// Handler serves the address, rate and cold-staking endpoints.
type Handler struct {
	classifier  AddressClassifier
	rates       port.RateService
	converter   port.FiatConverter
	credentials CredentialValidator
	observer    Observer
	timeout     time.Duration
	logger      *zap.Logger
}

// NewHandler creates the HTTP handler. timeout bounds how long a request waits for a refresh.
func NewHandler(
	classifier AddressClassifier,
	rates port.RateService,
	converter port.FiatConverter,
	credentials CredentialValidator,
	observer Observer,
	timeout time.Duration,
	logger *zap.Logger,
) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		classifier:  classifier,
		rates:       rates,
		converter:   converter,
		credentials: credentials,
		observer:    observer,
		timeout:     timeout,
		logger:      logger.Named("HTTPHandler"),
	}
}

type classifyResponse struct {
	Valid   bool             `json:"valid"`
	Chain   entity.ChainID   `json:"chain,omitempty"`
	Network entity.NetworkID `json:"network,omitempty"`
	Address string           `json:"address,omitempty"`
}

type rateTableResponse struct {
	Chain     entity.ChainID `json:"chain"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Rates     []entity.Rate  `json:"rates"`
}

type fiatResponse struct {
	Chain    entity.ChainID `json:"chain"`
	Code     string         `json:"code"`
	Satoshis int64          `json:"satoshis"`
	Fiat     float64        `json:"fiat"`
}

type credentialResponse struct {
	Valid   bool                  `json:"valid"`
	Kind    entity.CredentialKind `json:"kind,omitempty"`
	Prefix  string                `json:"prefix,omitempty"`
	Network entity.NetworkID      `json:"network,omitempty"`
	Reason  string                `json:"reason,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString("OK")
}

// Classify handles GET /address/classify?input=.
func (h *Handler) Classify(ctx *fasthttp.RequestCtx) {
	input := string(ctx.QueryArgs().Peek("input"))
	resolved, ok := h.classifier.Resolve(input)
	h.observer.ObserveClassification(resolved.Chain, ok)

	h.writeJSON(ctx, fasthttp.StatusOK, classifyResponse{
		Valid:   ok,
		Chain:   resolved.Chain,
		Network: resolved.Network,
		Address: resolved.Address,
	})
}

// Match handles GET /address/match?chain=&network=&input=.
func (h *Handler) Match(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	chain, ok := entity.ParseChainID(string(args.Peek("chain")))
	if !ok {
		ctx.Error("Bad Request: unknown chain", fasthttp.StatusBadRequest)
		return
	}
	network, ok := entity.ParseNetworkID(string(args.Peek("network")))
	if !ok {
		ctx.Error("Bad Request: unknown network", fasthttp.StatusBadRequest)
		return
	}

	match := h.classifier.Matches(chain, network, string(args.Peek("input")))
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]bool{"match": match})
}

// GetRates handles GET /rates/{chain}.
func (h *Handler) GetRates(ctx *fasthttp.RequestCtx) {
	chain, ok := h.chainParam(ctx)
	if !ok {
		return
	}
	reqCtx, cancel := h.requestContext()
	defer cancel()

	table, ok := h.rates.Table(reqCtx, chain)
	if !ok {
		ctx.Error("Service Unavailable: rates not available yet", fasthttp.StatusServiceUnavailable)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, toRateTableResponse(table))
}

// RefreshRates handles POST /rates/{chain}/refresh.
func (h *Handler) RefreshRates(ctx *fasthttp.RequestCtx) {
	chain, ok := h.chainParam(ctx)
	if !ok {
		return
	}
	reqCtx, cancel := h.requestContext()
	defer cancel()

	if err := h.rates.Refresh(reqCtx, chain); err != nil {
		h.logger.Error("Refresh requested over HTTP failed", zap.String("chain", chain.String()), zap.Error(err))
		h.writeError(ctx, err)
		return
	}
	table, _ := h.rates.Table(reqCtx, chain)
	h.writeJSON(ctx, fasthttp.StatusOK, toRateTableResponse(table))
}

// ToFiat handles GET /rates/{chain}/fiat?code=&satoshis=.
func (h *Handler) ToFiat(ctx *fasthttp.RequestCtx) {
	chain, ok := h.chainParam(ctx)
	if !ok {
		return
	}
	code := entity.NormalizeCode(string(ctx.QueryArgs().Peek("code")))
	satoshis, err := strconv.ParseInt(string(ctx.QueryArgs().Peek("satoshis")), 10, 64)
	if err != nil {
		ctx.Error("Bad Request: invalid satoshis", fasthttp.StatusBadRequest)
		return
	}
	reqCtx, cancel := h.requestContext()
	defer cancel()

	if !h.rates.IsAvailable(reqCtx, chain) {
		ctx.Error("Service Unavailable: rates not available yet", fasthttp.StatusServiceUnavailable)
		return
	}
	fiat, ok := h.converter.ToFiat(reqCtx, satoshis, code, chain)
	if !ok {
		ctx.Error("Not Found: unknown currency code", fasthttp.StatusNotFound)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, fiatResponse{Chain: chain, Code: code, Satoshis: satoshis, Fiat: fiat})
}

// ToSatoshis handles GET /rates/{chain}/satoshis?code=&amount=.
func (h *Handler) ToSatoshis(ctx *fasthttp.RequestCtx) {
	chain, ok := h.chainParam(ctx)
	if !ok {
		return
	}
	code := entity.NormalizeCode(string(ctx.QueryArgs().Peek("code")))
	amount, err := strconv.ParseFloat(string(ctx.QueryArgs().Peek("amount")), 64)
	if err != nil {
		ctx.Error("Bad Request: invalid amount", fasthttp.StatusBadRequest)
		return
	}
	reqCtx, cancel := h.requestContext()
	defer cancel()

	if !h.rates.IsAvailable(reqCtx, chain) {
		ctx.Error("Service Unavailable: rates not available yet", fasthttp.StatusServiceUnavailable)
		return
	}
	satoshis, ok := h.converter.FromFiat(reqCtx, amount, code, chain)
	if !ok {
		ctx.Error("Not Found: unknown currency code", fasthttp.StatusNotFound)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, fiatResponse{Chain: chain, Code: code, Satoshis: satoshis, Fiat: amount})
}

// Alternatives handles GET /alternatives?sort=true.
func (h *Handler) Alternatives(ctx *fasthttp.RequestCtx) {
	reqCtx, cancel := h.requestContext()
	defer cancel()

	sorted := ctx.QueryArgs().GetBool("sort")
	h.writeJSON(ctx, fasthttp.StatusOK, h.rates.ListAlternatives(reqCtx, sorted))
}

// ValidateCredential handles GET /coldstaking/validate?credential=.
func (h *Handler) ValidateCredential(ctx *fasthttp.RequestCtx) {
	cred, err := h.credentials.Validate(string(ctx.QueryArgs().Peek("credential")))
	reason := coldstaking.Reason(err)
	h.observer.ObserveCredential(reason)

	h.writeJSON(ctx, fasthttp.StatusOK, credentialResponse{
		Valid:   err == nil,
		Kind:    cred.Kind,
		Prefix:  cred.Prefix,
		Network: cred.Network,
		Reason:  reason,
	})
}

func (h *Handler) chainParam(ctx *fasthttp.RequestCtx) (entity.ChainID, bool) {
	raw, _ := ctx.UserValue("chain").(string)
	chain, ok := entity.ParseChainID(raw)
	if !ok {
		h.logger.Debug("Unknown chain in path", zap.String("chain", raw))
		ctx.Error("Not Found: unknown chain", fasthttp.StatusNotFound)
		return "", false
	}
	return chain, true
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.timeout)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedChain):
		ctx.Error("Not Found: unknown chain", fasthttp.StatusNotFound)
	case errors.Is(err, apperrors.ErrTimeout):
		ctx.Error("Gateway Timeout", fasthttp.StatusGatewayTimeout)
	case errors.Is(err, apperrors.ErrExternalServiceFailure):
		ctx.Error("Bad Gateway: rate source failed", fasthttp.StatusBadGateway)
	default:
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func toRateTableResponse(table *entity.RateTable) rateTableResponse {
	return rateTableResponse{
		Chain:     table.Chain,
		UpdatedAt: table.UpdatedAt,
		Rates:     table.Entries(),
	}
}
