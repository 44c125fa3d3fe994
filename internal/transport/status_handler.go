package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/service"
)

const (
	maxRequestBody = 1 << 16
	defaultReason  = "cancelled by user"
)

// StatusHandler serves the REST status and control endpoints of the miner.
type StatusHandler struct {
	miner  Miner
	chain  ChainHead
	logger *zap.Logger
}

// NewStatusHandler returns a StatusHandler instance.
func NewStatusHandler(miner Miner, chain ChainHead, logger *zap.Logger) (*StatusHandler, error) {
	if miner == nil {
		return nil, errors.New("miner is nil")
	}
	if chain == nil {
		return nil, errors.New("chain head source is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusHandler{miner: miner, chain: chain, logger: logger}, nil
}

// Register binds the handler's routes on mux.
func (h *StatusHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/operations", h.listOperations},
		{http.MethodPost, "/v1/operations", h.mine},
		{http.MethodGet, "/v1/operations/{id}", h.getOperation},
		{http.MethodPost, "/v1/operations/{id}/cancel", h.cancelOperation},
		{http.MethodGet, "/v1/chain/head", h.chainHead},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

func (h *StatusHandler) listOperations(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	ops := h.miner.Operations()
	views := make([]operationView, 0, len(ops))
	for _, op := range ops {
		views = append(views, newOperationView(op.Snapshot(), false))
	}
	h.write(w, http.StatusOK, views)
}

func (h *StatusHandler) getOperation(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	op, ok := h.miner.Operation(params["id"])
	if !ok {
		h.fail(w, http.StatusNotFound, fmt.Errorf("%w: %s", service.ErrOperationNotFound, params["id"]))
		return
	}
	h.write(w, http.StatusOK, newOperationView(op.Snapshot(), true))
}

func (h *StatusHandler) mine(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req mineRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	if req.ChainID == "" {
		h.fail(w, http.StatusBadRequest, errors.New("chain_id is required"))
		return
	}

	op, err := h.miner.Mine(r.Context(), req.ChainID, req.Height)
	switch {
	case errors.Is(err, service.ErrUnknownChain):
		h.fail(w, http.StatusBadRequest, err)
	case err != nil && op == nil:
		h.fail(w, http.StatusInternalServerError, err)
	case err != nil:
		h.logger.Warn("mine request failed", zap.String("operation", op.ID()), zap.Error(err))
		h.write(w, http.StatusBadGateway, newOperationView(op.Snapshot(), true))
	default:
		h.write(w, http.StatusAccepted, newOperationView(op.Snapshot(), true))
	}
}

func (h *StatusHandler) cancelOperation(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var req cancelRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	if req.Reason == "" {
		req.Reason = defaultReason
	}

	id := params["id"]
	err := h.miner.Cancel(id, req.Reason)
	switch {
	case errors.Is(err, service.ErrOperationNotFound):
		h.fail(w, http.StatusNotFound, err)
		return
	case operation.IsInvalidTransition(err):
		h.fail(w, http.StatusConflict, err)
		return
	case err != nil:
		h.fail(w, http.StatusInternalServerError, err)
		return
	}

	op, ok := h.miner.Operation(id)
	if !ok {
		h.fail(w, http.StatusNotFound, fmt.Errorf("%w: %s", service.ErrOperationNotFound, id))
		return
	}
	h.write(w, http.StatusOK, newOperationView(op.Snapshot(), true))
}

func (h *StatusHandler) chainHead(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	head := h.chain.ChainHead()
	if head == nil {
		h.fail(w, http.StatusServiceUnavailable, errors.New("chain is not synchronized yet"))
		return
	}
	h.write(w, http.StatusOK, newBlockView(head))
}

func (h *StatusHandler) fail(w http.ResponseWriter, code int, err error) {
	h.write(w, code, errorView{Error: err.Error()})
}

func (h *StatusHandler) write(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}
