package graph

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/evalgraph/engine/pkg/eval"
	"github.com/evalgraph/engine/pkg/server"
)

// RecalculationRequest assigns variable values and triggers a
// recalculation pass. With Result set, only the value of this
// expression is reported, otherwise the values of all registered
// expressions.
type RecalculationRequest struct {
	Variables map[string]float64 `json:"variables,omitempty"`
	Result    string             `json:"result,omitempty"`
}

type RecalculationResult struct {
	Context string             `json:"context"`
	Values  map[string]float64 `json:"values"`
}

// Service exposes a document's evaluation context via http. All
// requests against the context are serialized, the graph itself is not
// thread safe. Evaluation events are forwarded to the service's watch
// registry.
type Service struct {
	lock     sync.Mutex
	doc      *Document
	ctx      *eval.EvaluationContext
	registry *Registry
}

func NewService(doc *Document) (*Service, error) {
	ctx, err := doc.Build()
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	ctx.RegisterEventHandler(registry)
	return &Service{
		doc:      doc,
		ctx:      ctx,
		registry: registry,
	}, nil
}

func (s *Service) Registry() *Registry {
	return s.registry
}

func (s *Service) Context() *eval.EvaluationContext {
	return s.ctx
}

// RegisterHandler attaches the service endpoints to a server:
// POST {prefix}/recalculate for recalculation requests.
func (s *Service) RegisterHandler(srv *server.Server, prefix string) {
	srv.Handle(prefix+"/recalculate", http.HandlerFunc(s.recalculate))
}

func (s *Service) recalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req RecalculationRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid recalculation request: %s", err), http.StatusBadRequest)
		return
	}

	result, err := s.Recalculate(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Recalculate runs a recalculation pass for a request.
func (s *Service) Recalculate(req *RecalculationRequest) (*RecalculationResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for name, value := range req.Variables {
		s.ctx.SetVariable(name, value)
	}

	result := &RecalculationResult{
		Context: s.ctx.GetId(),
		Values:  map[string]float64{},
	}

	targets := []string{req.Result}
	if req.Result == "" {
		targets = s.ctx.ExpressionNames()
		if len(targets) == 0 {
			return result, nil
		}
	}
	// the first target runs the pass, the remaining lookups reuse the
	// memoized values
	v, err := s.ctx.Recalculate(targets[0])
	if err != nil {
		return nil, err
	}
	result.Values[targets[0]] = v

	for _, name := range targets[1:] {
		e, err := s.ctx.LookupExpression(name)
		if err != nil {
			return nil, err
		}
		v, err := e.Evaluate()
		if err != nil {
			return nil, err
		}
		result.Values[name] = v
	}
	return result, nil
}
