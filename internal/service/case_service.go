package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kuntur-detector/case-service/internal/errs"
	"github.com/kuntur-detector/case-service/internal/model"
	"github.com/kuntur-detector/case-service/internal/storage"
)

const caseIDPrefix = "CASO-"

// requiredFields in wire order; validation reports the first one missing.
var requiredFields = []string{
	"id_alarma",
	"nombre_agente",
	"cedula_agente",
	"nombre_victima",
	"cedula_victima",
	"informe_policial",
}

// CreateCaseInput carries the caller-supplied fields of a new case.
type CreateCaseInput struct {
	AlarmID        string
	AgentName      string
	AgentIDNumber  string
	VictimName     string
	VictimIDNumber string
	PoliceReport   string
}

// ListFilter narrows List by exact equality; zero values mean no filter.
// Both set means both must match.
type ListFilter struct {
	CaseID  string
	AlarmID string
}

// CaseServicer is the repository contract the handlers depend on.
type CaseServicer interface {
	Create(ctx context.Context, in CreateCaseInput) (*model.Case, error)
	GetByID(ctx context.Context, id string) (*model.Case, error)
	List(ctx context.Context, filter ListFilter) ([]model.Case, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Case, error)
}

// CaseService owns the in-memory case collection and its id counter, and
// delegates durability to a storage.Store. The mutex serializes mutations:
// the HTTP layer serves requests concurrently and the counter plus the
// full-document save are a read-modify-write.
type CaseService struct {
	mu     sync.Mutex
	store  storage.Store
	cases  []model.Case
	nextID int
	now    func() time.Time
}

func NewCaseService(store storage.Store) *CaseService {
	return &CaseService{store: store, nextID: 1, now: time.Now}
}

// Init loads the persisted document and derives the next id counter as
// max(existing suffixes)+1, so ids are never reused even across gaps.
func (s *CaseService) Init(ctx context.Context) error {
	cases, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = cases
	s.nextID = maxSuffix(cases) + 1
	log.Printf("service: loaded %d cases, next id %s", len(cases), formatCaseID(s.nextID))
	return nil
}

func maxSuffix(cases []model.Case) int {
	max := 0
	for _, c := range cases {
		raw := strings.TrimPrefix(c.CaseID, caseIDPrefix)
		if raw == c.CaseID {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

func formatCaseID(n int) string {
	return fmt.Sprintf("%s%04d", caseIDPrefix, n)
}

func (in *CreateCaseInput) fieldValue(field string) string {
	switch field {
	case "id_alarma":
		return in.AlarmID
	case "nombre_agente":
		return in.AgentName
	case "cedula_agente":
		return in.AgentIDNumber
	case "nombre_victima":
		return in.VictimName
	case "cedula_victima":
		return in.VictimIDNumber
	case "informe_policial":
		return in.PoliceReport
	}
	return ""
}

// Create validates the input, assigns the next CASO-NNNN id and persists the
// collection. On a failed save the in-memory mutation is rolled back so
// memory never runs ahead of the document.
func (s *CaseService) Create(ctx context.Context, in CreateCaseInput) (*model.Case, error) {
	for _, field := range requiredFields {
		if strings.TrimSpace(in.fieldValue(field)) == "" {
			return nil, &errs.ValidationError{Field: field}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newCase := model.Case{
		CaseID:         formatCaseID(s.nextID),
		AlarmID:        in.AlarmID,
		AgentName:      in.AgentName,
		AgentIDNumber:  in.AgentIDNumber,
		VictimName:     in.VictimName,
		VictimIDNumber: in.VictimIDNumber,
		PoliceReport:   in.PoliceReport,
		Status:         model.CaseStatusOpen,
		CreatedAt:      s.now(),
	}
	s.cases = append(s.cases, newCase)
	if err := s.store.Save(ctx, s.cases); err != nil {
		s.cases = s.cases[:len(s.cases)-1]
		return nil, fmt.Errorf("save cases: %w", err)
	}
	s.nextID++
	out := newCase
	return &out, nil
}

// List returns a snapshot of the collection in insertion order, narrowed by
// the filter. No match is an empty slice, not an error.
func (s *CaseService) List(ctx context.Context, filter ListFilter) ([]model.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Case, 0, len(s.cases))
	for _, c := range s.cases {
		if filter.CaseID != "" && c.CaseID != filter.CaseID {
			continue
		}
		if filter.AlarmID != "" && c.AlarmID != filter.AlarmID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CaseService) GetByID(ctx context.Context, id string) (*model.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cases {
		if c.CaseID == id {
			out := c
			return &out, nil
		}
	}
	return nil, errs.ErrCaseNotFound
}

// Update merges changes over the stored record. id_caso and fecha_creacion
// are immutable and silently discarded; unknown keys are ignored.
func (s *CaseService) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.cases {
		if c.CaseID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errs.ErrCaseNotFound
	}

	prev := s.cases[idx]
	updated := prev
	for key, value := range changes {
		v, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "id_alarma":
			updated.AlarmID = v
		case "nombre_agente":
			updated.AgentName = v
		case "cedula_agente":
			updated.AgentIDNumber = v
		case "nombre_victima":
			updated.VictimName = v
		case "cedula_victima":
			updated.VictimIDNumber = v
		case "informe_policial":
			updated.PoliceReport = v
		case "estado":
			updated.Status = model.CaseStatus(v)
		}
	}
	now := s.now()
	updated.UpdatedAt = &now

	s.cases[idx] = updated
	if err := s.store.Save(ctx, s.cases); err != nil {
		s.cases[idx] = prev
		return nil, fmt.Errorf("save cases: %w", err)
	}
	out := updated
	return &out, nil
}
