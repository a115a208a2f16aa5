package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kuntur-detector/case-service/internal/alarmsvc"
	"github.com/kuntur-detector/case-service/internal/errs"
	"github.com/kuntur-detector/case-service/internal/kafka"
	"github.com/kuntur-detector/case-service/internal/model"
	"github.com/kuntur-detector/case-service/internal/service"
)

type CaseHandler struct {
	svc      service.CaseServicer
	producer kafka.CaseEventProducer
	alarms   *alarmsvc.Client
}

func NewCaseHandler(svc service.CaseServicer, producer kafka.CaseEventProducer, alarms *alarmsvc.Client) *CaseHandler {
	return &CaseHandler{svc: svc, producer: producer, alarms: alarms}
}

type createCaseRequest struct {
	AlarmID        string `json:"id_alarma"`
	AgentName      string `json:"nombre_agente"`
	AgentIDNumber  string `json:"cedula_agente"`
	VictimName     string `json:"nombre_victima"`
	VictimIDNumber string `json:"cedula_victima"`
	PoliceReport   string `json:"informe_policial"`
}

func caseEventPayload(c *model.Case) map[string]interface{} {
	if c == nil {
		return nil
	}
	return map[string]interface{}{
		"id_caso":        c.CaseID,
		"id_alarma":      c.AlarmID,
		"nombre_agente":  c.AgentName,
		"cedula_agente":  c.AgentIDNumber,
		"nombre_victima": c.VictimName,
		"cedula_victima": c.VictimIDNumber,
		"estado":         string(c.Status),
	}
}

// produceEvent fires the case event from its own context so it survives
// request cancellation, with a timeout.
func (h *CaseHandler) produceEvent(event string, cs *model.Case) {
	if h.producer == nil {
		return
	}
	payload := caseEventPayload(cs)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.producer.ProduceCaseEvent(ctx, event, payload)
	}()
}

func (h *CaseHandler) Create(c *gin.Context) {
	var req createCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), service.CreateCaseInput{
		AlarmID:        req.AlarmID,
		AgentName:      req.AgentName,
		AgentIDNumber:  req.AgentIDNumber,
		VictimName:     req.VictimName,
		VictimIDNumber: req.VictimIDNumber,
		PoliceReport:   req.PoliceReport,
	})
	if err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create case"})
		return
	}
	h.produceEvent("caso.creado", created)
	if h.alarms != nil {
		h.alarms.NotifyCaseAsync(created)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CaseHandler) List(c *gin.Context) {
	filter := service.ListFilter{
		CaseID:  c.Query("id_caso"),
		AlarmID: c.Query("id_alarma"),
	}
	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cases"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CaseHandler) Get(c *gin.Context) {
	id := c.Param("id_caso")
	cs, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case " + id + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CaseHandler) Update(c *gin.Context) {
	id := c.Param("id_caso")
	var changes map[string]interface{}
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	cs, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		if errors.Is(err, errs.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case " + id + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.produceEvent("caso.actualizado", cs)
	c.JSON(http.StatusOK, cs)
}
