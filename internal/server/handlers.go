package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/careflow/margin-simulator/internal/calculation"
	"github.com/careflow/margin-simulator/internal/catalog"
	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/careflow/margin-simulator/internal/output"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type simulationRequest struct {
	ProcedureID  int      `json:"procedureId" binding:"required"`
	SessionPrice *float64 `json:"precoSessao"`
	Sessions     *int     `json:"numeroSessoes"`
}

type simulationResponse struct {
	*domain.SimulationReport
	Metrics []output.MetricRow `json:"metrics"`
}

type procedureResponse struct {
	domain.Procedure
	Breakdown domain.Breakdown `json:"breakdown"`
}

type pageResponse struct {
	catalog.Page
	Summary string `json:"summary"`
}

func (s *Server) handleHealth(c *gin.Context) {
	procedures := 0
	if s.engine.Catalog != nil {
		procedures = s.engine.Catalog.Len()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "procedures": procedures})
}

func (s *Server) handleListProcedures(c *gin.Context) {
	if s.engine.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "catalog not loaded"})
		return
	}
	page, err := intQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "page"})
		return
	}
	perPage, err := intQuery(c, "perPage", s.pageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "perPage"})
		return
	}

	p := s.engine.Catalog.Paginate(c.Query("q"), page, perPage)
	c.JSON(http.StatusOK, pageResponse{Page: p, Summary: p.Summary()})
}

func (s *Server) handleGetProcedure(c *gin.Context) {
	if s.engine.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "catalog not loaded"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "procedure id must be an integer", Field: "id"})
		return
	}
	proc, err := s.engine.Catalog.Find(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, procedureResponse{Procedure: proc, Breakdown: calculation.CostBreakdown(proc)})
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req simulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	report, err := s.engine.Simulate(req.ProcedureID, calculation.Overrides{
		SessionPrice: req.SessionPrice,
		Sessions:     req.Sessions,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	metrics, err := output.MetricRows(report.Result)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, simulationResponse{SimulationReport: report, Metrics: metrics})
}

func (s *Server) handleCalculate(c *gin.Context) {
	var in domain.SimulationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	res, err := s.engine.Calculate(in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *calculation.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Field: verr.Field})
	case errors.Is(err, catalog.ErrProcedureNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, output.ErrNonFiniteValue):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}
