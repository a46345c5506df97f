package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inscan/internal/domain"
	"inscan/internal/service"
)

// AnalysisHandler handles analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

type extractionStatsReq struct {
	TotalPages       int `json:"total_pages"`
	PagesWithText    int `json:"pages_with_text"`
	OCREnhancedPages int `json:"ocr_enhanced_pages"`
	HybridPages      int `json:"hybrid_pages"`
}

func (r extractionStatsReq) toDomain() domain.ExtractionStats {
	return domain.ExtractionStats{
		TotalPages:       r.TotalPages,
		PagesWithText:    r.PagesWithText,
		OCREnhancedPages: r.OCREnhancedPages,
		HybridPages:      r.HybridPages,
	}
}

// Analyze handles POST /api/v1/analyses
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req struct {
		ProductName string             `json:"product_name" binding:"required"`
		Text        string             `json:"text" binding:"required"`
		Stats       extractionStatsReq `json:"stats"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "product_name and text are required")
		return
	}

	a, err := h.analysisService.AnalyzeProduct(c.Request.Context(), &service.AnalyzeInput{
		ProductName: req.ProductName,
		Text:        req.Text,
		Stats:       req.Stats.toDomain(),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, a)
}

// Compare handles POST /api/v1/analyses/compare
func (h *AnalysisHandler) Compare(c *gin.Context) {
	var req struct {
		ProductNameA string             `json:"product_name_a" binding:"required"`
		TextA        string             `json:"text_a" binding:"required"`
		StatsA       extractionStatsReq `json:"stats_a"`
		ProductNameB string             `json:"product_name_b" binding:"required"`
		TextB        string             `json:"text_b" binding:"required"`
		StatsB       extractionStatsReq `json:"stats_b"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "both product names and texts are required")
		return
	}

	a, err := h.analysisService.CompareProducts(c.Request.Context(), &service.CompareInput{
		ProductNameA: req.ProductNameA,
		TextA:        req.TextA,
		StatsA:       req.StatsA.toDomain(),
		ProductNameB: req.ProductNameB,
		TextB:        req.TextB,
		StatsB:       req.StatsB.toDomain(),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, a)
}

// Assemble handles POST /api/v1/assemble
func (h *AnalysisHandler) Assemble(c *gin.Context) {
	var req struct {
		ProductName  string `json:"product_name"`
		ProductNameB string `json:"product_name_b"`
		Mode         string `json:"mode"`
		Text         string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	mode := domain.AnalysisMode(req.Mode)
	if mode != "" && mode != domain.AnalysisModeSingle && mode != domain.AnalysisModeComparison {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "mode must be single or comparison")
		return
	}

	a, err := h.analysisService.Assemble(c.Request.Context(), &service.AssembleInput{
		ProductName:  req.ProductName,
		ProductNameB: req.ProductNameB,
		Mode:         mode,
		Text:         req.Text,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, a)
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	analyses, total, err := h.analysisService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	a, err := h.analysisService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, a)
}

// GetRawText handles GET /api/v1/analyses/:id/raw
func (h *AnalysisHandler) GetRawText(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	raw, err := h.analysisService.GetRawText(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"raw_text": raw})
}

// Delete handles DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.analysisService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// parseIDParam extracts and validates the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
