package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crisisdesk/disaster-response-api/internal/actionplan"
	"github.com/crisisdesk/disaster-response-api/internal/agent"
	"github.com/crisisdesk/disaster-response-api/internal/dashboard"
	"github.com/crisisdesk/disaster-response-api/internal/models"
	"github.com/crisisdesk/disaster-response-api/internal/notify"
	"github.com/crisisdesk/disaster-response-api/internal/report"
	"github.com/crisisdesk/disaster-response-api/internal/repository"
)

// SummaryGenerator runs the three-stage summary pipeline.
type SummaryGenerator interface {
	Generate(ctx context.Context, q models.DisasterQuery) (*report.Result, error)
}

// PlanGenerator produces a validated disaster action plan.
type PlanGenerator interface {
	Generate(ctx context.Context, q models.DisasterQuery) (*models.ActionPlan, error)
}

// MessageDrafter drafts disaster communication messages.
type MessageDrafter interface {
	Draft(ctx context.Context, req notify.MessageRequest) (string, error)
}

type Handler struct {
	generator  SummaryGenerator
	planner    PlanGenerator
	drafter    MessageDrafter
	mailer     *notify.Mailer
	dash       *dashboard.Service
	summaries  repository.SummaryRepository
	summaryTTL time.Duration
	now        func() time.Time
}

func NewHandler(
	generator SummaryGenerator,
	planner PlanGenerator,
	drafter MessageDrafter,
	mailer *notify.Mailer,
	dash *dashboard.Service,
	summaries repository.SummaryRepository,
	summaryTTL time.Duration,
) *Handler {
	return &Handler{
		generator:  generator,
		planner:    planner,
		drafter:    drafter,
		mailer:     mailer,
		dash:       dash,
		summaries:  summaries,
		summaryTTL: summaryTTL,
		now:        time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/generate-summary", h.generateSummary)
	r.GET("/summaries/:id", h.getSummary)
	r.POST("/generate-action-plan", h.generateActionPlan)
	r.POST("/generate-message", h.generateMessage)
	r.POST("/download-summary", h.downloadSummary)
	r.POST("/share-summary", h.shareSummary)

	r.GET("/api/dashboard/map-data", h.mapData)
	r.GET("/api/dashboard/stats", h.stats)
	r.GET("/api/dashboard/recent-alerts", h.recentAlerts)
	r.GET("/api/dashboard/activity", h.activity)
	r.GET("/api/insights", h.insights)

	r.GET("/health", h.health)
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "error": message})
}

func (h *Handler) generateSummary(c *gin.Context) {
	var query models.DisasterQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		errorJSON(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if strings.TrimSpace(query.DisasterType) == "" {
		errorJSON(c, http.StatusBadRequest, "Disaster type is required")
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrMissingDisasterType):
			errorJSON(c, http.StatusBadRequest, "Disaster type is required")
		case errors.Is(err, agent.ErrRateLimited):
			slog.Warn("summary generation throttled", "disaster_type", query.DisasterType)
			errorJSON(c, http.StatusTooManyRequests, "Agent backend is rate limiting requests. Please try again later.")
		default:
			slog.Error("summary generation failed", "disaster_type", query.DisasterType, "error", err)
			errorJSON(c, http.StatusInternalServerError, "Unable to generate summary. Please try again later.")
		}
		return
	}

	now := h.now()
	summary := &models.Summary{
		ID:           uuid.NewString(),
		DisasterType: query.DisasterType,
		Location:     query.Location,
		Timeframe:    query.Timeframe,
		Markdown:     result.Markdown,
		Report:       result.Report,
		CreatedAt:    now,
		ExpiresAt:    now.Add(h.summaryTTL),
	}
	if err := h.summaries.Save(c.Request.Context(), summary); err != nil {
		// The generated text is still good; losing the stored copy only
		// breaks later retrieval.
		slog.Error("failed to store summary", "id", summary.ID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"summary_id": summary.ID,
		"summary":    result.Markdown,
		"report":     result.Report,
	})
}

func (h *Handler) getSummary(c *gin.Context) {
	summary, err := h.summaries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "summary not found")
			return
		}
		slog.Error("summary lookup failed", "id", c.Param("id"), "error", err)
		errorJSON(c, http.StatusInternalServerError, "failed to fetch summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "summary": summary})
}

func (h *Handler) generateActionPlan(c *gin.Context) {
	var query models.DisasterQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		errorJSON(c, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}
	if strings.TrimSpace(query.DisasterType) == "" {
		errorJSON(c, http.StatusBadRequest, "Disaster type is required")
		return
	}

	plan, err := h.planner.Generate(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrRateLimited):
			errorJSON(c, http.StatusTooManyRequests, "Agent backend is rate limiting requests. Please try again later.")
		case errors.Is(err, actionplan.ErrNoPlan):
			errorJSON(c, http.StatusInternalServerError, "Failed to generate valid action plan")
		default:
			slog.Error("action plan generation failed", "disaster_type", query.DisasterType, "error", err)
			errorJSON(c, http.StatusInternalServerError, "Failed to generate valid action plan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"action_plan": plan,
	})
}

func (h *Handler) generateMessage(c *gin.Context) {
	var req notify.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	message, err := h.drafter.Draft(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, notify.ErrMissingMessageFields):
			errorJSON(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, agent.ErrRateLimited):
			errorJSON(c, http.StatusTooManyRequests, "Agent backend is rate limiting requests. Please try again later.")
		default:
			slog.Error("message drafting failed", "error", err)
			errorJSON(c, http.StatusInternalServerError, "Unable to generate message. Please try again later.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

// SummaryMetadata rides along download and share requests so the transcript
// and email subject can reference the report.
type SummaryMetadata struct {
	DisasterType string `json:"disasterType"`
	Location     string `json:"location"`
	Timeframe    string `json:"timeframe"`
	GeneratedAt  string `json:"generatedAt"`
}

type transcriptRequest struct {
	Content  string          `json:"content"`
	Metadata SummaryMetadata `json:"metadata"`
}

type shareRequest struct {
	Recipients []string        `json:"recipients"`
	Content    string          `json:"content"`
	Metadata   SummaryMetadata `json:"metadata"`
}

func formatTranscript(content string, meta SummaryMetadata) string {
	var sb strings.Builder
	sb.WriteString("Disaster Response Summary\n")
	sb.WriteString("=========================\n")
	if meta.DisasterType != "" {
		sb.WriteString("Disaster Type: " + meta.DisasterType + "\n")
	}
	if meta.Location != "" {
		sb.WriteString("Location: " + meta.Location + "\n")
	}
	if meta.Timeframe != "" {
		sb.WriteString("Timeframe: " + meta.Timeframe + "\n")
	}
	if meta.GeneratedAt != "" {
		sb.WriteString("Generated At: " + meta.GeneratedAt + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	return sb.String()
}

func (h *Handler) downloadSummary(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		errorJSON(c, http.StatusBadRequest, "content is required")
		return
	}

	filename := fmt.Sprintf("disaster-summary-%s.txt", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(formatTranscript(req.Content, req.Metadata)))
}

func (h *Handler) shareSummary(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if len(req.Recipients) == 0 {
		errorJSON(c, http.StatusBadRequest, "at least one recipient is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		errorJSON(c, http.StatusBadRequest, "content is required")
		return
	}

	subject := "Disaster Summary Report"
	if req.Metadata.DisasterType != "" {
		subject += " - " + req.Metadata.DisasterType
	}

	result := h.mailer.SendToAll(req.Recipients, subject, formatTranscript(req.Content, req.Metadata))

	switch {
	case result.AllFailed():
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":                "error",
			"error":                 "failed to deliver to any recipient",
			"successful_recipients": result.Successful,
			"failed_recipients":     result.Failed,
		})
	case result.Partial():
		c.JSON(http.StatusMultiStatus, gin.H{
			"status":                "partial",
			"successful_recipients": result.Successful,
			"failed_recipients":     result.Failed,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":                "success",
			"successful_recipients": result.Successful,
			"failed_recipients":     result.Failed,
		})
	}
}

func (h *Handler) mapData(c *gin.Context) {
	fc := toGeoJSON(h.dash.MapData(c.Request.Context()))
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Stats(c.Request.Context()))
}

func (h *Handler) recentAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alerts": h.dash.RecentAlerts(c.Request.Context())})
}

func (h *Handler) activity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activity": h.dash.Activity(c.Request.Context())})
}

func (h *Handler) insights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   h.dash.Insights(c.Request.Context()),
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
