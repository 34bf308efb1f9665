package detect

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"detector-backend/internal/history"
	"detector-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the detection service.
type Handler struct {
	Svc     *Service
	History *history.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, hist *history.Service) *Handler {
	return &Handler{Svc: svc, History: hist}
}

// RegisterRoutes attaches detection routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/detections", h.createDetection)
	rg.GET("/detections", h.listDetections)
	rg.POST("/verifications", h.createVerification)
}

type detectionRequest struct {
	Content      string `json:"content"`
	BinaryBase64 string `json:"binaryBase64"`
	FileName     string `json:"fileName"`
	MimeType     string `json:"mimeType"`
	Kind         string `json:"kind"`
}

func (h *Handler) createDetection(c *gin.Context) {
	var body detectionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req := AnalysisRequest{
		Content:  body.Content,
		FileName: body.FileName,
		MimeType: body.MimeType,
		Kind:     ContentKind(strings.ToLower(strings.TrimSpace(body.Kind))),
	}
	if body.BinaryBase64 != "" {
		binary, err := base64.StdEncoding.DecodeString(body.BinaryBase64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "binaryBase64 is not valid base64", nil)
			return
		}
		req.Binary = binary
	}

	result, err := h.Svc.RunClassification(c.Request.Context(), req)
	if err != nil {
		if IsValidation(err) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run detection", nil)
		return
	}

	respond.OK(c, result)
}

type verificationRequest struct {
	Content string `json:"content"`
	Kind    string `json:"kind"`
}

func (h *Handler) createVerification(c *gin.Context) {
	var body verificationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	kind := ContentKind(strings.ToLower(strings.TrimSpace(body.Kind)))
	report, err := h.Svc.RunVerification(c.Request.Context(), body.Content, kind)
	if err != nil {
		if IsValidation(err) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run verification", nil)
		return
	}

	respond.OK(c, report)
}

func (h *Handler) listDetections(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	records, err := h.History.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list detections", nil)
		return
	}
	respond.OK(c, gin.H{"detections": records})
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
