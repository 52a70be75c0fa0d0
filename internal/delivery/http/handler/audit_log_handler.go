package handler

import (
	"net/http"

	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	auditLogs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), scope, limit, offset)
	if err != nil {
		response.DatabaseError(w, "Failed to get audit logs", err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs.Logs, &response.Meta{
		Limit:  auditLogs.Limit,
		Offset: auditLogs.Offset,
		Total:  auditLogs.Total,
	})
}
