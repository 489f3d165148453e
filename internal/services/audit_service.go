package services

import (
	"go.uber.org/zap"

	"lifeseed/internal/logger"
)

// auditService records mutations to the structured log.
type auditService struct {
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer.
func NewAuditService() AuditServicer {
	return &auditService{log: logger.Named("audit")}
}

// Log records an audit event. It never fails the calling operation.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	fields := []interface{}{
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip_address", ipAddress,
	}
	if changes != nil {
		fields = append(fields, "changes", changes)
	}
	s.log.Infow("audit", fields...)
}
