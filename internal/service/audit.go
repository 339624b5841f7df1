package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"society_hub/internal/domain"
	"society_hub/internal/repository"
	"society_hub/pkg/logger"
)

// AuditService - журнал административных действий (кто, что, когда)
type AuditService interface {
	LogEvent(ctx context.Context, actorUserID *uuid.UUID, actorRole string, societyID *uuid.UUID, eventType string, payload map[string]interface{}) error
}

type auditService struct {
	auditRepo repository.AuditRepository
	log       logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log logger.Logger) AuditService {
	return &auditService{auditRepo: auditRepo, log: log}
}

func (s *auditService) LogEvent(ctx context.Context, actorUserID *uuid.UUID, actorRole string, societyID *uuid.UUID, eventType string, payload map[string]interface{}) error {
	if actorRole == "" {
		actorRole = domain.ActorRoleSystem
	}

	auditLog := &domain.AuditLog{
		EventTime:   time.Now(),
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		SocietyID:   societyID,
		EventType:   eventType,
		Payload:     payload,
	}

	return s.auditRepo.CreateLog(ctx, auditLog)
}
