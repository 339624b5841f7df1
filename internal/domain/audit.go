package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID          int64                  `json:"id"`
	EventTime   time.Time              `json:"event_time"`
	ActorUserID *uuid.UUID             `json:"actor_user_id,omitempty"`
	ActorRole   string                 `json:"actor_role"`
	SocietyID   *uuid.UUID             `json:"society_id,omitempty"`
	EventType   string                 `json:"event_type"`
	Payload     map[string]interface{} `json:"payload"`
}

const (
	ActorRoleUser   = "user"
	ActorRoleAdmin  = "admin"
	ActorRoleSystem = "system"
)

const (
	EventTypeGroupCreated     = "GROUP_CREATED"
	EventTypeGroupDeleted     = "GROUP_DELETED"
	EventTypeTenantDeleted    = "TENANT_DELETED"
	EventTypeSlotAssigned     = "SLOT_ASSIGNED"
	EventTypeSlotUnassigned   = "SLOT_UNASSIGNED"
	EventTypeStatusChanged    = "STATUS_CHANGED"
	EventTypeUserSuspended    = "USER_SUSPENDED"
	EventTypeUserUnsuspended  = "USER_UNSUSPENDED"
	EventTypeInvoiceStatusSet = "INVOICE_STATUS_SET"
)
