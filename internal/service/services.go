package service

import (
	"society_hub/internal/config"
	"society_hub/internal/repository"
	"society_hub/pkg/logger"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Chat         ChatService
	Group        GroupService
	SocietyFeed  SocietyFeedService
	Transaction  TransactionService
	Tenant       TenantService
	Parking      ParkingService
	Vendor       VendorService
	Lead         LeadService
	Staff        StaffService
	Notification NotificationService
	Audit        AuditService
	RateLimit    RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	auditSvc := NewAuditService(repos.Audit, log)
	notifSvc := NewNotificationService(repos.Notification, repos.User, cfg.Chat.PageSize, log)

	return &Services{
		Auth:         NewAuthService(repos.User, cfg.JWT, log),
		User:         NewUserService(repos.User, auditSvc, log),
		Chat:         NewChatService(repos.Conversation, repos.User, cfg.Chat.MaxMessageLength, cfg.Chat.PageSize, log),
		Group:        NewGroupService(repos.Group, repos.User, repos.Notification, auditSvc, cfg.Chat.MaxMessageLength, cfg.Chat.PageSize, log),
		SocietyFeed:  NewSocietyFeedService(repos.SocietyFeed, cfg.Chat.MaxMessageLength, cfg.Chat.PageSize, log),
		Transaction:  NewTransactionService(repos.Transaction, log),
		Tenant:       NewTenantService(repos.Tenant, auditSvc, log),
		Parking:      NewParkingService(repos.Parking, notifSvc, auditSvc, log),
		Vendor:       NewVendorService(repos.Vendor, auditSvc, log),
		Lead:         NewLeadService(repos.Lead, notifSvc, auditSvc, log),
		Staff:        NewStaffService(repos.Staff, log),
		Notification: notifSvc,
		Audit:        auditSvc,
		RateLimit:    NewRateLimitService(repos.RateLimit, log),
	}
}
