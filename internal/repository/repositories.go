package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"society_hub/pkg/logger"
)

type Repositories struct {
	User         UserRepository
	Conversation ConversationRepository
	Group        GroupRepository
	SocietyFeed  SocietyFeedRepository
	Transaction  TransactionRepository
	Tenant       TenantRepository
	Parking      ParkingRepository
	Vendor       VendorRepository
	Lead         LeadRepository
	Staff        StaffRepository
	Notification NotificationRepository
	Audit        AuditRepository
	RateLimit    RateLimitRepository
}

// reverseChrono переворачивает выборку DESC в хронологический порядок
func reverseChrono[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, feedTTL time.Duration, log logger.Logger) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db, log),
		Conversation: NewConversationRepository(db, log),
		Group:        NewGroupRepository(db, log),
		SocietyFeed:  NewSocietyFeedRepository(redis, feedTTL, log),
		Transaction:  NewTransactionRepository(db, log),
		Tenant:       NewTenantRepository(db, log),
		Parking:      NewParkingRepository(db, log),
		Vendor:       NewVendorRepository(db, log),
		Lead:         NewLeadRepository(db, log),
		Staff:        NewStaffRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Audit:        NewAuditRepository(db, log),
		RateLimit:    NewRateLimitRepository(redis, log),
	}
}
