package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

func TestSetSuspendedRequiresAdmin(t *testing.T) {
	societyID := uuid.New()
	resident := testUser(societyID)
	target := testUser(societyID)

	svc := NewUserService(newMockUserRepo(resident, target), &mockAudit{}, logger.New("error"))

	err := svc.SetSuspended(context.Background(), resident, target.ID, true)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.False(t, target.IsSuspended)
}

func TestSetSuspendedNotSelf(t *testing.T) {
	societyID := uuid.New()
	admin := testUser(societyID)
	admin.Role = domain.RoleAdmin

	svc := NewUserService(newMockUserRepo(admin), &mockAudit{}, logger.New("error"))

	err := svc.SetSuspended(context.Background(), admin, admin.ID, true)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSetSuspendedCrossSociety(t *testing.T) {
	admin := testUser(uuid.New())
	admin.Role = domain.RoleAdmin
	outsider := testUser(uuid.New())

	svc := NewUserService(newMockUserRepo(admin, outsider), &mockAudit{}, logger.New("error"))

	err := svc.SetSuspended(context.Background(), admin, outsider.ID, true)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSetSuspendedWritesAudit(t *testing.T) {
	societyID := uuid.New()
	admin := testUser(societyID)
	admin.Role = domain.RoleAdmin
	target := testUser(societyID)

	audit := &mockAudit{}
	svc := NewUserService(newMockUserRepo(admin, target), audit, logger.New("error"))

	require.NoError(t, svc.SetSuspended(context.Background(), admin, target.ID, true))
	require.True(t, target.IsSuspended)
	require.Contains(t, audit.events, domain.EventTypeUserSuspended)

	require.NoError(t, svc.SetSuspended(context.Background(), admin, target.ID, false))
	require.False(t, target.IsSuspended)
	require.Contains(t, audit.events, domain.EventTypeUserUnsuspended)
}

func TestNotificationSettingsDefaults(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)

	svc := NewUserService(newMockUserRepo(alice), &mockAudit{}, logger.New("error"))

	// До первого сохранения все уведомления включены
	settings, err := svc.GetNotificationSettings(context.Background(), alice.ID)
	require.NoError(t, err)
	require.True(t, settings.ChatEnabled)
	require.True(t, settings.BookingsEnabled)
	require.True(t, settings.PaymentsEnabled)
	require.True(t, settings.EmailEnabled)

	settings.ChatEnabled = false
	require.NoError(t, svc.UpdateNotificationSettings(context.Background(), alice.ID, settings))

	saved, err := svc.GetNotificationSettings(context.Background(), alice.ID)
	require.NoError(t, err)
	require.False(t, saved.ChatEnabled)
}

func TestListMembersFilters(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	alice.DisplayName = "Alice Verma"
	bob := testUser(societyID)
	bob.DisplayName = "Bob Singh"
	outsider := testUser(uuid.New())

	svc := NewUserService(newMockUserRepo(alice, bob, outsider), &mockAudit{}, logger.New("error"))

	members, err := svc.ListMembers(context.Background(), societyID, ListFilter{})
	require.NoError(t, err)
	require.Len(t, members, 2)

	members, err = svc.ListMembers(context.Background(), societyID, ListFilter{Query: "alice"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "Alice Verma", members[0].DisplayName)
}
