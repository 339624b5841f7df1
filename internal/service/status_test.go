package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
)

func TestInvoiceTransitions(t *testing.T) {
	require.True(t, validInvoiceTransition(domain.InvoiceStatusPending, domain.InvoiceStatusApproved))
	require.True(t, validInvoiceTransition(domain.InvoiceStatusPending, domain.InvoiceStatusRejected))
	require.True(t, validInvoiceTransition(domain.InvoiceStatusApproved, domain.InvoiceStatusPaid))

	require.False(t, validInvoiceTransition(domain.InvoiceStatusPending, domain.InvoiceStatusPaid))
	require.False(t, validInvoiceTransition(domain.InvoiceStatusPaid, domain.InvoiceStatusPending))
	require.False(t, validInvoiceTransition(domain.InvoiceStatusRejected, domain.InvoiceStatusApproved))
}

func TestLeadTransitions(t *testing.T) {
	require.True(t, validLeadTransition(domain.LeadStatusOpen, domain.LeadStatusContacted))
	require.True(t, validLeadTransition(domain.LeadStatusOpen, domain.LeadStatusClosed))
	require.True(t, validLeadTransition(domain.LeadStatusContacted, domain.LeadStatusClosed))

	require.False(t, validLeadTransition(domain.LeadStatusClosed, domain.LeadStatusOpen))
	require.False(t, validLeadTransition(domain.LeadStatusContacted, domain.LeadStatusOpen))
}

func TestBookingTransitions(t *testing.T) {
	require.True(t, validBookingTransition(domain.BookingStatusPending, domain.BookingStatusConfirmed))
	require.True(t, validBookingTransition(domain.BookingStatusPending, domain.BookingStatusCancelled))
	require.True(t, validBookingTransition(domain.BookingStatusConfirmed, domain.BookingStatusPaid))
	require.True(t, validBookingTransition(domain.BookingStatusConfirmed, domain.BookingStatusCancelled))

	require.False(t, validBookingTransition(domain.BookingStatusPaid, domain.BookingStatusPending))
	require.False(t, validBookingTransition(domain.BookingStatusCancelled, domain.BookingStatusConfirmed))
	require.False(t, validBookingTransition(domain.BookingStatusPending, domain.BookingStatusPaid))
}

func TestAgreementTransitions(t *testing.T) {
	require.True(t, validAgreementTransition(domain.AgreementStatusDraft, domain.AgreementStatusActive))
	require.True(t, validAgreementTransition(domain.AgreementStatusDraft, domain.AgreementStatusTerminated))
	require.True(t, validAgreementTransition(domain.AgreementStatusActive, domain.AgreementStatusExpired))
	require.True(t, validAgreementTransition(domain.AgreementStatusActive, domain.AgreementStatusTerminated))

	require.False(t, validAgreementTransition(domain.AgreementStatusExpired, domain.AgreementStatusActive))
	require.False(t, validAgreementTransition(domain.AgreementStatusTerminated, domain.AgreementStatusDraft))
	require.False(t, validAgreementTransition(domain.AgreementStatusDraft, domain.AgreementStatusExpired))
}
