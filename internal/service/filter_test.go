package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
)

func TestMatchesQuery(t *testing.T) {
	require.True(t, matchesQuery("", "anything"))
	require.True(t, matchesQuery("plumb", "Monthly plumbing", "maintenance"))
	require.True(t, matchesQuery("PLUMB", "monthly plumbing"))
	require.True(t, matchesQuery("main", "irrelevant", "Maintenance"))
	require.False(t, matchesQuery("electric", "plumbing", "maintenance"))
}

func TestMatchesExact(t *testing.T) {
	require.True(t, matchesExact("", "income"))
	require.True(t, matchesExact(FilterAll, "income"))
	require.True(t, matchesExact("income", "income"))
	require.False(t, matchesExact("expense", "income"))
}

func sampleTransactions(societyID uuid.UUID) []*domain.Transaction {
	return []*domain.Transaction{
		{ID: uuid.New(), SocietyID: societyID, Type: domain.TransactionTypeIncome, Category: "maintenance", Description: "Monthly maintenance fee", Amount: 500, Date: time.Now()},
		{ID: uuid.New(), SocietyID: societyID, Type: domain.TransactionTypeExpense, Category: "maintenance", Description: "Elevator repair", Amount: 1200, Date: time.Now()},
		{ID: uuid.New(), SocietyID: societyID, Type: domain.TransactionTypeExpense, Category: "security", Description: "Guard salary", Amount: 800, Date: time.Now()},
	}
}

func TestFilterTransactionsAndSemantics(t *testing.T) {
	transactions := sampleTransactions(uuid.New())

	// Текстовый поиск и точный фильтр работают совместно (AND)
	result := FilterTransactions(transactions, ListFilter{Query: "maintenance", Type: domain.TransactionTypeExpense})
	require.Len(t, result, 1)
	require.Equal(t, "Elevator repair", result[0].Description)

	// "all" ничего не отсекает
	result = FilterTransactions(transactions, ListFilter{Type: FilterAll, Category: FilterAll})
	require.Len(t, result, 3)

	// Пустой фильтр возвращает всё
	result = FilterTransactions(transactions, ListFilter{})
	require.Len(t, result, 3)

	// Несовпадение любого из условий исключает строку
	result = FilterTransactions(transactions, ListFilter{Query: "guard", Category: "maintenance"})
	require.Empty(t, result)
}

func TestFilterTenants(t *testing.T) {
	tenants := []*domain.Tenant{
		{Name: "Ravi Kumar", UnitNumber: "A-101", Phone: "9000000001", Status: domain.TenantStatusActive},
		{Name: "Anita Shah", UnitNumber: "B-202", Phone: "9000000002", Status: domain.TenantStatusFormer},
	}

	result := FilterTenants(tenants, ListFilter{Query: "a-10"})
	require.Len(t, result, 1)
	require.Equal(t, "Ravi Kumar", result[0].Name)

	result = FilterTenants(tenants, ListFilter{Status: domain.TenantStatusFormer})
	require.Len(t, result, 1)
	require.Equal(t, "Anita Shah", result[0].Name)

	result = FilterTenants(tenants, ListFilter{Query: "ravi", Status: domain.TenantStatusFormer})
	require.Empty(t, result)
}

func TestFilterSlots(t *testing.T) {
	unit := "A-101"
	slots := []*domain.ParkingSlot{
		{SlotNumber: "P-01", SlotType: domain.SlotTypeCar, Status: domain.SlotStatusOccupied, AssignedUnit: &unit},
		{SlotNumber: "P-02", SlotType: domain.SlotTypeBike, Status: domain.SlotStatusAvailable},
	}

	result := FilterSlots(slots, ListFilter{Type: domain.SlotTypeCar})
	require.Len(t, result, 1)
	require.Equal(t, "P-01", result[0].SlotNumber)

	result = FilterSlots(slots, ListFilter{Status: domain.SlotStatusAvailable})
	require.Len(t, result, 1)
	require.Equal(t, "P-02", result[0].SlotNumber)

	// Поиск по закреплённой квартире
	result = FilterSlots(slots, ListFilter{Query: "a-101"})
	require.Len(t, result, 1)
	require.Equal(t, "P-01", result[0].SlotNumber)
}
