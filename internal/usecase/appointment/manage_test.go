package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func book(t *testing.T, repo *fakeRepo, actor Actor, barber uint, date, clock string) *dto.AppointmentView {
	t.Helper()
	v, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		Actor: actor, BarberID: uintPtr(barber), ServiceID: 1, Date: date, Time: clock,
	})
	require.NoError(t, err)
	return v
}

func TestCancelTwiceIsIdempotent(t *testing.T) {
	for _, actor := range []Actor{customer, admin} {
		repo := newFakeRepo()
		v := book(t, repo, customer, 1, "2025-06-10", "09:00")
		uc := NewCancelAppointment(repo, nil, fixedNow)

		first, err := uc.Execute(context.Background(), actor, v.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCanceled), first.Status)

		second, err := uc.Execute(context.Background(), actor, v.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCanceled), second.Status)
	}
}

func TestNonOwnerIsForbidden(t *testing.T) {
	repo := newFakeRepo()
	v := book(t, repo, customer, 1, "2025-06-10", "09:00")

	_, err := NewCancelAppointment(repo, nil, fixedNow).Execute(context.Background(), otherCustomer, v.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = NewUpdateAppointment(repo, nil, nil, fixedNow).Execute(context.Background(), UpdateAppointmentInput{
		Actor: otherCustomer, AppointmentID: v.ID, Notes: strPtr("x"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	err = NewDeleteAppointment(repo, nil).Execute(context.Background(), otherCustomer, v.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = NewSetStatus(repo, nil, fixedNow).Execute(context.Background(), otherCustomer, v.ID, "finalizado")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	assert.Equal(t, 1, repo.count())
}

func TestOwnerAndAdminCanUpdateAndDelete(t *testing.T) {
	repo := newFakeRepo()
	update := NewUpdateAppointment(repo, nil, nil, fixedNow)
	del := NewDeleteAppointment(repo, nil)

	v := book(t, repo, customer, 1, "2025-06-10", "09:00")

	got, err := update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: v.ID, Notes: strPtr("beard too"),
	})
	require.NoError(t, err)
	assert.Equal(t, "beard too", got.Notes)

	got, err = update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: admin, AppointmentID: v.ID, Time: strPtr("10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30", got.Time)
	assert.Equal(t, "2025-06-10", got.Date)

	require.NoError(t, del.Execute(context.Background(), customer, v.ID))

	w := book(t, repo, customer, 1, "2025-06-10", "09:00")
	require.NoError(t, del.Execute(context.Background(), admin, w.ID))
	assert.Zero(t, repo.count())
}

func TestDeleteAllowsAnyStatus(t *testing.T) {
	repo := newFakeRepo()
	v := book(t, repo, customer, 1, "2025-06-10", "09:00")

	assert.NoError(t, NewDeleteAppointment(repo, nil).Execute(context.Background(), customer, v.ID))
}

func TestNotFound(t *testing.T) {
	repo := newFakeRepo()

	_, err := NewCancelAppointment(repo, nil, fixedNow).Execute(context.Background(), admin, 404)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))

	err = NewDeleteAppointment(repo, nil).Execute(context.Background(), admin, 404)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestUpdateRejectsTakenSlotAndPast(t *testing.T) {
	repo := newFakeRepo()
	update := NewUpdateAppointment(repo, nil, nil, fixedNow)

	book(t, repo, otherCustomer, 1, "2025-06-10", "11:00")
	mine := book(t, repo, customer, 1, "2025-06-10", "09:00")

	_, err := update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: mine.ID, Time: strPtr("11:00"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))

	_, err = update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: mine.ID, Date: strPtr("2025-06-01"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePastDateTime))

	got, err := update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: mine.ID, BarberID: uintPtr(2), Time: strPtr("11:00"),
	})
	require.NoError(t, err, "other barber is free at 11:00")
	assert.Equal(t, "Second Barber", got.BarberName)

	_, err = update.Execute(context.Background(), UpdateAppointmentInput{Actor: customer, AppointmentID: mine.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoFields))
}

func TestUpdateRejectsOffGridTimeAndInactiveService(t *testing.T) {
	repo := newFakeRepo()
	update := NewUpdateAppointment(repo, nil, nil, fixedNow)
	mine := book(t, repo, customer, 1, "2025-06-10", "09:00")

	for _, clock := range []string{"09:17", "23:00"} {
		_, err := update.Execute(context.Background(), UpdateAppointmentInput{
			Actor: customer, AppointmentID: mine.ID, Time: strPtr(clock),
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateTime), clock)
	}

	_, err := update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: mine.ID, ServiceID: uintPtr(3),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))

	got, err := update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: mine.ID, ServiceID: uintPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "Beard", got.ServiceName)
	assert.Equal(t, "09:00", got.Time)
}

func TestUpdateStatusGoesThroughStateMachine(t *testing.T) {
	repo := newFakeRepo()
	update := NewUpdateAppointment(repo, nil, nil, fixedNow)
	v := book(t, repo, customer, 1, "2025-06-10", "09:00")

	got, err := update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: v.ID, Status: strPtr("cancelado"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), got.Status)

	_, err = update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: v.ID, Status: strPtr("agendado"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatusTransition))

	_, err = update.Execute(context.Background(), UpdateAppointmentInput{
		Actor: customer, AppointmentID: v.ID, Status: strPtr("whatever"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

func TestSetStatus(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSetStatus(repo, nil, fixedNow)
	v := book(t, repo, customer, 1, "2025-06-10", "09:00")

	got, err := uc.Execute(context.Background(), admin, v.ID, "finalizado")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFinalized), got.Status)
	assert.Equal(t, string(domain.StatusFinalized), got.StoredStatus)

	_, err = uc.Execute(context.Background(), admin, v.ID, "canceled")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatusTransition))

	_, err = uc.Execute(context.Background(), admin, v.ID, "finalized")
	assert.NoError(t, err, "same status is a no-op")
}

func TestListAppliesEffectiveStatus(t *testing.T) {
	repo := newFakeRepo()
	book(t, repo, customer, 1, "2025-06-10", "09:00")

	later := func() time.Time { return fixedNow().Add(48 * time.Hour) }
	views, err := NewListAppointments(repo, later).Execute(context.Background(), ListInput{Actor: customer})
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, string(domain.StatusFinalized), views[0].Status)
	assert.Equal(t, string(domain.StatusScheduled), views[0].StoredStatus)
}

func TestListVisibility(t *testing.T) {
	repo := newFakeRepo()
	list := NewListAppointments(repo, fixedNow)

	book(t, repo, customer, 1, "2025-06-10", "09:00")
	book(t, repo, otherCustomer, 1, "2025-06-10", "09:30")
	book(t, repo, otherCustomer, 2, "2025-06-11", "09:30")

	mine, err := list.Execute(context.Background(), ListInput{Actor: customer})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := list.Execute(context.Background(), ListInput{Actor: admin})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = list.Execute(context.Background(), ListInput{Actor: customer, UserID: uintPtr(11)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	theirs, err := list.Execute(context.Background(), ListInput{Actor: admin, UserID: uintPtr(11)})
	require.NoError(t, err)
	assert.Len(t, theirs, 2)

	day, err := list.Execute(context.Background(), ListInput{Actor: admin, Date: "2025-06-10"})
	require.NoError(t, err)
	assert.Len(t, day, 2)

	byBarber, err := list.Execute(context.Background(), ListInput{Actor: admin, BarberID: uintPtr(2)})
	require.NoError(t, err)
	assert.Len(t, byBarber, 1)
}

