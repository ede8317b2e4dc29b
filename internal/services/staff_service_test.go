package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/university-service/internal/models"
)

func TestStaffService_SupervisorMustExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Staff().Create(ctx, staffRequest("x@uni.edu", "T-1", ptr(uint(404))))
	require.ErrorIs(t, err, ErrValidationFailed)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "supervisor_id", verrs[0].Field)

	// a professor id is not a staff member
	prof, err := env.manager.Professor().Create(ctx, professorRequest("p@uni.edu", "E-1"))
	require.NoError(t, err)
	_, err = env.manager.Staff().Create(ctx, staffRequest("x@uni.edu", "T-1", ptr(prof.ID())))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestStaffService_SupervisorRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Staff()

	head, err := svc.Create(ctx, staffRequest("head@uni.edu", "T-10", nil))
	require.NoError(t, err)
	mid, err := svc.Create(ctx, staffRequest("mid@uni.edu", "T-11", ptr(head.ID())))
	require.NoError(t, err)
	clerk, err := svc.Create(ctx, staffRequest("clerk@uni.edu", "T-12", ptr(mid.ID())))
	require.NoError(t, err)
	assert.Equal(t, mid.ID(), *clerk.Staff.SupervisorID)

	t.Run("self", func(t *testing.T) {
		_, err := svc.Update(ctx, head.ID(), &models.StaffPatch{SupervisorID: ptr(head.ID())})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("cycle through the chain", func(t *testing.T) {
		_, err := svc.Update(ctx, head.ID(), &models.StaffPatch{SupervisorID: ptr(clerk.ID())})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("reassign", func(t *testing.T) {
		updated, err := svc.Update(ctx, clerk.ID(), &models.StaffPatch{SupervisorID: ptr(head.ID())})
		require.NoError(t, err)
		assert.Equal(t, head.ID(), *updated.Staff.SupervisorID)
	})

	t.Run("zero clears", func(t *testing.T) {
		updated, err := svc.Update(ctx, clerk.ID(), &models.StaffPatch{SupervisorID: ptr(uint(0))})
		require.NoError(t, err)
		assert.Nil(t, updated.Staff.SupervisorID)
		assert.Nil(t, updated.ToMap()["supervisor_id"])
	})
}

func TestStaffService_DeleteDetachesSubordinates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Staff()

	boss, err := svc.Create(ctx, staffRequest("boss@uni.edu", "T-20", nil))
	require.NoError(t, err)
	report, err := svc.Create(ctx, staffRequest("report@uni.edu", "T-21", ptr(boss.ID())))
	require.NoError(t, err)

	// cached with the old supervisor
	cached, err := svc.GetByID(ctx, report.ID())
	require.NoError(t, err)
	require.NotNil(t, cached.Staff.SupervisorID)

	require.NoError(t, svc.Delete(ctx, boss.ID()))

	got, err := svc.GetByID(ctx, report.ID())
	require.NoError(t, err)
	assert.Nil(t, got.Staff.SupervisorID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, report.ID(), list[0].ID())
}
