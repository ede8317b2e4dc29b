package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/university-service/internal/models"
)

func TestProfessorService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Professor()

	created, err := svc.Create(ctx, professorRequest("turing@uni.edu", "E-200"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleProfessor, created.Role())

	updated, err := svc.Update(ctx, created.ID(), &models.ProfessorPatch{
		Title:        ptr(models.TitleFull),
		ResearchArea: ptr("Computability"),
		HireDate:     ptr("2016-03-01"),
	})
	require.NoError(t, err)
	fields := updated.ToMap()
	assert.Equal(t, "Full", fields["title"])
	assert.Equal(t, "Computability", fields["research_area"])
	assert.Equal(t, "2016-03-01", fields["hire_date"])
	assert.Equal(t, "Mathematics", fields["department"])

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Full", *list[0].Professor.Title)

	require.NoError(t, svc.Delete(ctx, created.ID()))
	_, err = svc.GetByID(ctx, created.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfessorService_RejectsUnknownTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := professorRequest("lecturer@uni.edu", "E-201")
	req.Title = ptr("Emeritus")
	_, err := env.manager.Professor().Create(ctx, req)
	assert.ErrorIs(t, err, ErrValidationFailed)

	created, err := env.manager.Professor().Create(ctx, professorRequest("lecturer@uni.edu", "E-201"))
	require.NoError(t, err)
	_, err = env.manager.Professor().Update(ctx, created.ID(), &models.ProfessorPatch{Title: ptr("Dean")})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestProfessorService_EmployeeIDUniquePerTable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Professor().Create(ctx, professorRequest("a@uni.edu", "E-300"))
	require.NoError(t, err)

	_, err = env.manager.Professor().Create(ctx, professorRequest("b@uni.edu", "E-300"))
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	// staff and professors keep separate employee id spaces
	_, err = env.manager.Staff().Create(ctx, staffRequest("c@uni.edu", "E-300", nil))
	assert.NoError(t, err)
}
