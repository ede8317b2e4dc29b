package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/university-service/internal/models"
)

func TestExportService_ExportRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Student().Create(ctx, studentRequest("a@uni.edu", "S-1"))
	require.NoError(t, err)
	_, err = env.manager.Student().Create(ctx, studentRequest("b@uni.edu", "S-2"))
	require.NoError(t, err)

	data, err := env.manager.Export().ExportRoster(ctx, models.RoleStudent)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"student"}, f.GetSheetList())

	rows, err := f.GetRows("student")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.ColumnsForRole(models.RoleStudent), rows[0])

	header := rows[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %s missing", name)
		return -1
	}
	assert.Equal(t, "a@uni.edu", rows[1][col("email")])
	assert.Equal(t, "S-2", rows[2][col("student_id")])
	assert.Equal(t, "2023-09-01", rows[1][col("enrollment_date")])
}

func TestExportService_EmptyRoster(t *testing.T) {
	env := newTestEnv(t)

	data, err := env.manager.Export().ExportRoster(context.Background(), models.RoleStaff)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("staff")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
