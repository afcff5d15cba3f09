package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studiofx/platform/internal/model"
)

func TestProjectService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewProjectService(db)
	ctx := context.Background()

	project := &model.Project{
		ID:        "proj-1",
		OwnerID:   "owner-1",
		Name:      "Orbit",
		Slug:      "orbit",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, project)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestProjectService_Create_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewProjectService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, errors.New("unique violation"))

	err := svc.Create(ctx, &model.Project{ID: "proj-1", Slug: "orbit"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create project")
}

func TestProjectService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewProjectService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "proj-1"
		*(dest[1].(*string)) = "owner-1"
		*(dest[2].(*string)) = "Orbit"
		*(dest[3].(*string)) = "orbit"
		*(dest[4].(*string)) = "satellite tracker"
		*(dest[5].(*time.Time)) = now
		*(dest[6].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	project, err := svc.GetByID(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "Orbit", project.Name)
	assert.Equal(t, "orbit", project.Slug)
}

func TestProjectService_List_Pagination(t *testing.T) {
	db := &mockDB{}
	svc := NewProjectService(db)
	ctx := context.Background()

	now := time.Now()
	projectRow := func(id string) func(dest ...any) error {
		return func(dest ...any) error {
			*(dest[0].(*string)) = id
			*(dest[1].(*string)) = "owner-1"
			*(dest[2].(*string)) = id
			*(dest[3].(*string)) = id
			*(dest[4].(*string)) = ""
			*(dest[5].(*time.Time)) = now
			*(dest[6].(*time.Time)) = now
			return nil
		}
	}
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(newMockRows(projectRow("a"), projectRow("b")), nil)

	projects, hasMore, err := svc.List(ctx, 2, "")
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.False(t, hasMore)
}

func TestProjectService_Delete(t *testing.T) {
	db := &mockDB{}
	svc := NewProjectService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	assert.NoError(t, svc.Delete(ctx, "proj-1"))
	db.AssertExpectations(t)
}
