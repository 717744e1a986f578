package mcp

import (
	"context"

	"github.com/meltforce/liftlog/internal/catalog"
	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/progress"
	"github.com/meltforce/liftlog/internal/workout"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process
// manager) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	State(ctx context.Context) (*models.AppState, error)
	Sessions(ctx context.Context) ([]models.Session, error)
	VolumeByDate(ctx context.Context) ([]progress.VolumePoint, error)
	LoadEvolution(ctx context.Context, exerciseID string) ([]progress.LoadPoint, error)
	GroupDistribution(ctx context.Context) ([]progress.GroupCount, error)
	Catalog(ctx context.Context) ([]models.CatalogExercise, error)
}

// Local serves MCP queries straight from the in-process manager. The
// catalog connection is optional.
type Local struct {
	manager *workout.Manager
	catalog *catalog.DB
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source. cat may be nil.
func NewLocal(manager *workout.Manager, cat *catalog.DB) *Local {
	return &Local{manager: manager, catalog: cat}
}

func (l *Local) State(ctx context.Context) (*models.AppState, error) {
	return l.manager.State(), nil
}

func (l *Local) Sessions(ctx context.Context) ([]models.Session, error) {
	return l.manager.State().Sessions, nil
}

func (l *Local) VolumeByDate(ctx context.Context) ([]progress.VolumePoint, error) {
	return progress.VolumeByDate(l.manager.State().Sessions), nil
}

func (l *Local) LoadEvolution(ctx context.Context, exerciseID string) ([]progress.LoadPoint, error) {
	return progress.LoadEvolution(l.manager.State().Sessions, exerciseID), nil
}

func (l *Local) GroupDistribution(ctx context.Context) ([]progress.GroupCount, error) {
	return progress.CategoryDistribution(l.manager.State().Sessions), nil
}

func (l *Local) Catalog(ctx context.Context) ([]models.CatalogExercise, error) {
	if l.catalog == nil {
		return nil, nil
	}
	return l.catalog.List(ctx)
}
