package projects

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/oka8489/migiude-ai-v3/internal/data/repos/testutil"
	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
)

func testDBC(t *testing.T) dbctx.Context {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestProjectRepoCreateAndGet(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))

	amount := int64(12000000)
	created, err := repo.Create(dbc, &types.Project{
		ProjectType:    types.ProjectTypePast,
		ProjectCode:    "R4-01",
		ProjectName:    "令和4年度 道路改良工事",
		ContractAmount: &amount,
		Location:       "大分県日田市",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ProjectCode != "R4-01" || got.ProjectName != "令和4年度 道路改良工事" {
		t.Fatalf("unexpected row: %#v", got)
	}
	if got.ContractAmount == nil || *got.ContractAmount != amount {
		t.Fatalf("contract amount not persisted: %#v", got.ContractAmount)
	}
}

func TestProjectRepoGetByIDMissing(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))

	got, err := repo.GetByID(dbc, 999999)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row, got %#v", got)
	}
}

func TestProjectRepoCountByCodePrefix(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))

	for _, code := range []string{"R4-01", "R4-02", "H29-01"} {
		if _, err := repo.Create(dbc, &types.Project{ProjectCode: code}); err != nil {
			t.Fatalf("Create %s: %v", code, err)
		}
	}

	count, err := repo.CountByCodePrefix(dbc, "R4")
	if err != nil {
		t.Fatalf("CountByCodePrefix: %v", err)
	}
	if count != 2 {
		t.Fatalf("count for R4 = %d, want 2", count)
	}

	// "R" alone must not swallow R4 codes: the separator is part of the match.
	count, err = repo.CountByCodePrefix(dbc, "R")
	if err != nil {
		t.Fatalf("CountByCodePrefix: %v", err)
	}
	if count != 0 {
		t.Fatalf("count for bare R = %d, want 0", count)
	}
}

func TestProjectRepoHydratesFromRaw(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))

	// Rows written under relational_mode "json" carry data only in raw_json.
	raw := `{"project_name":"舗装補修工事","location":"大分県日田市","contract_amount":5000000}`
	created, err := repo.Create(dbc, &types.Project{
		ProjectCode: "R5-01",
		Raw:         datatypes.JSON(raw),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProjectName != "舗装補修工事" {
		t.Fatalf("project name not hydrated from raw: %q", got.ProjectName)
	}
	if got.Location != "大分県日田市" {
		t.Fatalf("location not hydrated from raw: %q", got.Location)
	}
	if got.ContractAmount == nil || *got.ContractAmount != 5000000 {
		t.Fatalf("contract amount not hydrated: %#v", got.ContractAmount)
	}
}

func TestProjectRepoUpdateSyncFlags(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))

	created, err := repo.Create(dbc, &types.Project{ProjectCode: "R4-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	yes := true
	if err := repo.UpdateSyncFlags(dbc, created.ID, &yes, nil); err != nil {
		t.Fatalf("UpdateSyncFlags: %v", err)
	}

	got, _ := repo.GetByID(dbc, created.ID)
	if !got.SavedToGraph {
		t.Fatal("saved_to_graph not updated")
	}
	if got.SavedToVector {
		t.Fatal("saved_to_vector must be untouched when nil")
	}
}

func TestProjectRepoDeleteCascadesDesignDocuments(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))
	docRepo := NewDesignDocumentRepo(testutil.DB(t), testutil.Logger(t))

	created, err := repo.Create(dbc, &types.Project{ProjectCode: "R4-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := docRepo.Create(dbc, &types.DesignDocument{
		ProjectID:     created.ID,
		DocumentTitle: "特記仕様書",
	}); err != nil {
		t.Fatalf("Create design doc: %v", err)
	}

	removed, err := repo.Delete(dbc, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to report removal")
	}

	docs, err := docRepo.GetByProjectID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByProjectID: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("design documents survived project delete: %d rows", len(docs))
	}

	removed, err = repo.Delete(dbc, created.ID)
	if err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if removed {
		t.Fatal("second delete should report no row")
	}
}

func TestDesignDocumentRepoRoundTrip(t *testing.T) {
	dbc := testDBC(t)
	repo := NewProjectRepo(testutil.DB(t), testutil.Logger(t))
	docRepo := NewDesignDocumentRepo(testutil.DB(t), testutil.Logger(t))

	project, err := repo.Create(dbc, &types.Project{ProjectCode: "R4-01"})
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}

	days := int64(180)
	created, err := docRepo.Create(dbc, &types.DesignDocument{
		ProjectID:      project.ID,
		DocumentTitle:  "特記仕様書",
		BudgetCategory: "国費",
		ContractDays:   &days,
		Quantities:     datatypes.JSON(`[{"item":"アスファルト合材","quantity":"1,200ｔ"}]`),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := docRepo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.DocumentTitle != "特記仕様書" || got.BudgetCategory != "国費" {
		t.Fatalf("unexpected row: %#v", got)
	}

	byProject, err := docRepo.GetByProjectID(dbc, project.ID)
	if err != nil {
		t.Fatalf("GetByProjectID: %v", err)
	}
	if len(byProject) != 1 {
		t.Fatalf("expected 1 doc for project, got %d", len(byProject))
	}
}
