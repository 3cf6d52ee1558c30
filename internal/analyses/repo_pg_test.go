package analyses

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"agriboost-backend/internal/soil"
	"agriboost-backend/internal/vision"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	completed := time.Now().UTC()
	analysis := Analysis{
		ID:     "analysis-1",
		UserID: "user-1",
		Status: StatusCompleted,
		Form: FormData{
			LocationLandDetails: LocationLandDetails{VillageCity: "Nashik", State: "Maharashtra", LandSizeAcres: 4.5, SoilType: "black"},
			CropInformation:     CropInformation{CropType: "wheat", TargetYieldQuintalsPerAcre: 20, BudgetRs: 50000},
			FarmingPractices:    FarmingPractices{IrrigationMethod: "drip", FertilizerUse: "organic"},
		},
		SoilReportData: soil.Empty(),
		SoilReportKey:  "user-1/abc/report.pdf",
		CreatedAt:      time.Now().UTC(),
		CompletedAt:    &completed,
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			analysis.Status,
			sqlmock.AnyArg(), // form_data
			sqlmock.AnyArg(), // soil_report_data
			nil,              // image_analysis
			sql.NullString{String: analysis.SoilReportKey, Valid: true},
			sql.NullString{},
			sql.NullString{},
			analysis.CreatedAt,
			sql.NullTime{Time: completed, Valid: true},
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateWithImageAnalysis(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := Analysis{
		ID:             "analysis-2",
		UserID:         "user-1",
		Status:         StatusCompleted,
		SoilReportData: soil.Empty(),
		ImageAnalysis: &vision.Result{
			DetectedLabels:  []vision.Label{{Label: "wheat", Score: 0.92}},
			DetectedObjects: []vision.Object{},
		},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			analysis.Status,
			sqlmock.AnyArg(), // form_data
			sqlmock.AnyArg(), // soil_report_data
			[]byte(`{"detected_labels":[{"label":"wheat","score":0.92}],"detected_objects":[],"error":null}`),
			sql.NullString{},
			sql.NullString{},
			sql.NullString{},
			analysis.CreatedAt,
			sql.NullTime{},
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func analysisColumns() []string {
	return []string{
		"id", "user_id", "status", "form_data", "soil_report_data", "image_analysis",
		"soil_report_key", "crop_image_key", "error_message", "created_at", "completed_at",
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows(analysisColumns()).AddRow(
		"analysis-1", "user-1", StatusCompleted,
		[]byte(`{"location_land_details":{"village_city":"Nashik","state":"Maharashtra","land_size_acres":4.5,"soil_type":"black"},"crop_information":{"crop_type":"wheat","previous_yield_quintals_per_acre":null,"target_yield_quintals_per_acre":20,"budget_rs":50000},"farming_practices":{"irrigation_method":"drip","fertilizer_use":"organic","current_pest_issues":null}}`),
		[]byte(`{"pH":6.8,"Nitrogen (kg/ha)":null,"Phosphorus (kg/ha)":null,"Potassium (kg/ha)":null,"Organic Carbon (%)":null}`),
		nil,
		"user-1/abc/report.pdf", nil, nil, created, nil,
	)

	mock.ExpectQuery("FROM analyses").
		WithArgs("analysis-1", "user-1").
		WillReturnRows(rows)

	analysis, err := repo.GetByID(context.Background(), "user-1", "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if analysis.Form.CropInformation.CropType != "wheat" {
		t.Fatalf("unexpected crop type %q", analysis.Form.CropInformation.CropType)
	}
	ph := analysis.SoilReportData[soil.KeyPH]
	if ph == nil || *ph != 6.8 {
		t.Fatalf("unexpected pH value %v", ph)
	}
	if analysis.SoilReportData[soil.KeyNitrogen] != nil {
		t.Fatal("nitrogen should be nil")
	}
	if analysis.ImageAnalysis != nil {
		t.Fatal("image analysis should be nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("FROM analyses").
		WithArgs("missing", "user-1").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows(analysisColumns()).
		AddRow("a-2", "user-1", StatusCompleted, []byte(`{}`), []byte(`{}`), nil, nil, nil, nil, created, nil).
		AddRow("a-1", "user-1", StatusCompleted, []byte(`{}`), []byte(`{}`), nil, nil, nil, nil, created.Add(-time.Hour), nil)

	mock.ExpectQuery("FROM analyses").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "user-1", 0, -1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a-2" {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
