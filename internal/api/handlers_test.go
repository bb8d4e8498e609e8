package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesworks/salespipe/internal/domain"
	"github.com/salesworks/salespipe/internal/repository"
)

func newTestServer(t *testing.T) (*httptest.Server, *repository.RunRepo) {
	t.Helper()
	db, err := repository.InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := repository.NewRunRepo(db)
	srv := httptest.NewServer(NewRouter(repo, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, repo
}

func seedRun(t *testing.T, repo *repository.RunRepo, id string) {
	t.Helper()
	run := &domain.Run{
		ID:           id,
		StartedAt:    time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		InputFile:    "data/sales_data.txt",
		TotalInput:   3,
		ValidRecords: 2,
		FinalCount:   2,
		TotalRevenue: 92500.00,
	}
	if err := repo.InsertRun(run, []byte(`{"records_processed":2}`)); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	rows := []domain.EnrichedTransaction{
		{Transaction: domain.Transaction{TransactionID: "T0001", Date: "2024-01-15",
			ProductID: "P101", ProductName: "Laptop", Quantity: 2, UnitPrice: 45000,
			CustomerID: "C001", Region: "North"}, APIMatch: true},
		{Transaction: domain.Transaction{TransactionID: "T0002", Date: "2024-01-16",
			ProductID: "P9999", ProductName: "Mystery Box", Quantity: 1, UnitPrice: 9.99,
			CustomerID: "C002", Region: "South"}},
	}
	if _, err := repo.BulkInsertEnriched(id, rows); err != nil {
		t.Fatalf("BulkInsertEnriched: %v", err)
	}
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestListRuns(t *testing.T) {
	srv, repo := newTestServer(t)
	seedRun(t, repo, "run-1")

	var body struct {
		Runs  []domain.Run `json:"runs"`
		Count int          `json:"count"`
	}
	getJSON(t, srv.URL+"/api/v1/runs", http.StatusOK, &body)

	if body.Count != 1 || len(body.Runs) != 1 {
		t.Fatalf("body = %+v", body)
	}
	if body.Runs[0].ID != "run-1" || body.Runs[0].TotalRevenue != 92500.00 {
		t.Errorf("run = %+v", body.Runs[0])
	}
}

func TestGetRun(t *testing.T) {
	srv, repo := newTestServer(t)
	seedRun(t, repo, "run-1")

	var run domain.Run
	getJSON(t, srv.URL+"/api/v1/runs/run-1", http.StatusOK, &run)
	if run.ID != "run-1" || run.FinalCount != 2 {
		t.Errorf("run = %+v", run)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	getJSON(t, srv.URL+"/api/v1/runs/missing", http.StatusNotFound, &body)
	if body["error"] != "run not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGetRunReport(t *testing.T) {
	srv, repo := newTestServer(t)
	seedRun(t, repo, "run-1")

	var body map[string]any
	getJSON(t, srv.URL+"/api/v1/runs/run-1/report", http.StatusOK, &body)
	if body["records_processed"] != float64(2) {
		t.Errorf("report = %+v", body)
	}

	getJSON(t, srv.URL+"/api/v1/runs/missing/report", http.StatusNotFound, nil)
}

func TestListRunTransactions(t *testing.T) {
	srv, repo := newTestServer(t)
	seedRun(t, repo, "run-1")

	type page struct {
		Transactions []domain.EnrichedTransaction `json:"transactions"`
		Total        int                          `json:"total"`
		Page         int                          `json:"page"`
		Limit        int                          `json:"limit"`
	}

	t.Run("all", func(t *testing.T) {
		var body page
		getJSON(t, srv.URL+"/api/v1/runs/run-1/transactions", http.StatusOK, &body)
		if body.Total != 2 || len(body.Transactions) != 2 {
			t.Fatalf("body = %+v", body)
		}
		if body.Page != 1 || body.Limit != 50 {
			t.Errorf("paging defaults = %d/%d", body.Page, body.Limit)
		}
	})

	t.Run("region filter", func(t *testing.T) {
		var body page
		getJSON(t, srv.URL+"/api/v1/runs/run-1/transactions?region=north", http.StatusOK, &body)
		if body.Total != 1 || body.Transactions[0].Region != "North" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("match filter", func(t *testing.T) {
		var body page
		getJSON(t, srv.URL+"/api/v1/runs/run-1/transactions?match=false", http.StatusOK, &body)
		if body.Total != 1 || body.Transactions[0].TransactionID != "T0002" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("paging", func(t *testing.T) {
		var body page
		getJSON(t, srv.URL+"/api/v1/runs/run-1/transactions?page=2&limit=1", http.StatusOK, &body)
		if body.Total != 2 || len(body.Transactions) != 1 || body.Transactions[0].TransactionID != "T0002" {
			t.Errorf("body = %+v", body)
		}
	})
}
