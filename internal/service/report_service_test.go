package service

import (
	"context"
	"testing"
	"time"
)

func TestHandledRateRounding(t *testing.T) {
	cases := []struct {
		handled, total int64
		want           string
	}{
		{0, 0, "0.0000"},
		{0, 4, "0.0000"},
		{1, 3, "0.3333"},
		{2, 3, "0.6667"},
		{5, 5, "1.0000"},
	}
	for _, tc := range cases {
		if got := handledRate(tc.handled, tc.total); got != tc.want {
			t.Fatalf("handledRate(%d,%d) want %s got %s", tc.handled, tc.total, tc.want, got)
		}
	}
}

func TestExpiredHandlingReportGroupsAndOrders(t *testing.T) {
	f := setupServiceFixture(t)
	bread, err := f.catalog.CreateProduct(CreateProductInput{BrandID: f.brand.ID, Name: "Bread", ShelfLifeDays: 1})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	harbor, err := f.catalog.CreateStore(f.brand.ID, "Harbor")
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	past := fixtureNow.AddDate(0, 0, -3)
	f.createBatch(t, 2, past)
	if _, err := f.ledger.CreateBatch(CreateBatchInput{StoreID: f.store.ID, ProductID: bread.ID, Quantity: 1, PrintedAt: &past}); err != nil {
		t.Fatalf("create bread batch failed: %v", err)
	}
	if _, err := f.ledger.CreateBatch(CreateBatchInput{StoreID: harbor.ID, ProductID: f.product.ID, Quantity: 4, PrintedAt: &past}); err != nil {
		t.Fatalf("create harbor batch failed: %v", err)
	}
	// 未过期批次不进入报表
	future := fixtureNow
	if _, err := f.ledger.CreateBatch(CreateBatchInput{StoreID: harbor.ID, ProductID: bread.ID, Quantity: 3, PrintedAt: &future}); err != nil {
		t.Fatalf("create fresh batch failed: %v", err)
	}

	report, err := f.report.ExpiredHandling(context.Background(), ReportQueryInput{})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("three expired groups expected, got %+v", report.Rows)
	}
	if report.Rows[0].StoreID != f.store.ID || report.Rows[0].ProductID != f.product.ID || report.Rows[0].ExpiredTotalCount != 2 {
		t.Fatalf("unexpected first row: %+v", report.Rows[0])
	}
	if report.Rows[1].StoreID != f.store.ID || report.Rows[1].ProductID != bread.ID || report.Rows[1].ExpiredUnhandledCount != 1 {
		t.Fatalf("unexpected second row: %+v", report.Rows[1])
	}
	if report.Rows[2].StoreID != harbor.ID || report.Rows[2].ExpiredTotalCount != 4 || report.Rows[2].HandledRate != "0.0000" {
		t.Fatalf("unexpected third row: %+v", report.Rows[2])
	}

	// 时间推进后新批次也计入
	f.clock.Advance(48 * time.Hour)
	report, err = f.report.ExpiredHandling(context.Background(), ReportQueryInput{ForceRefresh: true})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(report.Rows) != 4 {
		t.Fatalf("four expired groups expected after time passes, got %d", len(report.Rows))
	}
}

func TestCachedReportTurnsStaleWhenReminderCrossesExpiry(t *testing.T) {
	f := setupServiceFixture(t)
	f.createBatch(t, 2, fixtureNow)
	expiresAt := fixtureNow.AddDate(0, 0, f.product.ShelfLifeDays)

	cached := &ExpiredHandlingReport{GeneratedAt: fixtureNow}
	if !f.report.cachedReportCurrent(cached, expiresAt.Add(-time.Minute)) {
		t.Fatalf("cache should stay current before any reminder expires")
	}
	if f.report.cachedReportCurrent(cached, expiresAt.Add(time.Minute)) {
		t.Fatalf("cache should be stale once a reminder crosses expiry")
	}
	if f.report.cachedReportCurrent(&ExpiredHandlingReport{}, fixtureNow) {
		t.Fatalf("cache without generated_at should be treated as stale")
	}
	if f.report.cachedReportCurrent(cached, fixtureNow.Add(-time.Hour)) {
		t.Fatalf("cache generated in the future should be treated as stale")
	}
}
