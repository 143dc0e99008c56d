package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/freshguard/internal/models"
)

func TestIssueGeneratesUpperHexCode(t *testing.T) {
	f := setupServiceFixture(t)

	code, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if !regexp.MustCompile(`^[0-9A-F]{8}$`).MatchString(code.Code) {
		t.Fatalf("generated code should be 8 upper hex chars, got %s", code.Code)
	}
	if code.ExpiresAt == nil || !code.ExpiresAt.Equal(fixtureNow.Add(24*time.Hour)) {
		t.Fatalf("default expiry should be 24h, got %v", code.ExpiresAt)
	}
	if code.BrandID != f.brand.ID || code.StoreID != f.store.ID {
		t.Fatalf("code should be scoped to store and brand: %+v", code)
	}
}

func TestIssueRejectsExpiryBeyondCap(t *testing.T) {
	f := setupServiceFixture(t)

	for _, hours := range []float64{maxBindingExpiresHours + 1, 1e12, math.Inf(1), math.NaN()} {
		h := hours
		if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, ExpiresInHours: &h}); !errors.Is(err, ErrBindingCodeExpiresIn) {
			t.Fatalf("expires_in_hours=%v want ErrBindingCodeExpiresIn got %v", hours, err)
		}
	}
	if n := countRows(t, f.db, &models.BindingCode{}); n != 0 {
		t.Fatalf("rejected issue should not persist codes, got %d", n)
	}

	limit := float64(maxBindingExpiresHours)
	code, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, ExpiresInHours: &limit})
	if err != nil {
		t.Fatalf("issue at cap failed: %v", err)
	}
	if !code.ExpiresAt.After(fixtureNow) {
		t.Fatalf("expiry at cap should be in the future, got %v", code.ExpiresAt)
	}
}

func TestIssueFractionalHoursAndValidation(t *testing.T) {
	f := setupServiceFixture(t)

	half := 0.5
	code, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, ExpiresInHours: &half})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if !code.ExpiresAt.Equal(fixtureNow.Add(30 * time.Minute)) {
		t.Fatalf("expiry want now+30m got %v", code.ExpiresAt)
	}

	for _, hours := range []float64{0, -1} {
		h := hours
		if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, ExpiresInHours: &h}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expires_in_hours=%v want InvalidArgument got %v", hours, err)
		}
	}
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: 9999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown store want NotFound got %v", err)
	}
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "ab"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("short explicit code want InvalidArgument got %v", err)
	}
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "bad code!"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("invalid explicit code want InvalidArgument got %v", err)
	}
}

func TestIssueExplicitCodeNormalizedAndUnique(t *testing.T) {
	f := setupServiceFixture(t)

	code, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "  store-one "})
	if err != nil {
		t.Fatalf("issue explicit failed: %v", err)
	}
	if code.Code != "STORE-ONE" {
		t.Fatalf("explicit code should be trimmed and upper-cased, got %q", code.Code)
	}
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "STORE-ONE"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate explicit code want Conflict got %v", err)
	}
}

func TestConsumeBindsDeviceOnce(t *testing.T) {
	f := setupServiceFixture(t)
	code, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "BIND-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	result, err := f.binding.Consume(" bind-1 ", " device-a ")
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if result.Store.ID != f.store.ID || result.BindingCode.ID != code.ID {
		t.Fatalf("unexpected consume result: %+v", result)
	}
	if result.BindingCode.BoundDeviceID == nil || *result.BindingCode.BoundDeviceID != "device-a" {
		t.Fatalf("device id should be trimmed and bound, got %v", result.BindingCode.BoundDeviceID)
	}
	if result.BindingCode.UsedAt == nil || !result.BindingCode.UsedAt.Equal(fixtureNow) {
		t.Fatalf("used_at should be clock now, got %v", result.BindingCode.UsedAt)
	}

	if _, err := f.binding.Consume("BIND-1", "device-b"); !errors.Is(err, ErrConflict) {
		t.Fatalf("second consume want Conflict got %v", err)
	}
	var stored models.BindingCode
	if err := f.db.First(&stored, code.ID).Error; err != nil {
		t.Fatalf("reload code failed: %v", err)
	}
	if stored.BoundDeviceID == nil || *stored.BoundDeviceID != "device-a" {
		t.Fatalf("bound device must stay immutable, got %v", stored.BoundDeviceID)
	}
}

func TestConsumeEmptyDeviceStoredAsNull(t *testing.T) {
	f := setupServiceFixture(t)
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "NODEVICE"}); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	result, err := f.binding.Consume("nodevice", "   ")
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if result.BindingCode.BoundDeviceID != nil {
		t.Fatalf("blank device id should be null, got %v", *result.BindingCode.BoundDeviceID)
	}
}

func TestConsumeRejectsEmptyUnknownAndExpired(t *testing.T) {
	f := setupServiceFixture(t)

	if _, err := f.binding.Consume("   ", "d"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty code want InvalidArgument got %v", err)
	}
	if _, err := f.binding.Consume("NOPE", "d"); !errors.Is(err, ErrBindingCodeInvalid) {
		t.Fatalf("unknown code want invalid binding code got %v", err)
	}

	hours := 1.0
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "LATE", ExpiresInHours: &hours}); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	f.clock.Advance(time.Hour + time.Second)
	if _, err := f.binding.Consume("LATE", "d"); !errors.Is(err, ErrExpired) {
		t.Fatalf("expired code want Expired got %v", err)
	}
	if countUsed := countUsedCodes(t, f); countUsed != 0 {
		t.Fatalf("expired consume must not mark code used, got %d", countUsed)
	}
}

func TestConsumeConcurrentSingleWinner(t *testing.T) {
	f := setupServiceFixture(t)
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "RACE"}); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	const contenders = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []string
		conflicts int
		others    []error
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			device := fmt.Sprintf("device-%d", idx)
			_, err := f.binding.Consume("RACE", device)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, device)
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	if len(others) > 0 {
		t.Fatalf("unexpected consume errors: %v", others)
	}
	if len(winners) != 1 || conflicts != contenders-1 {
		t.Fatalf("want exactly one winner, got winners=%v conflicts=%d", winners, conflicts)
	}
	var stored models.BindingCode
	if err := f.db.Where("code = ?", "RACE").First(&stored).Error; err != nil {
		t.Fatalf("reload code failed: %v", err)
	}
	if stored.BoundDeviceID == nil || *stored.BoundDeviceID != winners[0] {
		t.Fatalf("bound device want %s got %v", winners[0], stored.BoundDeviceID)
	}
}

func TestListBindingCodesNewestFirst(t *testing.T) {
	f := setupServiceFixture(t)
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "FIRST"}); err != nil {
		t.Fatalf("issue first failed: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := f.binding.Issue(IssueBindingCodeInput{StoreID: f.store.ID, Code: "SECOND"}); err != nil {
		t.Fatalf("issue second failed: %v", err)
	}
	codes, err := f.binding.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(codes) != 2 || codes[0].Code != "SECOND" {
		t.Fatalf("codes should be newest first: %+v", codes)
	}
	if codes[0].Store == nil || codes[0].Store.Name != "Central" || codes[0].Brand == nil || codes[0].Brand.Name != "Acme Fresh" {
		t.Fatalf("codes should include store and brand: %+v", codes[0])
	}
}

func countUsedCodes(t *testing.T, f *serviceFixture) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&models.BindingCode{}).Where("used_at IS NOT NULL").Count(&count).Error; err != nil {
		t.Fatalf("count used codes failed: %v", err)
	}
	return count
}
