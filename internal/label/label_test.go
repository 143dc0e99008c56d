package label

import (
	"strings"
	"testing"
	"time"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/models"
)

func labelFixture() (*models.Batch, *models.Product, *models.Store) {
	printedAt := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	batch := &models.Batch{
		ID:        42,
		StoreID:   3,
		ProductID: 9,
		Quantity:  12,
		PrintedAt: printedAt,
		ExpiresAt: printedAt.AddDate(0, 0, 3),
	}
	secondary := "zh"
	product := &models.Product{
		ID:                9,
		Name:              "Fresh Milk",
		ShelfLifeDays:     3,
		LabelLanguage:     constants.LabelLanguageBilingual,
		PrimaryLanguage:   "en",
		SecondaryLanguage: &secondary,
	}
	store := &models.Store{ID: 3, Name: "Central"}
	return batch, product, store
}

func TestRenderIsDeterministic(t *testing.T) {
	batch, product, store := labelFixture()
	settings := SettingsFromStore(store)

	first := Render(batch, product, store, settings)
	second := Render(batch, product, store, settings)
	if first.Text != second.Text {
		t.Fatalf("render should be byte identical:\n%s\n---\n%s", first.Text, second.Text)
	}
}

func TestRenderBilingual(t *testing.T) {
	batch, product, store := labelFixture()
	result := Render(batch, product, store, SettingsFromStore(store))

	if result.Template != constants.LabelLanguageBilingual {
		t.Fatalf("template want bilingual got %s", result.Template)
	}
	if len(result.Languages) != 2 || result.Languages[0] != "en" || result.Languages[1] != "zh" {
		t.Fatalf("unexpected languages: %v", result.Languages)
	}
	for _, want := range []string{"Fresh Milk", "#42", "Central", "Languages: en, zh", "Printed: 2026-03-01 08:30 UTC", "Expires: 2026-03-04 08:30 UTC"} {
		if !strings.Contains(result.Text, want) {
			t.Fatalf("label text missing %q:\n%s", want, result.Text)
		}
	}
	if result.BatchID != 42 || result.ProductName != "Fresh Milk" || result.StoreName != "Central" {
		t.Fatalf("unexpected label metadata: %+v", result)
	}
}

func TestRenderSingleUsesPrimaryOnly(t *testing.T) {
	batch, product, store := labelFixture()
	product.LabelLanguage = constants.LabelLanguageSingle
	result := Render(batch, product, store, SettingsFromStore(store))

	if result.Template != constants.LabelLanguageSingle {
		t.Fatalf("template want single got %s", result.Template)
	}
	if len(result.Languages) != 1 || result.Languages[0] != "en" {
		t.Fatalf("unexpected languages: %v", result.Languages)
	}
	if !strings.HasSuffix(result.Text, "Languages: en") {
		t.Fatalf("text should end with languages line:\n%s", result.Text)
	}
}

func TestRenderChangesWithInputs(t *testing.T) {
	batch, product, store := labelFixture()
	before := Render(batch, product, store, SettingsFromStore(store)).Text

	batch.ID = 43
	after := Render(batch, product, store, SettingsFromStore(store)).Text
	if before == after {
		t.Fatalf("label text should change when batch id changes")
	}
}

func TestRenderDistinguishesTimeOfDay(t *testing.T) {
	batch, product, store := labelFixture()
	morning := Render(batch, product, store, SettingsFromStore(store)).Text

	batch.PrintedAt = batch.PrintedAt.Add(6 * time.Hour)
	batch.ExpiresAt = batch.ExpiresAt.Add(6 * time.Hour)
	afternoon := Render(batch, product, store, SettingsFromStore(store)).Text
	if morning == afternoon {
		t.Fatalf("same-day batches printed at different times should render differently")
	}
	if !strings.Contains(afternoon, "Printed: 2026-03-01 14:30 UTC") {
		t.Fatalf("label text missing printed time:\n%s", afternoon)
	}
}

func TestSettingsFromStoreDefaultsWidth(t *testing.T) {
	settings := SettingsFromStore(&models.Store{Name: "Central"})
	if settings.LabelWidthMM != constants.DefaultLabelWidthMM {
		t.Fatalf("label width want %d got %d", constants.DefaultLabelWidthMM, settings.LabelWidthMM)
	}

	width := 80
	port := 9100
	address := "10.0.0.8"
	settings = SettingsFromStore(&models.Store{LabelWidthMM: &width, PrinterPort: &port, PrinterAddress: &address})
	if settings.LabelWidthMM != 80 || settings.Port == nil || *settings.Port != 9100 || *settings.Address != address {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}
