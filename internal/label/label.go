// Package label 将批次、商品与门店渲染为可打印的标签文本。
// 渲染结果只依赖入参，不读取当前时间。
package label

import (
	"fmt"
	"strings"
	"time"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/models"
)

const timeLayout = "2006-01-02 15:04 UTC"

// PrinterSettings 门店打印机目标
type PrinterSettings struct {
	Name         *string `json:"printer_name"`
	Model        *string `json:"printer_model"`
	Address      *string `json:"printer_address"`
	Port         *int    `json:"printer_port"`
	DPI          *int    `json:"printer_dpi"`
	LabelWidthMM int     `json:"label_width_mm"`
}

// Label 渲染结果
type Label struct {
	ProductName string          `json:"product_name"`
	BatchID     uint            `json:"batch_id"`
	StoreName   string          `json:"store_name"`
	Template    string          `json:"template"`
	Languages   []string        `json:"languages"`
	Text        string          `json:"text"`
	Printer     PrinterSettings `json:"printer"`
}

// SettingsFromStore 从门店读取打印机设置，宽度缺省 58mm
func SettingsFromStore(store *models.Store) PrinterSettings {
	settings := PrinterSettings{LabelWidthMM: constants.DefaultLabelWidthMM}
	if store == nil {
		return settings
	}
	settings.Name = store.PrinterName
	settings.Model = store.PrinterModel
	settings.Address = store.PrinterAddress
	settings.Port = store.PrinterPort
	settings.DPI = store.PrinterDPI
	if store.LabelWidthMM != nil && *store.LabelWidthMM > 0 {
		settings.LabelWidthMM = *store.LabelWidthMM
	}
	return settings
}

// Languages 根据商品标签模板返回有序语言列表
func Languages(product *models.Product) (string, []string) {
	if product == nil {
		return constants.LabelLanguageSingle, []string{constants.DefaultPrimaryLanguage}
	}
	primary := strings.TrimSpace(product.PrimaryLanguage)
	if primary == "" {
		primary = constants.DefaultPrimaryLanguage
	}
	if product.LabelLanguage == constants.LabelLanguageBilingual && product.SecondaryLanguage != nil {
		return constants.LabelLanguageBilingual, []string{primary, strings.TrimSpace(*product.SecondaryLanguage)}
	}
	return constants.LabelLanguageSingle, []string{primary}
}

// Render 渲染标签
func Render(batch *models.Batch, product *models.Product, store *models.Store, settings PrinterSettings) Label {
	template, languages := Languages(product)
	result := Label{
		Template:  template,
		Languages: languages,
		Printer:   settings,
	}
	if product != nil {
		result.ProductName = product.Name
	}
	if store != nil {
		result.StoreName = store.Name
	}

	var printedAt, expiresAt time.Time
	var quantity int
	if batch != nil {
		result.BatchID = batch.ID
		printedAt = batch.PrintedAt
		expiresAt = batch.ExpiresAt
		quantity = batch.Quantity
	}

	lines := []string{
		fmt.Sprintf("Product: %s", result.ProductName),
	}
	if product != nil && product.SKU != nil && strings.TrimSpace(*product.SKU) != "" {
		lines = append(lines, fmt.Sprintf("SKU: %s", strings.TrimSpace(*product.SKU)))
	}
	lines = append(lines,
		fmt.Sprintf("Batch: #%d", result.BatchID),
		fmt.Sprintf("Store: %s", result.StoreName),
		fmt.Sprintf("Quantity: %d", quantity),
		fmt.Sprintf("Printed: %s", formatTime(printedAt)),
		fmt.Sprintf("Expires: %s", formatTime(expiresAt)),
		fmt.Sprintf("Template: %s", template),
		fmt.Sprintf("Languages: %s", strings.Join(languages, ", ")),
	)
	result.Text = strings.Join(lines, "\n")
	return result
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(timeLayout)
}
