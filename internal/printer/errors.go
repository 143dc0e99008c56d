package printer

import "errors"

// ErrNoPrinterAddress 门店未配置打印机地址
var ErrNoPrinterAddress = errors.New("printer address is not configured")
