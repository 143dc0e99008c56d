package repository

import "time"

// StoreListFilter 查询门店列表的过滤条件
type StoreListFilter struct {
	BrandID uint
	Search  string
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	BrandID uint
	Search  string
}

// ReminderListFilter 查询未处理提醒的过滤条件
// ExpiresBefore 为开区间上界，ExpiresFrom/ExpiresTo 为闭区间
type ReminderListFilter struct {
	StoreID       uint
	ExpiresBefore *time.Time
	ExpiresFrom   *time.Time
	ExpiresTo     *time.Time
}

// HandlingLogListFilter 查询处理日志列表的过滤条件
type HandlingLogListFilter struct {
	Page      int
	PageSize  int
	StoreID   uint
	ProductID uint
	Reason    string
}
