package db

import "time"

// Record 是所有可在后台管理的内容表共享的列。
// 不使用 gorm.Model：删除必须是物理删除，隐藏只通过 Active 标记完成。
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Active    bool      `gorm:"not null;index" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Base exposes the shared columns of any entity embedding Record.
func (r *Record) Base() *Record {
	return r
}

// Ordered 为可排序的内容提供展示顺序，排序规则为 (sort_order, id) 升序。
type Ordered struct {
	SortOrder int `gorm:"not null;index" json:"order"`
}

// Position returns the address of the display position.
func (o *Ordered) Position() *int {
	return &o.SortOrder
}
