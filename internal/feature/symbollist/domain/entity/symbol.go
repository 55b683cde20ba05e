// Package entity defines the domain models for the symbollist feature.
package entity

// Symbol represents one entry of the symbol catalog: an exchange ticker
// and the human-readable name shown by the frontend.
// The gorm tags are used only when the catalog is read from a database table.
type Symbol struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"size:32;not null;uniqueIndex"`
	Name     string `gorm:"size:255;not null"`
	IsActive bool   `gorm:"not null;default:true"`
	SortKey  int    `gorm:"not null;default:0"`
}

// TableName はカタログテーブル名を返します。
func (Symbol) TableName() string {
	return "symbols"
}
