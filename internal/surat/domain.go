package surat

import "time"

// Letter statuses. New submissions start in StatusMenunggu.
const (
	StatusMenunggu  = "Menunggu"
	StatusDisetujui = "Disetujui"
	StatusDitolak   = "Ditolak"
)

// Surat represents a submitted cooperation letter.
type Surat struct {
	ID         string    `json:"id"`
	JenisSurat string    `json:"jenisSurat"`
	Judul      string    `json:"judul"`
	Tujuan     string    `json:"tujuan"`
	Perihal    string    `json:"perihal"`
	Isi        string    `json:"isi"`
	Lampiran   string    `json:"lampiran,omitempty"`
	Status     string    `json:"status"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GroupCount is a grouping bucket used by the dashboard.
type GroupCount struct {
	Name  string
	Count int64
}
