package mitra

import "time"

// Mitra represents a partner institution with a cooperation agreement.
type Mitra struct {
	ID           string    `json:"id"`
	Nama         string    `json:"nama"`
	Kategori     string    `json:"kategori"`
	TanggalMulai time.Time `json:"tanggalMulai"`
	TanggalAkhir time.Time `json:"tanggalAkhir"`
	Status       string    `json:"status"`
	Alamat       string    `json:"alamat,omitempty"`
	Kontak       string    `json:"kontak,omitempty"`
	Email        string    `json:"email,omitempty"`
	Website      string    `json:"website,omitempty"`
	Deskripsi    string    `json:"deskripsi,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GroupCount is a grouping bucket used by the dashboard.
type GroupCount struct {
	Name  string
	Count int64
}
