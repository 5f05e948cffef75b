package dashboard

// Slice is one bucket of a distribution chart, with its share of the total.
type Slice struct {
	Name    string  `json:"name"`
	Value   int64   `json:"value"`
	Percent float64 `json:"percent"`
}

// Stats is the aggregate payload behind the statistics dashboard.
type Stats struct {
	TotalMitra    int64   `json:"totalMitra"`
	MitraAktif    int64   `json:"mitraAktif"`
	TotalSurat    int64   `json:"totalSurat"`
	KategoriMitra []Slice `json:"kategoriMitra"`
	StatusSurat   []Slice `json:"statusSurat"`
}
