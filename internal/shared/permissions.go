package shared

// Permission names provisioned at seed time. Matching is case-sensitive.
const (
	PermKelolaDataCentral        = "kelola_data_central"
	PermKelolaMitra              = "kelola_mitra"
	PermKelolaHakAkses           = "kelola_hak_akses"
	PermKelolaDashboardStatistik = "kelola_dashboard_statistik"
	PermAjukanSurat              = "ajukan_surat"
	PermKelolaDataMitraTertentu  = "kelola_data_mitra_tertentu"
	PermLihatDashboardStatistik  = "lihat_dashboard_statistik"
	PermLihatDataKerjasama       = "lihat_data_kerjasama"
)
