package dto

import "time"

// Tipos de actividad del feed de administración.
const (
	ActivityPatientRegister  = "PATIENT_REGISTER"
	ActivityDonorRegister    = "DONOR_REGISTER"
	ActivityHospitalRegister = "HOSPITAL_REGISTER"
	ActivityReviewSubmitted  = "REVIEW_SUBMITTED"
)

// DashboardStatsDTO respuesta de GET /api/admin/dashboard.
// CriticalBloodUnits cuenta pares (hospital, grupo) con units <= 5, sin mirar criticalLevel.
type DashboardStatsDTO struct {
	TotalPatients      int `json:"totalPatients"`
	TotalDonors        int `json:"totalDonors"`
	TotalHospitals     int `json:"totalHospitals"`
	TotalReviews       int `json:"totalReviews"`
	ActiveDonors       int `json:"activeDonors"`
	CriticalBloodUnits int `json:"criticalBloodUnits"`
}

// ActivityDTO entrada sintetizada del feed de actividad.
type ActivityDTO struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
