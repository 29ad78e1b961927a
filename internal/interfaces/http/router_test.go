package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/bloodconnect-api/internal/application/analytics"
	"github.com/jhoicas/bloodconnect-api/internal/application/auth"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/excel"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/lock"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/memory"
	"github.com/jhoicas/bloodconnect-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bloodconnect-api/internal/interfaces/http"
	"github.com/jhoicas/bloodconnect-api/pkg/logger"
)

const (
	adminEmail    = "admin@bloodconnect.com"
	adminPassword = "admin123"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

// newTestServer arma la aplicación completa sobre el almacenamiento en memoria.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	s := store.Stores()

	patientUC := usecase.NewPatientUseCase(s.Patients)
	donorUC := usecase.NewDonorUseCase(s.Donors, excel.NewDonorExporter())
	hospitalUC := usecase.NewHospitalUseCase(s.Hospitals, pdf.NewMarotoReportGenerator())
	reviewUC := usecase.NewReviewUseCase(s.Reviews, s.Patients, s.Hospitals, lock.NewLocalLocker())
	authUC := auth.NewAuthUseCase(store, s.Users, map[string]auth.ProfileHandler{
		entity.RolePatient:  patientUC,
		entity.RoleDonor:    donorUC,
		entity.RoleHospital: hospitalUC,
		entity.RoleAdmin:    usecase.NewAdminProfileUseCase(s.Admins),
	}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, logger.Nop().Zerolog())

	_, err := authUC.EnsureDefaultAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	return apphttp.NewApp(apphttp.AppConfig{Name: "bloodconnect-test", CORSOrigins: "*", Log: logger.Nop().Zerolog()},
		apphttp.RouterDeps{
			AuthUC:      authUC,
			PatientUC:   patientUC,
			DonorUC:     donorUC,
			HospitalUC:  hospitalUC,
			ReviewUC:    reviewUC,
			UserUC:      usecase.NewUserUseCase(s.Users, store, reviewUC),
			DashboardUC: appanalytics.NewAdminDashboardUseCase(s.Patients, s.Donors, s.Hospitals, s.Reviews),
			Users:       s.Users,
			JWTSecret:   testJWTSecret,
		})
}

type response struct {
	Status int
	Header http.Header
	Raw    []byte
	Body   map[string]any
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) response {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := response{Status: resp.StatusCode, Header: resp.Header, Raw: raw}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

func data(r response) map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func list(r response) []any {
	l, _ := r.Body["data"].([]any)
	return l
}

func registerUser(t *testing.T, app *fiber.App, body map[string]any) string {
	t.Helper()
	r := call(t, app, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, r.Status, string(r.Raw))
	tok, _ := r.Body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func login(t *testing.T, app *fiber.App, email, password string) response {
	t.Helper()
	return call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": password})
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	r := login(t, app, adminEmail, adminPassword)
	require.Equal(t, http.StatusOK, r.Status, string(r.Raw))
	return r.Body["token"].(string)
}

func patientBody(email, name string) map[string]any {
	return map[string]any{"email": email, "password": "secret123", "role": "patient", "name": name, "bloodGroup": "B+"}
}

func donorBody(email, name, group, city string, age int) map[string]any {
	return map[string]any{
		"email": email, "password": "secret123", "role": "donor",
		"name": name, "age": age, "bloodGroup": group, "city": city, "area": "Central",
		"country": "India", "phone": "999",
	}
}

func hospitalBody(email, name, city string) map[string]any {
	return map[string]any{
		"email": email, "password": "secret123", "role": "hospital",
		"name": name, "address": "1 Main St", "city": city, "area": "Saket", "country": "India",
		"contactNumber": "555",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas y 404
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_BienvenidaSaludY404(t *testing.T) {
	app := newTestServer(t)

	r := call(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "Welcome to Blood Connect API", r.Body["message"])

	r = call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "ok", r.Body["status"])

	r = call(t, app, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, false, r.Body["success"])
	assert.Equal(t, "Route not found", r.Body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RegistroEmailDuplicado(t *testing.T) {
	app := newTestServer(t)
	registerUser(t, app, patientBody("ana@x.com", "Ana"))

	r := call(t, app, http.MethodPost, "/api/auth/register", "", patientBody("ANA@x.com", "Ana 2"))
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "User already exists with this email", r.Body["message"])

	users := call(t, app, http.MethodGet, "/api/admin/users", adminToken(t, app), nil)
	assert.EqualValues(t, 2, users.Body["count"]) // admin + ana
}

func TestRouter_RegistroHospitalIgnoraUnidadesDelCuerpo(t *testing.T) {
	app := newTestServer(t)
	body := hospitalBody("h@x.com", "City Care", "Delhi")
	body["availableBloodUnits"] = []map[string]any{{"bloodGroup": "A+", "units": 50}}
	tok := registerUser(t, app, body)

	r := call(t, app, http.MethodGet, "/api/hospitals/profile", tok, nil)
	require.Equal(t, http.StatusOK, r.Status)
	units := data(r)["availableBloodUnits"].([]any)
	require.Len(t, units, 8)
	for _, u := range units {
		assert.EqualValues(t, 0, u.(map[string]any)["units"])
	}
	assert.Nil(t, data(r)["averageRating"])
}

func TestRouter_RegistroFallidoNoDejaUsuario(t *testing.T) {
	app := newTestServer(t)

	r := call(t, app, http.MethodPost, "/api/auth/register", "", donorBody("kid@x.com", "Kid", "O+", "Delhi", 10))
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "Age must be at least 18", r.Body["message"])

	r = login(t, app, "kid@x.com", "secret123")
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "Invalid credentials", r.Body["message"])
}

func TestRouter_RegistroAdminNoPermitido(t *testing.T) {
	app := newTestServer(t)
	r := call(t, app, http.MethodPost, "/api/auth/register", "",
		map[string]any{"email": "root@x.com", "password": "secret123", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "Invalid role specified", r.Body["message"])
}

func TestRouter_CuerpoInvalido(t *testing.T) {
	app := newTestServer(t)
	r := call(t, app, http.MethodPost, "/api/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "Invalid request body", r.Body["message"])
}

func TestRouter_MeYUpdateProfile(t *testing.T) {
	app := newTestServer(t)
	tok := registerUser(t, app, patientBody("pat@x.com", "Pat"))

	r := call(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, r.Status)
	me := data(r)
	assert.Equal(t, "pat@x.com", me["user"].(map[string]any)["email"])
	assert.Equal(t, "Pat", me["profile"].(map[string]any)["name"])

	r = call(t, app, http.MethodPut, "/api/auth/update-profile", tok, map[string]any{"city": "Pune"})
	require.Equal(t, http.StatusOK, r.Status, string(r.Raw))
	assert.Equal(t, "Pune", data(r)["city"])
	assert.Equal(t, "Pat", data(r)["name"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RutasProtegidas(t *testing.T) {
	app := newTestServer(t)
	donorTok := registerUser(t, app, donorBody("d@x.com", "Dev", "O-", "Delhi", 30))

	r := call(t, app, http.MethodGet, "/api/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "Please login to access this resource", r.Body["message"])

	r = call(t, app, http.MethodGet, "/api/patients", donorTok, nil)
	assert.Equal(t, http.StatusForbidden, r.Status)
	assert.Equal(t, "User role 'donor' is not authorized to access this route", r.Body["message"])

	r = call(t, app, http.MethodGet, "/api/patients", adminToken(t, app), nil)
	assert.Equal(t, http.StatusOK, r.Status)
}

func TestRouter_DesactivarUsuario(t *testing.T) {
	app := newTestServer(t)
	tok := registerUser(t, app, patientBody("p@x.com", "P"))
	me := call(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	userID := data(me)["user"].(map[string]any)["id"].(string)

	admin := adminToken(t, app)
	r := call(t, app, http.MethodPatch, "/api/admin/users/"+userID+"/status", admin, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "User deactivated", r.Body["message"])
	assert.Equal(t, false, data(r)["isActive"])

	r = login(t, app, "p@x.com", "secret123")
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "Account is deactivated. Please contact admin.", r.Body["message"])

	r = call(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "User not found or account is inactive", r.Body["message"])

	r = call(t, app, http.MethodPatch, "/api/admin/users/"+userID+"/status", admin, nil)
	assert.Equal(t, "User activated", r.Body["message"])
	assert.Equal(t, http.StatusOK, login(t, app, "p@x.com", "secret123").Status)
}

func TestRouter_EliminarUsuarioBorraPerfil(t *testing.T) {
	app := newTestServer(t)
	tok := registerUser(t, app, donorBody("gone@x.com", "Gone", "A-", "Delhi", 40))
	me := call(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	userID := data(me)["user"].(map[string]any)["id"].(string)
	admin := adminToken(t, app)

	r := call(t, app, http.MethodDelete, "/api/admin/users/"+userID, admin, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "User deleted successfully", r.Body["message"])

	donors := call(t, app, http.MethodGet, "/api/donors", admin, nil)
	assert.EqualValues(t, 0, donors.Body["count"])

	r = call(t, app, http.MethodDelete, "/api/admin/users/"+userID, admin, nil)
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, "User not found", r.Body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsquedas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_BusquedaDonantes(t *testing.T) {
	app := newTestServer(t)
	registerUser(t, app, donorBody("a@x.com", "A", "O-", "New Delhi", 30))
	registerUser(t, app, donorBody("b@x.com", "B", "O-", "Mumbai", 30))
	registerUser(t, app, donorBody("c@x.com", "C", "A+", "Delhi", 30))
	offTok := registerUser(t, app, donorBody("d@x.com", "D", "O-", "Delhi", 50))
	r := call(t, app, http.MethodPatch, "/api/donors/availability", offTok, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "Availability updated to false", r.Body["message"])

	r = call(t, app, http.MethodGet, "/api/donors/search?bloodGroup=O-&city=del", "", nil)
	require.Equal(t, http.StatusOK, r.Status)
	require.EqualValues(t, 1, r.Body["count"])
	assert.Equal(t, "A", list(r)[0].(map[string]any)["name"])

	r = call(t, app, http.MethodGet, "/api/donors/search?bloodGroup=A%2B", "", nil)
	require.EqualValues(t, 1, r.Body["count"])
	assert.Equal(t, "C", list(r)[0].(map[string]any)["name"])

	r = call(t, app, http.MethodGet, "/api/donors/search?minAge=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, r.Status)
}

func TestRouter_BusquedaHospitalesConStock(t *testing.T) {
	app := newTestServer(t)
	withStock := registerUser(t, app, hospitalBody("h1@x.com", "Stocked", "Delhi"))
	registerUser(t, app, hospitalBody("h2@x.com", "Empty", "Delhi"))

	r := call(t, app, http.MethodPatch, "/api/hospitals/blood-units", withStock, map[string]any{"bloodGroup": "A+", "units": 3})
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "Blood units for A+ updated to 3", r.Body["message"])

	r = call(t, app, http.MethodGet, "/api/hospitals/search?city=delhi&bloodGroup=A%2B", "", nil)
	require.EqualValues(t, 1, r.Body["count"])
	assert.Equal(t, "Stocked", list(r)[0].(map[string]any)["name"])

	r = call(t, app, http.MethodGet, "/api/hospitals/search?city=DEL", "", nil)
	assert.EqualValues(t, 2, r.Body["count"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario de sangre
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_UnidadesDeSangre(t *testing.T) {
	app := newTestServer(t)
	tok := registerUser(t, app, hospitalBody("h@x.com", "H", "Delhi"))

	r := call(t, app, http.MethodPatch, "/api/hospitals/blood-units", tok, map[string]any{"bloodGroup": "O-", "units": -5})
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "Blood units for O- updated to 0", r.Body["message"])

	r = call(t, app, http.MethodPatch, "/api/hospitals/blood-units", tok, map[string]any{"bloodGroup": "O-"})
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "Please provide blood group and units", r.Body["message"])

	r = call(t, app, http.MethodPatch, "/api/hospitals/blood-units", tok, map[string]any{"bloodGroup": "X+", "units": 1})
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, "Blood group not found", r.Body["message"])

	r = call(t, app, http.MethodPatch, "/api/hospitals/blood-units", tok,
		map[string]any{"bloodGroup": "B+", "units": 20, "criticalLevel": 10})
	require.Equal(t, http.StatusOK, r.Status)

	r = call(t, app, http.MethodGet, "/api/hospitals/critical-units", tok, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.EqualValues(t, 7, r.Body["count"])

	r = call(t, app, http.MethodGet, "/api/hospitals/blood-units/report", tok, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(r.Raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reseñas y rating
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ReseñasMantienenAverageRating(t *testing.T) {
	app := newTestServer(t)
	hTok := registerUser(t, app, hospitalBody("h@x.com", "City Care", "Delhi"))
	p1 := registerUser(t, app, patientBody("p1@x.com", "P1"))
	p2 := registerUser(t, app, patientBody("p2@x.com", "P2"))
	admin := adminToken(t, app)

	hospital := data(call(t, app, http.MethodGet, "/api/hospitals/profile", hTok, nil))
	hospitalID := hospital["id"].(string)
	rating := func() any {
		return data(call(t, app, http.MethodGet, "/api/hospitals/profile", hTok, nil))["averageRating"]
	}

	r := call(t, app, http.MethodPost, "/api/reviews", p1, map[string]any{"hospitalId": hospitalID, "rating": 5, "comment": "Great"})
	require.Equal(t, http.StatusCreated, r.Status, string(r.Raw))
	assert.Equal(t, "Review submitted successfully", r.Body["message"])
	assert.Equal(t, "City Care", data(r)["hospital"].(map[string]any)["name"])
	firstID := data(r)["id"].(string)

	r = call(t, app, http.MethodPost, "/api/reviews", p2, map[string]any{"hospitalId": hospitalID, "rating": 2, "comment": "Slow"})
	require.Equal(t, http.StatusCreated, r.Status)
	assert.EqualValues(t, 3.5, rating())

	r = call(t, app, http.MethodPost, "/api/reviews", p1, map[string]any{"hospitalId": hospitalID, "rating": 1, "comment": "Again"})
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "You have already reviewed this hospital", r.Body["message"])

	r = call(t, app, http.MethodPatch, "/api/reviews/"+firstID+"/approval", admin, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "Review unapproved", r.Body["message"])
	assert.EqualValues(t, 2, rating())

	public := call(t, app, http.MethodGet, "/api/reviews/hospital/"+hospitalID, "", nil)
	assert.EqualValues(t, 1, public.Body["count"])

	mine := call(t, app, http.MethodGet, "/api/reviews/my-reviews", p1, nil)
	assert.EqualValues(t, 1, mine.Body["count"])

	all := call(t, app, http.MethodGet, "/api/reviews", admin, nil)
	require.EqualValues(t, 2, all.Body["count"])
	secondID := list(all)[0].(map[string]any)["id"].(string)

	r = call(t, app, http.MethodDelete, "/api/reviews/"+secondID, admin, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "Review deleted successfully", r.Body["message"])
	assert.Nil(t, rating())

	r = call(t, app, http.MethodDelete, "/api/reviews/"+secondID, admin, nil)
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, "Review not found", r.Body["message"])
}

func TestRouter_ReseñaValidaciones(t *testing.T) {
	app := newTestServer(t)
	p := registerUser(t, app, patientBody("p@x.com", "P"))

	r := call(t, app, http.MethodPost, "/api/reviews", p, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "Please provide hospital ID, rating, and comment", r.Body["message"])

	r = call(t, app, http.MethodPost, "/api/reviews", p, map[string]any{"hospitalId": "nope", "rating": 5, "comment": "x"})
	assert.Equal(t, http.StatusNotFound, r.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_DashboardYActividad(t *testing.T) {
	app := newTestServer(t)
	hTok := registerUser(t, app, hospitalBody("h@x.com", "City Care", "Delhi"))
	registerUser(t, app, patientBody("p@x.com", "Pat"))
	offTok := registerUser(t, app, donorBody("d1@x.com", "D1", "O-", "Delhi", 30))
	registerUser(t, app, donorBody("d2@x.com", "D2", "O+", "Delhi", 30))
	call(t, app, http.MethodPatch, "/api/donors/availability", offTok, nil)
	call(t, app, http.MethodPatch, "/api/hospitals/blood-units", hTok, map[string]any{"bloodGroup": "A+", "units": 6})
	admin := adminToken(t, app)

	r := call(t, app, http.MethodGet, "/api/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, r.Status)
	stats := data(r)
	assert.EqualValues(t, 1, stats["totalPatients"])
	assert.EqualValues(t, 2, stats["totalDonors"])
	assert.EqualValues(t, 1, stats["totalHospitals"])
	assert.EqualValues(t, 0, stats["totalReviews"])
	assert.EqualValues(t, 1, stats["activeDonors"])
	assert.EqualValues(t, 7, stats["criticalBloodUnits"])

	r = call(t, app, http.MethodGet, "/api/admin/activity-logs", admin, nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.EqualValues(t, 4, r.Body["count"])
	messages := make([]string, 0, 4)
	for _, it := range list(r) {
		messages = append(messages, it.(map[string]any)["message"].(string))
	}
	assert.Contains(t, messages, "New donor registered: D2")
	assert.Contains(t, messages, "New hospital registered: City Care")
}

func TestRouter_ExportarDonantes(t *testing.T) {
	app := newTestServer(t)
	registerUser(t, app, donorBody("d@x.com", "D", "O-", "Delhi", 30))

	r := call(t, app, http.MethodGet, "/api/admin/donors/export", adminToken(t, app), nil)
	require.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", r.Header.Get("Content-Type"))
	assert.Contains(t, r.Header.Get("Content-Disposition"), "donors-")
	assert.True(t, bytes.HasPrefix(r.Raw, []byte("PK")))
}
