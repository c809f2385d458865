package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"skill-twin/internal/config"
	"skill-twin/internal/database"
	"skill-twin/internal/database/migration"
	dbpostgres "skill-twin/internal/database/postgres"
	"skill-twin/internal/delivery/http/middleware"
	"skill-twin/internal/delivery/http/routes"
	"skill-twin/internal/domain/alignment"
	"skill-twin/internal/repository"
	"skill-twin/internal/usecase"
	"skill-twin/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginData struct {
	AccessToken string `json:"access_token"`
}

type twinNodeItem struct {
	SkillID      uuid.UUID `json:"skill_id"`
	Name         string    `json:"name"`
	MasteryLevel float64   `json:"mastery_level"`
	IsGap        bool      `json:"is_gap"`
}

type twinData struct {
	UserID         uuid.UUID      `json:"user_id"`
	Nodes          []twinNodeItem `json:"nodes"`
	TotalSkills    int            `json:"total_skills"`
	AverageMastery float64        `json:"average_mastery"`
}

type skillGapItem struct {
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	IsMandatory bool      `json:"is_mandatory"`
}

type alignmentData struct {
	OverallReadiness float64        `json:"overall_readiness"`
	SkillMatchScore  float64        `json:"skill_match_score"`
	MandatoryMet     bool           `json:"mandatory_met"`
	SkillGaps        []skillGapItem `json:"skill_gaps"`
}

type roadmapData struct {
	ID              uuid.UUID `json:"id"`
	OverallProgress float64   `json:"overall_progress"`
	HoursCompleted  float64   `json:"hours_completed"`
	Completed       bool      `json:"completed"`
}

func TestIntegration_Login_Twin_Alignment_Progress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	tok := loginAndGetJWT(t, app)
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	alignmentUC := usecase.NewAlignmentUsecase(
		repository.NewPostgresRoleRepository(db),
		repository.NewPostgresMasteryRepository(db),
		repository.NewPostgresUserRepository(db),
	)

	res, err := alignmentUC.CalculateAlignment(ctx, seed.userID, seed.roleID)
	if err != nil {
		t.Fatalf("alignment error: %v", err)
	}
	if res.OverallReadiness < 0 || res.OverallReadiness > 1 {
		t.Fatalf("alignment: expected overall_readiness in [0,1], got %f", res.OverallReadiness)
	}
	if res.MandatoryMet {
		t.Fatalf("alignment: expected mandatory_met=false (Docker is missing)")
	}
	if !containsGapName(res.SkillGaps, "Docker") {
		t.Fatalf("alignment: expected skill_gaps to contain Docker")
	}

	twin := callTwin(t, app, tok)
	if twin.UserID != seed.userID {
		t.Fatalf("twin: expected user_id=%s, got %s", seed.userID, twin.UserID)
	}
	if !containsNodeWithMastery(twin.Nodes, "Go", 0.8) {
		t.Fatalf("twin: expected node Go with mastery_level=0.8")
	}

	al := callAlignment(t, app, tok, seed.roleID)
	if al.MandatoryMet {
		t.Fatalf("alignment endpoint: expected mandatory_met=false")
	}
	found := false
	for _, g := range al.SkillGaps {
		if g.SkillName == "Docker" {
			found = true
			if !g.IsMandatory {
				t.Fatalf("alignment endpoint: expected Docker gap to be mandatory")
			}
			break
		}
	}
	if !found {
		t.Fatalf("alignment endpoint: expected Docker in skill_gaps")
	}

	rm := callProgress(t, app, tok, seed.roadmapID, seed.resourceIDs[0])
	if rm.ID != seed.roadmapID {
		t.Fatalf("progress: expected roadmap id=%s, got %s", seed.roadmapID, rm.ID)
	}
	if rm.OverallProgress != 0.5 {
		t.Fatalf("progress: expected overall_progress=0.5 after completing 1 of 2 resources, got %f", rm.OverallProgress)
	}
	if rm.HoursCompleted <= 0 {
		t.Fatalf("progress: expected hours_completed > 0, got %f", rm.HoursCompleted)
	}
	if rm.Completed {
		t.Fatalf("progress: roadmap should not be completed yet")
	}
}

func callTwin(t *testing.T, app *fiber.App, tok string) twinData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/twin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("twin request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("twin decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("twin: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var out twinData
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("twin data decode error: %v", err)
	}
	return out
}

func callAlignment(t *testing.T, app *fiber.App, tok string, roleID uuid.UUID) alignmentData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/careers/"+roleID.String()+"/alignment", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("alignment request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("alignment decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("alignment: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var out alignmentData
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("alignment data decode error: %v", err)
	}
	return out
}

func callProgress(t *testing.T, app *fiber.App, tok string, roadmapID, resourceID uuid.UUID) roadmapData {
	t.Helper()

	body := map[string]interface{}{
		"resource_id":    resourceID,
		"watch_progress": 1.0,
		"completed":      true,
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("PATCH", "/api/v1/roadmaps/"+roadmapID.String()+"/progress", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("progress request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("progress decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("progress: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var out roadmapData
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("progress data decode error: %v", err)
	}
	return out
}

func containsGapName(gaps []alignment.SkillGap, name string) bool {
	for _, g := range gaps {
		if g.SkillName == name {
			return true
		}
	}
	return false
}

func containsNodeWithMastery(nodes []twinNodeItem, name string, mastery float64) bool {
	for _, n := range nodes {
		if n.Name == name && n.MasteryLevel == mastery {
			return true
		}
	}
	return false
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLTWIN_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/twin_alignment_progress_test.go
	// backend root: ../../
	backendRoot := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(backendRoot, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

type seededIDs struct {
	cfg         config.Config
	userID      uuid.UUID
	roleID      uuid.UUID
	roadmapID   uuid.UUID
	moduleID    uuid.UUID
	resourceIDs []uuid.UUID
	skillIDs    map[string]uuid.UUID
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	jwtAccessSecret := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_JWT_ACCESS_SECRET"), "test-access-secret")
	jwtRefreshSecret := stringsOrDefault(os.Getenv("SKILLTWIN_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret")

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "SkillTwin", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     jwtAccessSecret,
				RefreshSecret:    jwtRefreshSecret,
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
		},
		skillIDs: map[string]uuid.UUID{},
	}

	categoryID := ensureCategory(t, ctx, db, "Backend (Integration)")

	out.skillIDs["Go"] = ensureSkill(t, ctx, db, "Go", categoryID)
	out.skillIDs["PostgreSQL"] = ensureSkill(t, ctx, db, "PostgreSQL", categoryID)
	out.skillIDs["Docker"] = ensureSkill(t, ctx, db, "Docker", categoryID)

	out.roleID = ensureRole(t, ctx, db, "Backend Engineer (Integration)")

	ensureRequirement(t, ctx, db, out.roleID, out.skillIDs["Go"], 0.6, 0.9, true)
	ensureRequirement(t, ctx, db, out.roleID, out.skillIDs["PostgreSQL"], 0.5, 0.7, false)
	ensureRequirement(t, ctx, db, out.roleID, out.skillIDs["Docker"], 0.7, 0.8, true)

	out.userID = ensureUser(t, ctx, db, "twin-it@example.com", "password")

	ensureMastery(t, ctx, db, out.userID, out.skillIDs["Go"], 0.8, 0.7)
	ensureMastery(t, ctx, db, out.userID, out.skillIDs["PostgreSQL"], 0.6, 0.5)

	out.roadmapID, out.moduleID, out.resourceIDs = ensureRoadmap(t, ctx, db, out.userID)

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM learning_resources WHERE module_id = $1`, seed.moduleID)
	_, _ = db.Exec(ctx, `DELETE FROM learning_modules WHERE roadmap_id = $1`, seed.roadmapID)
	_, _ = db.Exec(ctx, `DELETE FROM learning_roadmaps WHERE id = $1`, seed.roadmapID)
	_, _ = db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM career_skill_requirements WHERE career_role_id = $1`, seed.roleID)
	_, _ = db.Exec(ctx, `DELETE FROM career_roles WHERE id = $1`, seed.roleID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	logger := log.New(os.Stdout, "", log.LstdFlags)
	hub := ws.NewHub(logger)
	go hub.Run()

	routes.Register(app, cfg, db, nil, hub, logger)
	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App) string {
	t.Helper()

	body := map[string]string{"email": "twin-it@example.com", "password": "password"}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("login decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("login: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var data loginData
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("login data decode error: %v", err)
	}
	return data.AccessToken
}

func ensureCategory(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO skill_categories (id, name) VALUES ($1,$2)
		 ON CONFLICT (name) DO NOTHING`,
		id, name,
	)
	if err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM skill_categories WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed category select %s: %v", name, err)
	}
	return got
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, name string, categoryID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO skills (id, name, category_id) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO NOTHING`,
		id, name, categoryID,
	)
	if err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM skills WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed skill select %s: %v", name, err)
	}
	return got
}

func ensureRole(t *testing.T, ctx context.Context, db database.DB, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO career_roles (id, title, description, industry, domain, experience_level, demand_score)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (title) DO NOTHING`,
		id, title, "integration seed role", "Technology", "Backend", "mid", 0.8,
	)
	if err != nil {
		t.Fatalf("seed role %s: %v", title, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM career_roles WHERE title = $1 LIMIT 1`, title)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed role select %s: %v", title, err)
	}
	return got
}

func ensureRequirement(t *testing.T, ctx context.Context, db database.DB, roleID, skillID uuid.UUID, requiredLevel, importance float64, isMandatory bool) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO career_skill_requirements (id, career_role_id, skill_id, required_level, importance, is_mandatory)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (career_role_id, skill_id) DO UPDATE SET
			required_level = EXCLUDED.required_level,
			importance = EXCLUDED.importance,
			is_mandatory = EXCLUDED.is_mandatory`,
		uuid.New(), roleID, skillID, requiredLevel, importance, isMandatory,
	)
	if err != nil {
		t.Fatalf("seed requirement: %v", err)
	}
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, password string) uuid.UUID {
	t.Helper()

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("seed user: bcrypt error: %v", err)
	}

	id := uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, years_of_experience)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		id, email, string(pwHash), "Integration User", 3.0,
	)
	if err != nil {
		t.Fatalf("seed user insert: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user select: %v", err)
	}
	return got
}

func ensureMastery(t *testing.T, ctx context.Context, db database.DB, userID, skillID uuid.UUID, level, confidence float64) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, mastery_level, confidence_score, source)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET
			mastery_level = EXCLUDED.mastery_level,
			confidence_score = EXCLUDED.confidence_score,
			source = EXCLUDED.source,
			updated_at = now()`,
		uuid.New(), userID, skillID, level, confidence, "manual",
	)
	if err != nil {
		t.Fatalf("seed user_skill: %v", err)
	}
}

func ensureRoadmap(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID) (uuid.UUID, uuid.UUID, []uuid.UUID) {
	t.Helper()

	roadmapID := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO learning_roadmaps (id, user_id, title, description, target_career_role, estimated_hours)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		roadmapID, userID, "Backend Foundations", "integration seed roadmap", "Backend Engineer", 10.0,
	)
	if err != nil {
		t.Fatalf("seed roadmap: %v", err)
	}

	moduleID := uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO learning_modules (id, roadmap_id, title, description, estimated_hours, order_index)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		moduleID, roadmapID, "Containers", "integration seed module", 10.0, 0,
	)
	if err != nil {
		t.Fatalf("seed module: %v", err)
	}

	resourceIDs := make([]uuid.UUID, 0, 2)
	for i, title := range []string{"Docker basics", "Compose deep dive"} {
		resourceID := uuid.New()
		_, err = db.Exec(ctx,
			`INSERT INTO learning_resources (id, module_id, title, url, duration_seconds, order_index)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			resourceID, moduleID, title, "https://example.com/"+uuid.NewString(), 1800, i,
		)
		if err != nil {
			t.Fatalf("seed resource %s: %v", title, err)
		}
		resourceIDs = append(resourceIDs, resourceID)
	}

	return roadmapID, moduleID, resourceIDs
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
