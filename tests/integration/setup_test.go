package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db, userService)
	transactionService := services.NewTransactionService(db)
	summaryService := services.NewSummaryService(db, userService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, summaryService)

	// Router, wired the same way as the server entrypoint.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	api.POST("/users", userHandler.UpsertUser)

	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories/:userId", categoryHandler.GetUserCategories)
	api.POST("/categories/default/:userId", categoryHandler.CreateDefaultCategories)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	api.POST("/transactions", transactionHandler.CreateTransaction)
	api.GET("/transactions/*path", transactionHandler.GetTransactionRoutes)
	api.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	api.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// upsertUser creates a user via the API and returns its ID.
func (app *testApp) upsertUser(t *testing.T, id, email, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"id":%q,"email":%q,"name":%q}`, id, email, name)
	rec := app.request("POST", "/api/users", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert user failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["id"].(string)
}

// bootstrapCategories seeds the default category set and returns name -> category ID.
func (app *testApp) bootstrapCategories(t *testing.T, userID string) map[string]string {
	t.Helper()
	rec := app.request("POST", "/api/categories/default/"+userID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("bootstrap categories failed: %d %s", rec.Code, rec.Body.String())
	}

	byName := make(map[string]string)
	for _, raw := range parseJSONArray(t, rec) {
		cat := raw.(map[string]interface{})
		byName[cat["name"].(string)] = cat["id"].(string)
	}
	return byName
}
