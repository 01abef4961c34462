// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/application/store"
	"github.com/gestor-gastos/backend/internal/application/usecase/account"
	"github.com/gestor-gastos/backend/internal/application/usecase/category"
	"github.com/gestor-gastos/backend/internal/application/usecase/dashboard"
	"github.com/gestor-gastos/backend/internal/application/usecase/session"
	"github.com/gestor-gastos/backend/internal/application/usecase/statefile"
	"github.com/gestor-gastos/backend/internal/application/usecase/transaction"
	"github.com/gestor-gastos/backend/internal/infra/server/router"
	"github.com/gestor-gastos/backend/internal/integration/adapters"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/controller"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
	"github.com/gestor-gastos/backend/internal/integration/persistence"
	"github.com/gestor-gastos/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// Wiring
	db         *mock.Db
	redis      *mock.Redis
	stateStore *store.Store
	server     *httptest.Server
	engine     *gin.Engine

	// HTTP
	response     *http.Response
	responseBody []byte

	// Auth
	sessionToken string

	// Named entities created during the scenario
	accountIDs  map[string]string
	categoryIDs map[string]string

	// Last exported document
	exported []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			accountIDs:  make(map[string]string),
			categoryIDs: make(map[string]string),
		}
		tc.setup()
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			tc.teardown()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerLedgerSteps(ctx)
	registerStatefileSteps(ctx)
}

// setup wires the full application against in-process infrastructure.
func (tc *TestContext) setup() {
	tc.db = mock.NewDb()
	tc.redis = mock.NewRedis()

	var snapshotRepo adapter.SnapshotRepository = persistence.NewSnapshotRepository(tc.db.DbConn)
	snapshotRepo = persistence.NewCachedSnapshotRepository(snapshotRepo, tc.redis.Client, time.Hour)

	tc.stateStore = store.New(snapshotRepo)
	sessionTokens := adapters.NewSessionTokens("integration-test-secret", time.Hour)

	openSessionUseCase := session.NewOpenSessionUseCase(tc.stateStore, sessionTokens)
	createAccountUseCase := account.NewCreateAccountUseCase(tc.stateStore)
	createCategoryUseCase := category.NewCreateCategoryUseCase(tc.stateStore)
	recordTransactionUseCase := transaction.NewRecordTransactionUseCase(tc.stateStore)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(tc.stateStore)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(tc.stateStore)
	exportStateUseCase := statefile.NewExportStateUseCase(tc.stateStore)
	importStateUseCase := statefile.NewImportStateUseCase(tc.stateStore)

	r := router.NewRouter(
		controller.NewHealthController(func() bool { return true }),
		controller.NewSessionController(openSessionUseCase),
		controller.NewStateController(tc.stateStore, exportStateUseCase, importStateUseCase),
		controller.NewAccountController(createAccountUseCase),
		controller.NewCategoryController(createCategoryUseCase),
		controller.NewTransactionController(recordTransactionUseCase, listTransactionsUseCase),
		controller.NewDashboardController(getSummaryUseCase),
		middleware.NewRateLimiterWithConfig(1000, time.Minute),
		middleware.NewAuthMiddleware(sessionTokens),
	)
	tc.engine = r.Setup("test")
	tc.server = httptest.NewServer(tc.engine)
}

// teardown flushes and closes everything the scenario opened.
func (tc *TestContext) teardown() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.stateStore != nil {
		tc.stateStore.Close()
	}
	if tc.redis != nil {
		tc.redis.Close()
	}
	if tc.db != nil {
		_ = tc.db.Close()
	}
}

// doRequest sends a request through the test server and captures the response.
func (tc *TestContext) doRequest(method, endpoint string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.sessionToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the error code should be "([^"]*)"$`, theErrorCodeShouldBe)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, []byte(tc.resolvePlaceholders(body.Content)))
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field '%s' not found in response", field)
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}

	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if _, ok := data[field]; !ok {
		return fmt.Errorf("field '%s' not found in response", field)
	}

	return nil
}

func theErrorCodeShouldBe(ctx context.Context, expected string) error {
	return theResponseFieldShouldBe(ctx, "code", expected)
}

// resolvePlaceholders substitutes {{account:Name}} and {{category:Name}}
// with the ids created earlier in the scenario.
func (tc *TestContext) resolvePlaceholders(body string) string {
	for name, id := range tc.accountIDs {
		body = strings.ReplaceAll(body, "{{account:"+name+"}}", id)
	}
	for name, id := range tc.categoryIDs {
		body = strings.ReplaceAll(body, "{{category:"+name+"}}", id)
	}
	return body
}
