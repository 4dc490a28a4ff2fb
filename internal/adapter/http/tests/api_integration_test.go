//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	dbadapter "github.com/gregsyu/task-manager/internal/adapter/db"
	httpadapter "github.com/gregsyu/task-manager/internal/adapter/http"
	"github.com/gregsyu/task-manager/internal/adapter/http/dto"
	"github.com/gregsyu/task-manager/internal/adapter/http/handlers"
	appservice "github.com/gregsyu/task-manager/internal/app/service"
	"github.com/gregsyu/task-manager/internal/auth"
	"github.com/gregsyu/task-manager/internal/core/ports"
	"github.com/gregsyu/task-manager/pkg/translator"
)

type APIIntegrationSuite struct {
	IntegrationSuiteBase
	router         *gin.Engine
	userRepository ports.UserRepository
}

func TestAPIIntegrationSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationSuite))
}

func (s *APIIntegrationSuite) SetupSuite() {
	s.IntegrationSuiteBase.SetupSuite()

	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  filepath.Join(projectRoot(s.T()), "pkg", "translator", "translation"),
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
}

func (s *APIIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	userRepository := dbadapter.NewUserRepository(s.DB)
	taskRepository := dbadapter.NewTaskRepository(s.DB)

	passwordHasher := auth.NewPasswordHasher()
	tokenService := auth.NewTokenService("integration-secret", 30*time.Minute, nil)

	authService := appservice.NewAuthService(userRepository, passwordHasher, tokenService)
	taskService := appservice.NewTaskService(taskRepository)

	router := gin.New()
	healthHandler := handlers.NewHealthHandler(s.DB)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(router, healthHandler, authHandler, taskHandler, authService)

	s.router = router
	s.userRepository = userRepository
}

func (s *APIIntegrationSuite) doJSON(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APIIntegrationSuite) registerUser(username, email, password string) dto.UserProfile {
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q}`, username, email, password)
	rec := s.doJSON(http.MethodPost, "/api/v1/auth/register", "", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var profile dto.UserProfile
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &profile))
	return profile
}

func (s *APIIntegrationSuite) login(username, password string) string {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := s.doJSON(http.MethodPost, "/api/v1/auth/login", "", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var token dto.TokenResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &token))
	s.Require().Equal("bearer", token.TokenType)
	return token.AccessToken
}

func (s *APIIntegrationSuite) createTask(token, body string) dto.TaskItem {
	rec := s.doJSON(http.MethodPost, "/api/v1/tasks", token, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var task dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func (s *APIIntegrationSuite) TestHealth() {
	rec := s.doJSON(http.MethodGet, "/api/v1/health", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
}

func (s *APIIntegrationSuite) TestRegisterLoginTaskLifecycle() {
	profile := s.registerUser("alice", "alice@x.com", "password123")
	s.Require().Equal("alice", profile.Username)
	s.Require().NotContains(profile.Username, "password123")

	token := s.login("alice", "password123")

	task := s.createTask(token, `{"title":"Buy milk"}`)
	s.Require().Equal("pending", task.Status)
	s.Require().Equal("medium", task.Priority)
	s.Require().Nil(task.UpdatedAt)

	rec := s.doJSON(http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token, `{"status":"done"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Require().Equal("done", updated.Status)
	s.Require().NotNil(updated.UpdatedAt)

	rec = s.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token, "")
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *APIIntegrationSuite) TestLogin_EmailAlsoAccepted() {
	s.registerUser("alice", "alice@x.com", "password123")

	token := s.login("alice@x.com", "password123")
	s.Require().NotEmpty(token)
}

func (s *APIIntegrationSuite) TestLogin_WrongPasswordUnauthorized() {
	s.registerUser("alice", "alice@x.com", "password123")

	rec := s.doJSON(http.MethodPost, "/api/v1/auth/login", "", `{"username":"alice","password":"password124"}`)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APIIntegrationSuite) TestRegister_DuplicateUsernameConflict() {
	s.registerUser("alice", "alice@x.com", "password123")

	rec := s.doJSON(http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"alice","email":"other@x.com","password":"password123"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APIIntegrationSuite) TestRegister_DuplicateEmailConflict() {
	s.registerUser("alice", "alice@x.com", "password123")

	rec := s.doJSON(http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"bob","email":"alice@x.com","password":"password123"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APIIntegrationSuite) TestOwnership_ForeignTaskIsForbiddenAndInvisible() {
	s.registerUser("alice", "alice@x.com", "password123")
	s.registerUser("bob", "bob@x.com", "password123")
	aliceToken := s.login("alice", "password123")
	bobToken := s.login("bob", "password123")

	task := s.createTask(aliceToken, `{"title":"Alice's secret","status":"doing"}`)

	rec := s.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", task.ID), bobToken, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.doJSON(http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", task.ID), bobToken, `{"status":"done"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", task.ID), bobToken, "")
	s.Require().Equal(http.StatusForbidden, rec.Code)

	for _, target := range []string{"/api/v1/tasks", "/api/v1/tasks?status=doing"} {
		rec = s.doJSON(http.MethodGet, target, bobToken, "")
		s.Require().Equal(http.StatusOK, rec.Code)

		var got []dto.TaskItem
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Require().Empty(got, "target=%s", target)
	}
}

func (s *APIIntegrationSuite) TestPatch_InvalidStatusLeavesTaskUnchanged() {
	s.registerUser("alice", "alice@x.com", "password123")
	token := s.login("alice", "password123")

	task := s.createTask(token, `{"title":"Buy milk","description":"2L whole"}`)

	rec := s.doJSON(http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token,
		`{"title":"Changed","status":"bogus"}`)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Require().Contains(rec.Body.String(), `"field":"status"`)

	rec = s.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", task.ID), token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("Buy milk", got.Title)
	s.Require().Equal("pending", got.Status)
	s.Require().Equal("2L whole", *got.Description)
	s.Require().Nil(got.UpdatedAt)
}

func (s *APIIntegrationSuite) TestList_OrderedByCreationDescAndPaged() {
	s.registerUser("alice", "alice@x.com", "password123")
	token := s.login("alice", "password123")

	for i := 1; i <= 3; i++ {
		s.createTask(token, fmt.Sprintf(`{"title":"Task %d"}`, i))
	}

	rec := s.doJSON(http.MethodGet, "/api/v1/tasks", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 3)
	s.Require().Equal("Task 3", got[0].Title)
	s.Require().Equal("Task 2", got[1].Title)
	s.Require().Equal("Task 1", got[2].Title)

	rec = s.doJSON(http.MethodGet, "/api/v1/tasks?skip=1&limit=1", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Require().Equal("Task 2", got[0].Title)

	for _, target := range []string{"/api/v1/tasks?limit=0", "/api/v1/tasks?limit=101"} {
		rec = s.doJSON(http.MethodGet, target, token, "")
		s.Require().Equal(http.StatusBadRequest, rec.Code, "target=%s", target)
	}
}

func (s *APIIntegrationSuite) TestDeleteUser_CascadesToTasks() {
	profile := s.registerUser("alice", "alice@x.com", "password123")
	s.registerUser("bob", "bob@x.com", "password123")
	aliceToken := s.login("alice", "password123")
	bobToken := s.login("bob", "password123")

	task := s.createTask(aliceToken, `{"title":"Doomed"}`)

	s.Require().NoError(s.userRepository.Delete(s.T().Context(), profile.ID))

	var taskCount int
	s.Require().NoError(s.DB.Get(&taskCount, "SELECT COUNT(*) FROM tasks WHERE owner_id = ?", profile.ID))
	s.Require().Zero(taskCount)

	// The deleted account's token no longer authenticates.
	rec := s.doJSON(http.MethodGet, "/api/v1/auth/me", aliceToken, "")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	rec = s.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", task.ID), bobToken, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}
