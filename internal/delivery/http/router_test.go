package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cyberlab-backend/config"
	httpDelivery "cyberlab-backend/internal/delivery/http"
	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSubmissionUsecase struct {
	mock.Mock
}

func (m *MockSubmissionUsecase) SubmitAnswer(ctx context.Context, userID, labID, taskID, questionID uint, answer, fileID string) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, userID, labID, taskID, questionID, answer, fileID)
	if v := args.Get(0); v != nil {
		return v.(*domain.SubmissionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubmissionUsecase) GetLabSubmissions(ctx context.Context, userID, labID uint) ([]domain.Submission, error) {
	args := m.Called(ctx, userID, labID)
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionUsecase) GetPendingUploads(ctx context.Context, labID uint) ([]domain.Submission, error) {
	args := m.Called(ctx, labID)
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionUsecase) GradeUpload(ctx context.Context, graderRole domain.Role, submissionID uint, correct bool, points int, feedback string) error {
	return m.Called(ctx, graderRole, submissionID, correct, points, feedback).Error(0)
}

type MockProgressUsecase struct {
	mock.Mock
}

func (m *MockProgressUsecase) GetMyCourse(ctx context.Context, userID uint) (*domain.MyCourseView, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.MyCourseView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressUsecase) GetLabProgress(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	args := m.Called(ctx, userID, labID)
	if v := args.Get(0); v != nil {
		return v.(*domain.LabProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressUsecase) RecomputeLabProgress(ctx context.Context, userID, labID uint) (*domain.LabProgress, error) {
	args := m.Called(ctx, userID, labID)
	if v := args.Get(0); v != nil {
		return v.(*domain.LabProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func testRouter(submissions *MockSubmissionUsecase, progress *MockProgressUsecase) (*gin.Engine, *utils.TokenMaker) {
	gin.SetMode(gin.TestMode)
	tokens := utils.NewTokenMaker("router-test-secret")
	handler := httpDelivery.NewHandler(nil, nil, nil, progress, submissions, nil, nil, nil)
	cfg := &config.Config{Env: "dev", FrontendOrigin: "http://localhost:3000"}
	return httpDelivery.InitRouter(cfg, handler, tokens), tokens
}

func bearer(tokens *utils.TokenMaker, userID uint, role domain.Role) string {
	token, _ := tokens.Generate(userID, "test@example.com", string(role))
	return "Bearer " + token
}

func TestAuthRequired(t *testing.T) {
	router, tokens := testRouter(new(MockSubmissionUsecase), new(MockProgressUsecase))

	t.Run("no token is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/my-course", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/my-course", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("student cannot reach user administration", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
		req.Header.Set("Authorization", bearer(tokens, 1, domain.RoleStudent))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("instructor cannot submit answers", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"task_id":1,"question_id":2,"answer":"x"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/labs/3/submissions", body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer(tokens, 9, domain.RoleInstructor))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSubmitAnswerRoute(t *testing.T) {
	submissions := new(MockSubmissionUsecase)
	router, tokens := testRouter(submissions, new(MockProgressUsecase))

	submissions.On("SubmitAnswer", mock.Anything, uint(1), uint(3), uint(5), uint(10), "CTF{s3cr3t}", "").
		Return(&domain.SubmissionResult{
			IsCorrect:    true,
			PointsEarned: 50,
			Status:       domain.SubmissionGraded,
			Feedback:     "Correct!",
			LabStatus:    domain.LabInProgress,
			LabPercent:   50,
		}, nil)

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"task_id":5,"question_id":10,"answer":"CTF{s3cr3t}"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/labs/3/submissions", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(tokens, 1, domain.RoleStudent))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			IsCorrect    bool   `json:"is_correct"`
			PointsEarned int    `json:"points_earned"`
			Feedback     string `json:"feedback"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.IsCorrect)
	assert.Equal(t, 50, resp.Data.PointsEarned)
	assert.Equal(t, "Correct!", resp.Data.Feedback)
	submissions.AssertExpectations(t)
}

func TestMyCourseRoute(t *testing.T) {
	progress := new(MockProgressUsecase)
	router, tokens := testRouter(new(MockSubmissionUsecase), progress)

	t.Run("unassigned student gets 404", func(t *testing.T) {
		progress.On("GetMyCourse", mock.Anything, uint(2)).Return(nil, domain.ErrNotAssigned).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/my-course", nil)
		req.Header.Set("Authorization", bearer(tokens, 2, domain.RoleStudent))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("assigned student gets the joined view", func(t *testing.T) {
		progress.On("GetMyCourse", mock.Anything, uint(1)).Return(&domain.MyCourseView{
			Course:    domain.Course{ID: 7, Title: "Network Security"},
			TotalLabs: 4,
		}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/my-course", nil)
		req.Header.Set("Authorization", bearer(tokens, 1, domain.RoleStudent))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Network Security")
	})
}
