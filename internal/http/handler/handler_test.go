package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facilityassist/internal/auth"
	"facilityassist/internal/http/middleware"
	"facilityassist/internal/model"
	"facilityassist/internal/service"
	serviceMocks "facilityassist/internal/service/mocks"
)

// envelopeBody mirrors the uniform response shape for decoding in tests.
type envelopeBody struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelopeBody {
	t.Helper()
	var body envelopeBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		assert.True(t, body.Success)
		assert.Equal(t, "healthy", body.Message)
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		body := decodeEnvelope(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "dependency unavailable", body.Message)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/auth/login", Login(mockSvc))

	login := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		res := &service.LoginResult{
			Principal: auth.Principal{ID: 1, Username: "admin", Name: "시스템 관리자", Role: "ADMIN"},
			Token:     "signed-token",
		}
		mockSvc.On("Login", mock.Anything, "admin", "admin").Return(res, nil).Once()

		resp := login(`{"username":"admin","password":"admin"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.True(t, body.Success)

		var data loginResponse
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, "signed-token", data.Token)
		assert.Equal(t, "admin", data.Username)

		// The identity fields sit next to the token, not under a nested key.
		var flat map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body.Data, &flat))
		assert.Contains(t, flat, "id")
		assert.Contains(t, flat, "username")
		assert.NotContains(t, flat, "user")
		mockSvc.AssertExpectations(t)
	})

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "admin", "wrong").Return(nil, service.ErrInvalidCredentials).Once()
		mockSvc.On("Login", mock.Anything, "nobody", "whatever").Return(nil, service.ErrInvalidCredentials).Once()

		first := login(`{"username":"admin","password":"wrong"}`)
		second := login(`{"username":"nobody","password":"whatever"}`)

		assert.Equal(t, http.StatusUnauthorized, first.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, second.StatusCode)
		assert.Equal(t, decodeEnvelope(t, first), decodeEnvelope(t, second))
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := login(`{"username":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.False(t, body.Success)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := login(`{not json`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListNotices(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoticeService)
	app := fiber.New()
	app.Get("/api/notices", ListNotices(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.NoticeListResult{
			Notices: []service.NoticeSummary{{ID: 1, Title: "점검 안내", AuthorName: "시스템 관리자"}},
			PageInfo: service.PageInfo{
				TotalCount: 1, CurrentPage: 1, TotalPages: 1,
			},
		}
		mockSvc.On("List", mock.Anything, 0, 5).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notices?page=0&size=5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.True(t, body.Success)

		var data service.NoticeListResult
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Len(t, data.Notices, 1)
		assert.Equal(t, 1, data.TotalCount)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notices?page=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.False(t, body.Success)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notices", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetNotice(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoticeService)
	app := fiber.New()
	app.Get("/api/notices/:id", GetNotice(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.NoticeDetail{ID: 7, Title: "점검 안내", Content: "본문"}
		mockSvc.On("Get", mock.Anything, int64(7)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notices/7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)

		var data service.NoticeDetail
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, int64(7), data.ID)
		assert.Equal(t, "본문", data.Content)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(99)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notices/99", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notices/abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateNotice(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoticeService)
	principal := &auth.Principal{ID: 1, Username: "admin", Name: "시스템 관리자", Role: "ADMIN"}

	app := fiber.New()
	app.Post("/api/notices", func(c *fiber.Ctx) error {
		c.Locals(auth.PrincipalLocalKey, principal)
		return c.Next()
	}, CreateNotice(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.NoticeDetail{ID: 1, Title: "새 공지", Content: "내용"}
		mockSvc.On("Create", mock.Anything, principal, service.CreateNoticeRequest{Title: "새 공지", Content: "내용"}).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/notices", strings.NewReader(`{"title":"새 공지","content":"내용"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.True(t, body.Success)
		mockSvc.AssertExpectations(t)
	})

	t.Run("blank title", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, principal, mock.Anything).
			Return(nil, service.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/notices", strings.NewReader(`{"title":" ","content":"내용"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.DocumentListResult{
			Documents: []service.DocumentSummary{{ID: 3, Title: "도면", FileName: "plan.pdf", FormattedSize: "1.5 MB"}},
			PageInfo:  service.PageInfo{TotalCount: 1, CurrentPage: 1, TotalPages: 1},
		}
		mockSvc.On("List", mock.Anything, 0, 0).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)

		var data service.DocumentListResult
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Len(t, data.Documents, 1)
		assert.Equal(t, "1.5 MB", data.Documents[0].FormattedSize)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	principal := &auth.Principal{ID: 2, Username: "1wing_manager", Name: "제1전투비행단 관리자", Role: "MANAGER"}

	app := fiber.New()
	app.Post("/api/documents", func(c *fiber.Ctx) error {
		c.Locals(auth.PrincipalLocalKey, principal)
		return c.Next()
	}, UploadDocument(mockSvc))

	multipartBody := func(t *testing.T, fields map[string]string, fileName string) (*bytes.Buffer, string) {
		t.Helper()
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range fields {
			require.NoError(t, writer.WriteField(k, v))
		}
		if fileName != "" {
			part, err := writer.CreateFormFile("file", fileName)
			require.NoError(t, err)
			_, err = part.Write([]byte("hello world"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())
		return body, writer.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		expected := &service.DocumentDetail{
			DocumentSummary: service.DocumentSummary{ID: 1, Title: "시설 도면", FileName: "plan.pdf"},
		}
		mockSvc.On("Upload", mock.Anything, principal, mock.MatchedBy(func(req service.UploadDocumentRequest) bool {
			return req.Title == "시설 도면" && req.FileName == "plan.pdf"
		})).Return(expected, nil).Once()

		body, contentType := multipartBody(t, map[string]string{"title": "시설 도면"}, "plan.pdf")
		req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"title": "제목만"}, "")
		req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		envBody := decodeEnvelope(t, resp)
		assert.Equal(t, "file is required", envBody.Message)
	})

	t.Run("validation error from service", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, principal, mock.Anything).
			Return(nil, service.ErrValidation).Once()

		body, contentType := multipartBody(t, map[string]string{"title": ""}, "plan.pdf")
		req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id/download", DownloadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		dl := &service.DocumentDownload{
			FileName: "plan.pdf",
			FileType: "application/pdf",
			FileSize: 11,
			Content:  []byte("hello world"),
		}
		mockSvc.On("Download", mock.Anything, int64(3)).Return(dl, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/3/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "plan.pdf")

		buf := new(bytes.Buffer)
		_, err := buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello world", buf.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, int64(99)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/99/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListUnits(t *testing.T) {
	mockSvc := new(serviceMocks.MockUnitService)
	app := fiber.New()
	app.Get("/api/units", ListUnits(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return([]model.Unit{
			{ID: 1, Name: "제1전투비행단", Code: "1WING"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/units", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)

		var data []model.Unit
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Len(t, data, 1)
		assert.Equal(t, "1WING", data[0].Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListUsers(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Get("/api/users", ListUsers(mockSvc))
	app.Get("/api/users/managers", ListManagers(mockSvc))

	t.Run("all users", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return([]service.UserInfo{
			{ID: 1, Username: "admin", Role: "ADMIN"},
			{ID: 2, Username: "1wing_manager", Role: "MANAGER", Unit: &service.UnitInfo{ID: 1, Code: "1WING"}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)

		var data []service.UserInfo
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Len(t, data, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("managers only", func(t *testing.T) {
		mockSvc.On("Managers", mock.Anything).Return([]service.UserInfo{
			{ID: 2, Username: "1wing_manager", Role: "MANAGER"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users/managers", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope(t, resp)

		var data []service.UserInfo
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Len(t, data, 1)
		assert.Equal(t, model.RoleManager, data[0].Role)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	svcs := Services{
		Auth:     new(serviceMocks.MockAuthService),
		Notice:   new(serviceMocks.MockNoticeService),
		Document: new(serviceMocks.MockDocumentService),
		Unit:     new(serviceMocks.MockUnitService),
		User:     new(serviceMocks.MockUserService),
		Tokens:   auth.NewTokenManager("test-secret", time.Hour),
	}
	RegisterRoutes(app, db, svcs)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.False(t, body.Success)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.False(t, body.Success)
	})

	t.Run("protected route without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notices", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "authentication required", body.Message)
	})
}

func TestInternalErrorLogging(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoticeService)
	mockSvc.On("List", mock.Anything, 0, 0).
		Return(nil, errors.New("connection refused to db-replica")).Once()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Get("/api/notices", ListNotices(mockSvc))

	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(os.Stderr)

	req := httptest.NewRequest(http.MethodGet, "/api/notices", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	// The client only sees the generic message.
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "internal server error", body.Message)

	// The error detail lands in the log with request correlation fields.
	var entry map[string]any
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &entry))
	assert.Equal(t, "request_failed", entry["msg"])
	assert.Equal(t, "connection refused to db-replica", entry["error"])
	assert.NotEmpty(t, entry["request_id"])
	assert.Equal(t, "/api/notices", entry["path"])
	mockSvc.AssertExpectations(t)
}
