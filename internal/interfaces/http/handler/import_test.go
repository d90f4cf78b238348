package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/application/importer"
	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/interfaces/http/dto"
	"github.com/bizdetails/backend/internal/interfaces/http/middleware"
)

func setupImportRouter(t *testing.T) (*gin.Engine, *fakeCompanyRepo, *identity.User) {
	t.Helper()

	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()

	admin, err := identity.NewUser("admin@example.com", "Str0ngPass!word", "Admin")
	require.NoError(t, err)
	admin.PromoteToAdmin()
	require.NoError(t, users.Save(context.Background(), admin))

	h := NewImportHandler(importer.NewService(companies, 0, zap.NewNop()), users, zap.NewNop())

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, admin.ID.String())
	})
	admin2 := engine.Group("/api/admin")
	h.RegisterRoutes(admin2)
	return engine, companies, admin
}

func multipartCSV(t *testing.T, fields map[string]string, csvBody string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile("file", "company_updated.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestImportHandler_Upload(t *testing.T) {
	engine, companies, _ := setupImportRouter(t)

	csv := "domain,name,industry\nacme.com,Acme Inc,Software\n,Beta Corp,Retail\n,,\n"
	body, contentType := multipartCSV(t, map[string]string{"mode": "override"}, csv)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/company-updated/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool             `json:"success"`
		Data    importer.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Created)
	assert.Equal(t, 0, resp.Data.Updated)

	// the empty third row is counted as a row error, not skipped
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, 3, resp.Data.Errors[0].Row)
	assert.Equal(t, "MissingIdentifier", resp.Data.Errors[0].Error)

	stored, err := companies.FindByDomain(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, "Software", stored.Industry)
}

func TestImportHandler_Upload_ColumnMap(t *testing.T) {
	engine, companies, _ := setupImportRouter(t)

	csv := "Website,Company Name\nacme.com,Acme Inc\n"
	body, contentType := multipartCSV(t, map[string]string{
		"mode":       "override",
		"column_map": `{"domain":"Website","name":"Company Name"}`,
	}, csv)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/company-updated/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := companies.FindByDomain(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", stored.Name)
}

func TestImportHandler_Upload_InvalidMode(t *testing.T) {
	engine, _, _ := setupImportRouter(t)

	body, contentType := multipartCSV(t, map[string]string{"mode": "merge"}, "domain\nacme.com\n")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/company-updated/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestImportHandler_Upload_MissingFile(t *testing.T) {
	engine, _, _ := setupImportRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", "override"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/company-updated/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportHandler_Upload_RejectsNonCSVExtension(t *testing.T) {
	engine, _, _ := setupImportRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "companies.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("domain\nacme.com\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/company-updated/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ".csv")
}
