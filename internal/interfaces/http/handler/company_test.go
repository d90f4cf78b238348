package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcompany "github.com/bizdetails/backend/internal/application/company"
	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/interfaces/http/dto"
	"github.com/bizdetails/backend/internal/interfaces/http/middleware"
)

func setupCompanyRouter(t *testing.T) (*gin.Engine, *fakeCompanyRepo) {
	t.Helper()
	middleware.SetupValidator()

	repo := newFakeCompanyRepo()
	svc := appcompany.NewService(repo, zap.NewNop())
	h := NewCompanyHandler(svc, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api")
	h.RegisterRoutes(api)
	return engine, repo
}

func seedCompany(t *testing.T, repo *fakeCompanyRepo, fields map[string]string) *company.Company {
	t.Helper()
	c, err := company.New(fields)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func TestCompanyHandler_List(t *testing.T) {
	engine, repo := setupCompanyRouter(t)
	seedCompany(t, repo, map[string]string{"domain": "acme.com", "name": "Acme", "industry": "Software"})
	seedCompany(t, repo, map[string]string{"domain": "beta.io", "name": "Beta", "industry": "Retail"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies?industry=Software", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool              `json:"success"`
		Data    []CompanyResponse `json:"data"`
		Meta    *dto.Meta         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "acme.com", resp.Data[0].Domain)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestCompanyHandler_List_RejectsBadQuery(t *testing.T) {
	engine, _ := setupCompanyRouter(t)

	cases := []struct {
		name  string
		query string
	}{
		{"unknown sort key", "sort=industry"},
		{"negative page", "page=-1"},
		{"domain with whitespace", "domain=not%20a%20domain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/companies?"+tc.query, nil)
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCompanyHandler_List_Pagination(t *testing.T) {
	engine, repo := setupCompanyRouter(t)
	for i := 0; i < 5; i++ {
		seedCompany(t, repo, map[string]string{
			"domain": fmt.Sprintf("c%d.example.com", i),
			"name":   fmt.Sprintf("Company %d", i),
		})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies?page=2&page_size=2", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []CompanyResponse `json:"data"`
		Meta *dto.Meta         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestCompanyHandler_Get(t *testing.T) {
	engine, repo := setupCompanyRouter(t)
	seeded := seedCompany(t, repo, map[string]string{"domain": "acme.com", "name": "Acme"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies/"+seeded.ID.String(), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "acme.com")
}

func TestCompanyHandler_Get_NotFound(t *testing.T) {
	engine, _ := setupCompanyRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies/"+uuid.NewString(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyHandler_GetByDomain(t *testing.T) {
	engine, repo := setupCompanyRouter(t)
	seedCompany(t, repo, map[string]string{"domain": "acme.com", "name": "Acme"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies/domain/acme.com", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Acme")
}
