package blog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/investordaily/blogd/internal/models"
	"github.com/investordaily/blogd/internal/modules/content/editor"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "blog_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.BlogModel{},
		&models.DraftModel{},
		&models.FileReferenceModel{},
	))

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(NewService(db), editor.NewStore(db)).RegisterRoutes(api)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func publishBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Market wrap",
		"heroImageUrl": "https://cdn.example.com/hero.jpg",
		"blocks": []map[string]string{
			{"kind": "subheading", "text": "Equities"},
			{"kind": "paragraph", "text": "Stocks advanced on light volume."},
		},
	}
}

func TestBlogHandler_PublishAndGet(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/blogs/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Market wrap", got["title"])
	assert.Equal(t, "Stocks advanced on light volume.", got["excerpt"])
}

func TestBlogHandler_PublishValidation(t *testing.T) {
	r, db := setupTestRouter(t)

	body := publishBody()
	delete(body, "heroImageUrl")

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "image is required", resp["message"])

	var n int64
	require.NoError(t, db.Model(&models.BlogModel{}).Count(&n).Error)
	assert.Zero(t, n, "rejected publish must not persist anything")
}

func TestBlogHandler_PublishClearsDraft(t *testing.T) {
	r, db := setupTestRouter(t)

	require.NoError(t, db.Create(&models.DraftModel{Title: "in progress"}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var n int64
	require.NoError(t, db.Unscoped().Model(&models.DraftModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestBlogHandler_List(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/blogs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())

	doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())

	w = doJSON(t, r, http.MethodGet, "/api/v1/blogs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Market wrap", resp.Data[0]["title"])
}

func TestBlogHandler_Count(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/blogs/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())

	doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())

	w = doJSON(t, r, http.MethodGet, "/api/v1/blogs/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}

func TestBlogHandler_Update(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body := publishBody()
	body["title"] = "Market wrap, revised"
	w = doJSON(t, r, http.MethodPut, "/api/v1/blogs/"+created.ID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var b models.BlogModel
	require.NoError(t, db.First(&b, "id = ?", created.ID).Error)
	assert.Equal(t, "Market wrap, revised", b.Title)
}

func TestBlogHandler_UpdateValidation(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body := publishBody()
	body["title"] = "  "
	w = doJSON(t, r, http.MethodPut, "/api/v1/blogs/"+created.ID, body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "title is required", resp["message"])
}

func TestBlogHandler_NotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/blogs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/blogs/missing", publishBody())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/blogs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlogHandler_Delete(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/blogs", publishBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, "/api/v1/blogs/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.BlogModel{}).Count(&n).Error)
	assert.Zero(t, n)
}
