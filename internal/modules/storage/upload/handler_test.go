package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/investordaily/blogd/internal/models"
)

func setupUploadRouter(t *testing.T, uploader Uploader) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "upload_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FileReferenceModel{}))

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(db, NewCoordinator(uploader, zap.NewNop())).RegisterRoutes(api)
	return r, db
}

func multipartUpload(t *testing.T, r *gin.Engine, path, filename string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadHandler_ImageCreatesPendingReference(t *testing.T) {
	uploader := &fakeUploader{baseURL: "https://cdn.example.com"}
	r, db := setupUploadRouter(t, uploader)

	w := multipartUpload(t, r, "/api/v1/objects/upload?type=image", "hero.jpg", []byte("jpegdata"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, "https://cdn.example.com/images/")
	assert.Contains(t, resp.Name, ".jpg")

	var ref models.FileReferenceModel
	require.NoError(t, db.First(&ref, "file_url = ?", resp.URL).Error)
	assert.Equal(t, "pending", ref.Status)
	assert.Equal(t, resp.Name, ref.FileName)
}

func TestUploadHandler_BackgroundSkipsReference(t *testing.T) {
	uploader := &fakeUploader{baseURL: "https://cdn.example.com"}
	r, db := setupUploadRouter(t, uploader)

	w := multipartUpload(t, r, "/api/v1/objects/upload?type=background", "bg.png", []byte("pngdata"))
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.FileReferenceModel{}).Count(&n).Error)
	assert.Zero(t, n, "backgrounds are not tracked as orphan candidates")
}

func TestUploadHandler_InvalidType(t *testing.T) {
	r, _ := setupUploadRouter(t, &fakeUploader{})

	w := multipartUpload(t, r, "/api/v1/objects/upload?type=video", "a.mp4", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandler_MissingFile(t *testing.T) {
	r, _ := setupUploadRouter(t, &fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/objects/upload?type=image", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandler_StoreFailure(t *testing.T) {
	uploader := &fakeUploader{err: assert.AnError}
	r, db := setupUploadRouter(t, uploader)

	w := multipartUpload(t, r, "/api/v1/objects/upload?type=image", "hero.jpg", []byte("x"))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.FileReferenceModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUploadHandler_Orphans(t *testing.T) {
	r, db := setupUploadRouter(t, &fakeUploader{})

	stale := models.FileReferenceModel{FileURL: "https://cdn.example.com/images/old.jpg", FileName: "old.jpg", Status: "pending"}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&stale).Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	fresh := models.FileReferenceModel{FileURL: "https://cdn.example.com/images/new.jpg", FileName: "new.jpg", Status: "pending"}
	require.NoError(t, db.Create(&fresh).Error)

	used := models.FileReferenceModel{FileURL: "https://cdn.example.com/images/used.jpg", FileName: "used.jpg", Status: "active"}
	require.NoError(t, db.Create(&used).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/objects/orphans/count", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/objects/orphans/list", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 2)

	// cleanup drops only stale pending references
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/objects/orphans/cleanup?maxAgeMinutes=60", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":1}`, w.Body.String())

	var remaining []models.FileReferenceModel
	require.NoError(t, db.Find(&remaining).Error)
	urls := make([]string, 0, len(remaining))
	for _, ref := range remaining {
		urls = append(urls, ref.FileURL)
	}
	assert.ElementsMatch(t, []string{fresh.FileURL, used.FileURL}, urls)
}
