package handler

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteFragment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/charts/price/AAPL", nil)

	writeFragment(c, http.StatusNotFound, MessageNoHistory)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `class="chart-error"`)
	assert.Contains(t, w.Body.String(), MessageNoHistory)
}

// テンプレートの実行に失敗した場合は途中までのHTMLを返さず500にします。
func TestWriteFragment_TemplateError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orig := fragmentTmpl
	fragmentTmpl = template.Must(template.New("broken").Parse(`<div>{{template "missing" .}}</div>`))
	t.Cleanup(func() { fragmentTmpl = orig })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/charts/price/AAPL", nil)

	writeFragment(c, http.StatusOK, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "<div>")
	assert.Equal(t, MessageRetrievalFailed, w.Body.String())
}
