package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSettingRepo(t *testing.T) repository.SettingRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Setting{}))
	return repository.NewSettingRepo(db)
}

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	telegram := NewTelegram(newSettingRepo(t))
	assert.False(t, telegram.Send("hello"))
}

func TestSendPostsToBotEndpoint(t *testing.T) {
	settings := newSettingRepo(t)
	_, err := settings.Upsert(model.SettingTelegramBotToken, "test-token", "")
	require.NoError(t, err)
	_, err = settings.Upsert(model.SettingTelegramChatID, "42", "")
	require.NoError(t, err)

	var gotPath, gotChatID, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotChatID = r.FormValue("chat_id")
		gotText = r.FormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	telegram := NewTelegram(settings)
	telegram.baseURL = server.URL

	assert.True(t, telegram.Send("stock alert"))
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "42", gotChatID)
	assert.Equal(t, "stock alert", gotText)
}

func TestSendReportsServerErrors(t *testing.T) {
	settings := newSettingRepo(t)
	_, err := settings.Upsert(model.SettingTelegramBotToken, "tok", "")
	require.NoError(t, err)
	_, err = settings.Upsert(model.SettingTelegramChatID, "7", "")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	telegram := NewTelegram(settings)
	telegram.baseURL = server.URL

	assert.False(t, telegram.Send("nope"))
}
