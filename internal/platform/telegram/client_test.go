package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var got sendMessageReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL+"/")
	require.NoError(t, c.SendMessage(context.Background(), 42, "hello"))
	require.Equal(t, "/bottok/sendMessage", gotPath)
	require.Equal(t, sendMessageReq{ChatID: 42, Text: "hello"}, got)
}

func TestSendDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottok/sendDocument", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "7", r.FormValue("chat_id"))

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "report.pdf", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "%PDF-1.4", string(data))
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL)
	require.NoError(t, c.SendDocument(context.Background(), 7, []byte("%PDF-1.4"), "report.pdf"))
}

func TestSendMessage_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := NewClient("tok", srv.URL).SendMessage(context.Background(), 1, "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "chat not found")
	require.Contains(t, err.Error(), "400")
}

func TestSend_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	closedURL := srv.URL
	srv.Close()

	c := NewClient("123456:SECRET-BOT-TOKEN", closedURL)

	err := c.SendMessage(context.Background(), 1, "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sendMessage")
	require.NotContains(t, err.Error(), "SECRET-BOT-TOKEN")

	err = c.SendDocument(context.Background(), 1, []byte("%PDF"), "r.pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sendDocument")
	require.NotContains(t, err.Error(), "SECRET-BOT-TOKEN")
}

func TestSend_BadBaseURLHidesToken(t *testing.T) {
	c := NewClient("123456:SECRET-BOT-TOKEN", "http://bad host\x7f")

	err := c.SendMessage(context.Background(), 1, "x")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "SECRET-BOT-TOKEN")
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("tok", "")
	require.Equal(t, "https://api.telegram.org/bottok/sendMessage", c.methodURL("sendMessage"))
}
