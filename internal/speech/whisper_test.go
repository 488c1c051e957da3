package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTranscribe(t *testing.T) {
	var gotAudio []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "audio.wav" {
			http.Error(w, "unexpected file name", http.StatusBadRequest)
			return
		}
		gotAudio, _ = io.ReadAll(file)
		w.Write([]byte(`{"text":"my back hurts","language":"en"}`))
	}))
	defer srv.Close()

	c := NewWhisperClient(srv.URL, time.Second)
	text, err := c.Transcribe(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	require.Equal(t, "my back hurts", text)
	require.Equal(t, []byte("RIFF"), gotAudio)
}

func TestTranscribe_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewWhisperClient(srv.URL, 0).Transcribe(context.Background(), []byte("x"))
	require.ErrorIs(t, err, ErrServiceUnavailable)
	require.Contains(t, err.Error(), "model not loaded")
}

func TestTranscribe_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewWhisperClient(srv.URL, 0).Transcribe(context.Background(), []byte("x"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrServiceUnavailable)
}
