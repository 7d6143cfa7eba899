package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"lingua-tutor/internal/assistant"
	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/speech"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	reply, err := s.backend.Reply(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch assistant.KindOf(err) {
		case assistant.KindInvalidRequest:
			status = http.StatusBadRequest
		case assistant.KindTransport, assistant.KindEmptyResponse:
			status = http.StatusBadGateway
		}
		s.log.Errorw("chat request failed", "topic", req.Topic, "status", status, "error", err)
		respondError(w, status, err.Error())
		return
	}
	if reply.Corrections == nil {
		reply.Corrections = []domain.Correction{}
	}
	respondJSON(w, http.StatusOK, reply)
}

type ttsRequest struct {
	Text   string             `json:"text"`
	Gender domain.VoiceGender `json:"gender"`
	Accent domain.Accent      `json:"accent"`
	Speed  float64            `json:"speed"`
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	if s.tts == nil {
		respondError(w, http.StatusServiceUnavailable, "speech synthesis is not configured")
		return
	}
	var req ttsRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	audio, err := s.tts.Synthesize(r.Context(), req.Text, domain.Voice{Accent: req.Accent, Gender: req.Gender, Speed: req.Speed})
	if err != nil {
		if errors.Is(err, speech.ErrEmptyText) {
			respondError(w, http.StatusBadRequest, "text is required")
			return
		}
		s.log.Errorw("speech synthesis failed", "error", err)
		respondError(w, http.StatusBadGateway, "failed to generate speech")
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// handleListTopics returns built-in topics followed by the learner's own.
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics := catalog.Topics()
	for _, name := range s.store.CustomTopics(r.Context()) {
		topics = append(topics, catalog.Topic{ID: name, Name: name, Custom: true})
	}
	respondJSON(w, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(w, r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.store.SaveCustomTopic(r.Context(), req.Name); err != nil {
		s.log.Errorw("failed to save custom topic", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save topic")
		return
	}
	name := strings.TrimSpace(req.Name)
	respondJSON(w, http.StatusCreated, catalog.Topic{ID: name, Name: name, Custom: true})
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid topic name")
		return
	}
	if err := s.store.RemoveCustomTopic(r.Context(), name); err != nil {
		s.log.Errorw("failed to remove custom topic", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to remove topic")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Settings(r.Context()))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	st := s.store.Settings(r.Context())
	if err := decodeBody(w, r, &st); err != nil {
		respondError(w, http.StatusBadRequest, "invalid settings: "+err.Error())
		return
	}
	st = st.Normalize()
	if err := s.store.SaveSettings(r.Context(), st); err != nil {
		s.log.Errorw("failed to save settings", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Progress(r.Context()))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Sessions(r.Context()))
}

func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.log.Errorw("failed to clear data", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to clear data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
