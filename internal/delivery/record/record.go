package record

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jarednogo/rustsgf/internal/adapters"
	"github.com/jarednogo/rustsgf/internal/bootstrap"
	ownErrors "github.com/jarednogo/rustsgf/internal/errors"
	"github.com/jarednogo/rustsgf/internal/httpresponse"
	repo "github.com/jarednogo/rustsgf/internal/repository"
	recorduc "github.com/jarednogo/rustsgf/internal/usecase/record"
	"github.com/jarednogo/rustsgf/internal/utils"
)

type RecordHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	recordUC *recorduc.RecordUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewRecordHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis) *RecordHandler {
	return &RecordHandler{
		cfg:      cfg,
		log:      log,
		recordUC: recorduc.NewRecordUseCase(repo.NewRecordRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)),
	}
}

type parseRequest struct {
	Sgf string `json:"sgf"`
}

type redactRequest struct {
	Sgf  string   `json:"sgf"`
	Keys []string `json:"keys"`
}

type redactResponse struct {
	Sgf string `json:"sgf"`
}

// HandleParse разбирает присланный SGF и возвращает каноническую форму
// вместе со сводкой по дереву.
func (h *RecordHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.recordUC.SummarizeRecord(req.Sgf)
	if err != nil {
		h.log.Info("rejected record: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, summary)
}

func (h *RecordHandler) HandleRedact(w http.ResponseWriter, r *http.Request) {
	var req redactRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	redacted, err := h.recordUC.RedactRecord(req.Sgf, req.Keys...)
	if err != nil {
		h.log.Info("rejected record: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, redactResponse{Sgf: redacted})
}

func (h *RecordHandler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recordUC.CreateRecord(r.Context(), req.Sgf)
	if err != nil {
		h.log.Error("failed to create record", zap.Error(err))
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Infof("stored new record %s", rec.RecordKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (h *RecordHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	publicKey := chi.URLParam(r, "publicKey")
	if publicKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "missing publicKey")
		return
	}

	rec, err := h.recordUC.GetRecordByPublicKey(r.Context(), publicKey)
	if errors.Is(err, ownErrors.ErrRecordNotFound) {
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.log.Error("failed to fetch record", zap.Error(err))
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (h *RecordHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if pageNum < 1 {
		pageNum = 1
	}

	page, err := h.recordUC.GetArchive(r.Context(), pageNum)
	if err != nil {
		h.log.Error("failed to list archive", zap.Error(err))
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, page)
}

type liveResponse struct {
	Ok        bool   `json:"ok"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleLive держит websocket-соединение: клиент шлёт SGF-текст, в ответ
// приходит каноническая форма либо текст ошибки разбора.
func (h *RecordHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade error:", err)
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			h.log.Info("live connection closed: ", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		canonical, err := h.recordUC.CanonicalizeRecord(string(data))
		resp := liveResponse{Ok: err == nil, Canonical: canonical}
		if err != nil {
			resp.Error = err.Error()
		}

		if err := conn.WriteJSON(resp); err != nil {
			h.log.Error("write error:", err)
			return
		}
	}
}
