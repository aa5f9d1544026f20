package http

import (
    "encoding/json"
    "errors"
    "net/http"
    "time"

    "github.com/google/go-github/v61/github"
    "github.com/google/uuid"
    "github.com/gorilla/mux"

    "github.com/you/staticman-prhook/internal/dedupe"
    "github.com/you/staticman-prhook/internal/domain"
    "github.com/you/staticman-prhook/internal/infra"
    "github.com/you/staticman-prhook/internal/notification"
    "github.com/you/staticman-prhook/internal/repository"
    uc "github.com/you/staticman-prhook/internal/usecase"
)

type Handlers struct {
    Reconciler *uc.Reconciler
    Deliveries repository.DeliveryLog // optional
    Dedupe     dedupe.Store           // optional
    Secret     []byte
    Log        infra.Logger
}

func NewHandlers(rec *uc.Reconciler, deliveries repository.DeliveryLog, dd dedupe.Store, secret string, log infra.Logger) *Handlers {
    return &Handlers{Reconciler: rec, Deliveries: deliveries, Dedupe: dd, Secret: []byte(secret), Log: log}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(code)
    json.NewEncoder(w).Encode(v)
}

func errorResp(w http.ResponseWriter, status int, code, msg string) {
    writeJSON(w, status, map[string]interface{}{"error": map[string]string{"code": code, "message": msg}})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status":"OK"})
}

func (h *Handlers) GitHubWebhook(w http.ResponseWriter, r *http.Request) {
    payload, err := github.ValidatePayload(r, h.Secret)
    if err != nil {
        errorResp(w, http.StatusUnauthorized, "INVALID_SIGNATURE", err.Error()); return
    }
    eventType := github.WebHookType(r)
    if eventType != "pull_request" {
        writeJSON(w, http.StatusAccepted, map[string]string{"status": "ignored", "event": eventType}); return
    }
    raw, err := github.ParseWebHook(eventType, payload)
    if err != nil {
        errorResp(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload"); return
    }
    pe := raw.(*github.PullRequestEvent)

    deliveryID := github.DeliveryID(r)
    if deliveryID == "" {
        deliveryID = uuid.NewString()
    }
    ev := domain.PullRequestEvent{
        Number:     pe.GetNumber(),
        Owner:      pe.GetRepo().GetOwner().GetLogin(),
        Repo:       pe.GetRepo().GetName(),
        DeliveryID: deliveryID,
    }

    ctx := r.Context()
    if h.Dedupe != nil {
        claimed, err := h.Dedupe.Claim(ctx, deliveryID)
        if err != nil {
            h.Log.Errorf("dedupe claim %s: %v", deliveryID, err)
        } else if !claimed {
            writeJSON(w, http.StatusOK, map[string]string{"status": "duplicate", "delivery_id": deliveryID}); return
        }
    }

    received := time.Now().UTC()
    out, err := h.Reconciler.Reconcile(ctx, ev)
    if err != nil {
        if h.Dedupe != nil {
            if rerr := h.Dedupe.Release(ctx, deliveryID); rerr != nil {
                h.Log.Errorf("dedupe release %s: %v", deliveryID, rerr)
            }
        }
        h.record(r, ev, domain.DeliveryFailed, err.Error(), received)
        if errors.Is(err, notification.ErrMalformed) {
            errorResp(w, http.StatusInternalServerError, "MALFORMED_NOTIFICATION", err.Error()); return
        }
        errorResp(w, http.StatusInternalServerError, "RECONCILE_FAILED", err.Error()); return
    }

    status := domain.DeliveryCompleted
    if out.Status == domain.OutcomeNotApplicable {
        status = domain.DeliveryNotApplicable
    }
    h.record(r, ev, status, "", received)
    writeJSON(w, http.StatusOK, map[string]interface{}{"delivery_id": deliveryID, "outcome": out})
}

func (h *Handlers) record(r *http.Request, ev domain.PullRequestEvent, status, errText string, received time.Time) {
    if h.Deliveries == nil {
        return
    }
    d := domain.Delivery{
        ID:         ev.DeliveryID,
        Owner:      ev.Owner,
        Repo:       ev.Repo,
        Number:     ev.Number,
        Status:     status,
        Error:      errText,
        ReceivedAt: received,
    }
    if err := h.Deliveries.RecordDelivery(r.Context(), d); err != nil {
        h.Log.Errorf("record delivery %s: %v", ev.DeliveryID, err)
    }
}

func (h *Handlers) GetDelivery(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]
    if h.Deliveries == nil {
        errorResp(w, http.StatusNotFound, "NOT_FOUND", "delivery log disabled"); return
    }
    d, err := h.Deliveries.GetDelivery(r.Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            errorResp(w, http.StatusNotFound, "NOT_FOUND", err.Error()); return
        }
        errorResp(w, http.StatusInternalServerError, "INTERNAL", err.Error()); return
    }
    writeJSON(w, http.StatusOK, map[string]interface{}{"delivery": d})
}
