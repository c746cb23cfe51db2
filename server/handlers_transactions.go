package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/kudetabet/portal/transaction"
)

func (s *Server) handleTransactionsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := transaction.Filters{
		Type:          q.Get("type"),
		Status:        q.Get("status"),
		PaymentMethod: q.Get("payment_method"),
		DateFrom:      q.Get("date_from"),
		DateTo:        q.Get("date_to"),
	}
	if v, err := strconv.ParseFloat(q.Get("min_amount"), 64); err == nil {
		f.MinAmount = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_amount"), 64); err == nil {
		f.MaxAmount = v
	}
	list, err := s.transactions.List(r.Context(), userID(r), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "transaction list failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": list,
		"total":        len(list),
	})
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	var in transaction.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	t, err := s.transactions.Create(r.Context(), userID(r), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "CREATE_FAILED")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTransactionGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "transaction lookup failed", "INTERNAL")
		return
	}
	if t.UserID != userID(r) {
		writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleTransactionByReference looks a transaction up by the reference number
// printed on the user's receipt.
func (s *Server) handleTransactionByReference(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.GetByReference(r.Context(), r.PathValue("reference"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "transaction lookup failed", "INTERNAL")
		return
	}
	if t.UserID != userID(r) {
		writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTransactionCancel(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.Cancel(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			writeError(w, http.StatusConflict, "transaction is not pending", "NOT_CANCELLABLE")
			return
		}
		writeError(w, http.StatusInternalServerError, "cancel failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTransactionStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.transactions.UserStats(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTransactionPendingCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.transactions.PendingCount(r.Context(), userID(r), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pending count failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pending": n})
}

// adminAction is the approve/reject request body.
type adminAction struct {
	Notes string `json:"notes"`
}

func (s *Server) handleTransactionApprove(w http.ResponseWriter, r *http.Request) {
	var in adminAction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	t, err := s.transactions.Approve(r.Context(), r.PathValue("id"), userID(r), in.Notes)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "approve failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTransactionReject(w http.ResponseWriter, r *http.Request) {
	var in adminAction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	t, err := s.transactions.Reject(r.Context(), r.PathValue("id"), userID(r), in.Notes)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), "REJECT_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// maxProofSize caps proof-of-payment uploads at 5 MiB.
const maxProofSize = 5 << 20

// handleTransactionProof accepts a multipart form with a "proof" file, stores
// it under the upload root and attaches its public URL to the transaction.
func (s *Server) handleTransactionProof(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, err := s.transactions.Get(r.Context(), id)
	if err != nil || t.UserID != userID(r) {
		writeError(w, http.StatusNotFound, "transaction not found", "NOT_FOUND")
		return
	}
	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	file, header, err := r.FormFile("proof")
	if err != nil {
		writeError(w, http.StatusBadRequest, "proof file is required", "BAD_REQUEST")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".pdf":
	default:
		writeError(w, http.StatusBadRequest, "unsupported proof file type", "BAD_FILE_TYPE")
		return
	}
	name := uuid.NewString() + ext
	url, err := s.uploads.Save("proofs", name, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "proof upload failed", "INTERNAL")
		return
	}
	t, err = s.transactions.SetProofURL(r.Context(), id, url)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "proof attach failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, t)
}
