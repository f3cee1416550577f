package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	logger "github.com/sirupsen/logrus"

	"walletengine/src/database"
	"walletengine/src/model"
	"walletengine/src/repository"
)

type snapshotSearcher interface {
	SearchSnapshots(ctx context.Context, options repository.SnapshotSearchOptions) ([]model.ExecutionSnapshot, error)
}

type errorSearcher interface {
	SearchErrors(ctx context.Context, options repository.SnapshotSearchOptions) ([]model.ExecutionError, error)
}

// parseSearchOptions reads the shared audit filters: walletId, symbol,
// createdFrom, createdTo, page, pageSize.
func parseSearchOptions(r *http.Request) (repository.SnapshotSearchOptions, string) {
	options := repository.SnapshotSearchOptions{}

	if walletParam := r.URL.Query().Get("walletId"); walletParam != "" {
		options.WalletID = &walletParam
	}
	if symbolParam := r.URL.Query().Get("symbol"); symbolParam != "" {
		options.Symbol = &symbolParam
	}

	if createdFromParam := r.URL.Query().Get("createdFrom"); createdFromParam != "" {
		parsed, err := time.Parse(time.RFC3339, createdFromParam)
		if err != nil {
			return options, "invalid createdFrom"
		}
		options.CreatedAfter = &parsed
	}

	if createdToParam := r.URL.Query().Get("createdTo"); createdToParam != "" {
		parsed, err := time.Parse(time.RFC3339, createdToParam)
		if err != nil {
			return options, "invalid createdTo"
		}
		options.CreatedBefore = &parsed
	}

	page := 1
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		parsedPage, err := strconv.Atoi(pageParam)
		if err != nil || parsedPage <= 0 {
			return options, "invalid page"
		}
		page = parsedPage
	}

	pageSize := 20
	if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
		parsedSize, err := strconv.Atoi(sizeParam)
		if err != nil || parsedSize <= 0 {
			return options, "invalid pageSize"
		}
		pageSize = parsedSize
	}

	options.Limit = pageSize
	options.Offset = (page - 1) * pageSize

	return options, ""
}

// SearchSnapshotsHandler lists execution snapshots, newest first.
func SearchSnapshotsHandler(repo snapshotSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, badRequest := parseSearchOptions(r)
		if badRequest != "" {
			http.Error(w, badRequest, http.StatusBadRequest)
			return
		}

		snapshots, err := repo.SearchSnapshots(r.Context(), options)
		if err != nil {
			logger.WithError(err).Error("failed to search snapshots")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			logger.WithError(err).Error("failed to encode snapshot search response")
		}
	}
}

// SearchErrorsHandler lists persisted engine errors, newest first.
func SearchErrorsHandler(repo errorSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, badRequest := parseSearchOptions(r)
		if badRequest != "" {
			http.Error(w, badRequest, http.StatusBadRequest)
			return
		}

		execErrors, err := repo.SearchErrors(r.Context(), options)
		if err != nil {
			logger.WithError(err).Error("failed to search execution errors")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(execErrors); err != nil {
			logger.WithError(err).Error("failed to encode error search response")
		}
	}
}

// DefaultSearchSnapshotsHandler serves the audit search from the read-only
// connection.
func DefaultSearchSnapshotsHandler() http.HandlerFunc {
	return SearchSnapshotsHandler(repository.NewExecutionRepository().WithDB(database.ReadOnlyDB))
}

func DefaultSearchErrorsHandler() http.HandlerFunc {
	return SearchErrorsHandler(repository.NewExecutionRepository().WithDB(database.ReadOnlyDB))
}
