package server

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"cinewrapped/internal/letterboxd"
	"cinewrapped/internal/logging"
	"cinewrapped/internal/stats"
	"cinewrapped/internal/wrapped"
)

func (s *Server) handleWrapped(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithContext(r.Context(), s.logger)
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "Upload is too large.")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Expected a multipart upload.")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	in, msg := readInput(r)
	if msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	report, err := s.runner.Run(r.Context(), in, nil)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, report)
	case errors.Is(err, stats.ErrEmptyInput):
		s.writeError(w, http.StatusBadRequest, "Could not process stats. Check your data.")
	default:
		logging.ErrorWithContext(logger, "report generation failed", "report_failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "An error occurred during processing.")
	}
}

// readInput parses the form into pipeline input. A non-empty message is a
// client error to report verbatim.
func readInput(r *http.Request) (wrapped.Input, string) {
	var in wrapped.Input

	diaryFile, _, err := r.FormFile("diary")
	if err != nil {
		return in, "Diary CSV is required."
	}
	defer diaryFile.Close()
	diary, _, err := letterboxd.ParseDiary(diaryFile)
	if err != nil {
		if errors.Is(err, letterboxd.ErrInvalidDiary) {
			return in, "Invalid Diary CSV."
		}
		return in, "Failed to parse file. Ensure it is a valid Letterboxd export."
	}
	if len(diary) == 0 {
		return in, "Diary CSV is required."
	}
	in.Diary = diary

	ratingsFile, _, err := r.FormFile("ratings")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return in, "Failed to parse file. Ensure it is a valid Letterboxd export."
	default:
		defer ratingsFile.Close()
		ratings, msg := readRatings(ratingsFile)
		if msg != "" {
			return in, msg
		}
		in.Ratings = ratings
	}

	if raw := strings.TrimSpace(r.FormValue("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			return in, "Year must be a positive number."
		}
		in.Year = year
	}
	if raw := strings.TrimSpace(r.FormValue("enrich")); raw != "" {
		enrich, err := strconv.ParseBool(raw)
		if err != nil {
			return in, "enrich must be true or false."
		}
		in.SkipEnrichment = !enrich
	}
	return in, ""
}

func readRatings(file multipart.File) ([]letterboxd.RatingEntry, string) {
	ratings, _, err := letterboxd.ParseRatings(file)
	if err != nil {
		if errors.Is(err, letterboxd.ErrInvalidRatings) {
			return nil, "Invalid Ratings CSV."
		}
		return nil, "Failed to parse file. Ensure it is a valid Letterboxd export."
	}
	return ratings, ""
}
