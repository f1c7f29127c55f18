package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

// maxUploadBytes bounds the multipart form kept in memory before
// spilling to disk.
const maxUploadBytes = 32 << 20

func parsePage(r *http.Request) vidgraph.Page {
	var page vidgraph.Page
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Number = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		page.Size = v
	}
	return page
}

// stageFormFile copies one multipart file to a local temp path so the
// lifecycle coordinator can stream it to the blob store and discard it.
func stageFormFile(r *http.Request, field string) (*vidgraph.StagedFile, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read form file %s: %w", field, err)
	}
	defer file.Close()

	return stageReader(file, field)
}

func stageReader(src multipart.File, field string) (*vidgraph.StagedFile, error) {
	tmp, err := os.CreateTemp("", "vidgraph-upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", field, err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to stage %s: %w", field, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to stage %s: %w", field, err)
	}

	return &vidgraph.StagedFile{Field: field, Path: tmp.Name()}, nil
}

// ListVideos lists published videos with optional owner, query and sort
// parameters.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := vidgraph.ListVideosRequest{
		OwnerID: q.Get("userId"),
		Query:   q.Get("query"),
		SortBy:  q.Get("sortBy"),
		SortAsc: q.Get("sortType") == "asc",
		Page:    parsePage(r),
	}

	videos, err := h.service.ListVideos(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, videos, "Videos fetched successfully")
}

// PublishVideo accepts a multipart form with a videoFile and a thumbnail
// plus title and description fields.
func (h *Handler) PublishVideo(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid multipart form: %v", err))
		return
	}

	videoFile, err := stageFormFile(r, "videoFile")
	if err != nil {
		respondError(w, r, err)
		return
	}
	thumbnail, err := stageFormFile(r, "thumbnail")
	if err != nil {
		if videoFile != nil {
			videoFile.Remove()
		}
		respondError(w, r, err)
		return
	}

	video, err := h.service.PublishVideo(r.Context(), vidgraph.PublishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Actor:       actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, video, "Video published successfully")
}

// GetVideo retrieves a video with its owner resolved.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.service.GetVideo(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo replaces a video's title, description and thumbnail.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, r, vidgraph.InvalidArgf("invalid multipart form: %v", err))
		return
	}

	thumbnail, err := stageFormFile(r, "thumbnail")
	if err != nil {
		respondError(w, r, err)
		return
	}

	video, err := h.service.UpdateVideo(r.Context(), vidgraph.UpdateVideoRequest{
		VideoID:     chi.URLParam(r, "videoID"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, video, "Video updated successfully")
}

// DeleteVideo removes a video row and its blobs.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVideo(r.Context(), chi.URLParam(r, "videoID")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublishStatus flips a video's publish flag.
func (h *Handler) TogglePublishStatus(w http.ResponseWriter, r *http.Request) {
	video, err := h.service.TogglePublishStatus(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, video, "Publish status toggled successfully")
}
