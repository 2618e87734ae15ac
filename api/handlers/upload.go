package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/models"
)

// UploadHandler handles Cloudinary related requests for profile pictures and
// research attachments
type UploadHandler struct{}

type rehostRequest struct {
	URL    string `json:"url"`
	Folder string `json:"folder"`
}

// GenerateSignature generates a signature for direct browser uploads to
// Cloudinary
func (u UploadHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	h := hmac.New(sha1.New, []byte(apiSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RehostHandler pulls a remote file into our Cloudinary space and returns the
// hosted URL, for clients that hold a file elsewhere and want it served from
// our CDN.
func (u UploadHandler) RehostHandler(w http.ResponseWriter, r *http.Request) {
	var req rehostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.URL == "" {
		respondError("url is required", w, models.NewInvalidArgument("url is required"))
		return
	}
	if req.Folder == "" {
		req.Folder = "uploads"
	}

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		config.ErrorStatus("failed to init upload client", http.StatusInternalServerError, w, err)
		return
	}

	resp, err := cld.Upload.Upload(r.Context(), req.URL, uploader.UploadParams{Folder: req.Folder})
	if err != nil {
		config.ErrorStatus("failed to upload file", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      resp.SecureURL,
		"publicId": resp.PublicID,
	})
}
