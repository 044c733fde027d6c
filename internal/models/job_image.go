package models

import "time"

// JobImage is metadata for an image attached to a job. Upload and storage
// happen outside this service; the snapshot only lists what it was given.
type JobImage struct {
	ID               int       `json:"id"`
	JobID            int       `json:"job_id"`
	URL              string    `json:"url"`
	Caption          string    `json:"caption"`
	UploadedByUserID int       `json:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// AddJobImageRequest represents the request body for attaching an image URL
// to a job.
type AddJobImageRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}
