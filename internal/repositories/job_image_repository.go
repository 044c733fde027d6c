package repositories

import (
	"context"

	"cmms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type JobImageRepository struct {
	DB *pgxpool.Pool
}

func NewJobImageRepository(db *pgxpool.Pool) *JobImageRepository {
	return &JobImageRepository{DB: db}
}

func (r *JobImageRepository) Create(ctx context.Context, img *models.JobImage) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO job_images (job_id, url, caption, uploaded_by_user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		img.JobID, img.URL, img.Caption, img.UploadedByUserID,
	).Scan(&img.ID, &img.CreatedAt)
}

func (r *JobImageRepository) ListByJob(ctx context.Context, jobID int) ([]*models.JobImage, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, job_id, url, caption, uploaded_by_user_id, created_at
		 FROM job_images WHERE job_id = $1 ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.JobImage
	for rows.Next() {
		var img models.JobImage
		if err := rows.Scan(&img.ID, &img.JobID, &img.URL, &img.Caption,
			&img.UploadedByUserID, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}
