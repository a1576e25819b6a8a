package ingestion

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
