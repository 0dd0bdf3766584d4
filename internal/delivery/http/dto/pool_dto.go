package dto

type PoolReplaceRequest struct {
	Entities []EntityPayload `json:"entities"`
}

type PoolResponse struct {
	Name     string          `json:"name"`
	Entities []EntityPayload `json:"entities"`
}
