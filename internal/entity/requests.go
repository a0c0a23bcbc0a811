package entity

type ReorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

type SelectRequest struct {
	ID string `json:"id"`
}

type MultiSelectRequest struct {
	ID       string `json:"id" binding:"required"`
	Additive bool   `json:"additive"`
}

type MoveRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type TransformRequest struct {
	Width    float64 `json:"width" binding:"required"`
	Height   float64 `json:"height" binding:"required"`
	Rotation float64 `json:"rotation"`
}

type NudgeRequest struct {
	Direction string `json:"direction" binding:"required,oneof=left right up down"`
	Coarse    bool   `json:"coarse"`
}
